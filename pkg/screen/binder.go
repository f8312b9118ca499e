// pkg/screen/binder.go
package screen

// ResolveParameters produces the ordered argument list for a named action.
// Unknown action names yield an empty list without error; the dispatcher has
// already surfaced ErrActionNotFound before binding is reached, and this
// keeps the binder itself side-effect free.
//
// Per declared parameter, in order:
//   - no Type: bind the raw route value under the parameter name (nil when
//     absent);
//   - Type set and the route already holds a non-scalar under the name: pass
//     it through untouched (resolved upstream);
//   - otherwise construct via the resolver, then, when the instance supports
//     route-value resolution and a raw value is present, replace it with the
//     resolved instance.
func (d *Dispatcher) ResolveParameters(actionName string, rs RouteState) ([]any, error) {
	a, ok := d.screen.action(actionName, true)
	if !ok {
		return nil, nil
	}
	args := make([]any, 0, len(a.Params))
	for _, p := range a.Params {
		v, err := d.bindOne(actionName, p, rs)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func (d *Dispatcher) bindOne(action string, p ParameterDescriptor, rs RouteState) (any, error) {
	raw, present := rs.Parameter(p.Name)

	if p.Type == "" {
		if !present {
			return nil, nil
		}
		return raw, nil
	}

	if present && !isScalar(raw) {
		// Already an object under this name; resolved upstream.
		return raw, nil
	}

	inst, err := d.resolver.Construct(p.Type)
	if err != nil {
		return nil, &BindingError{Action: action, Param: p.Name, Err: err}
	}

	if rr, ok := inst.(RouteResolvable); ok && present {
		resolved, err := rr.ResolveRouteValue(raw)
		if err != nil {
			return nil, &BindingError{Action: action, Param: p.Name, Err: err}
		}
		return resolved, nil
	}
	return inst, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
