// pkg/screen/route.go
package screen

// RouteState is the resolved URL state the dispatcher and binder consult.
// transport/httpx provides the chi-backed implementation; Params below is the
// map-backed one used for async body merging and tests.
type RouteState interface {
	Parameter(name string) (any, bool)
	HasParameter(name string) bool
	DeclaredVariableCount() int
	SetParameter(name string, value any)
}

// Params is a mutable map-backed RouteState.
type Params struct {
	vals     map[string]any
	declared int
}

func NewParams(vals map[string]any, declared int) *Params {
	m := make(map[string]any, len(vals))
	for k, v := range vals {
		m[k] = v
	}
	return &Params{vals: m, declared: declared}
}

func (p *Params) Parameter(name string) (any, bool) {
	v, ok := p.vals[name]
	return v, ok
}

func (p *Params) HasParameter(name string) bool {
	_, ok := p.vals[name]
	return ok
}

func (p *Params) DeclaredVariableCount() int { return p.declared }

func (p *Params) SetParameter(name string, value any) { p.vals[name] = value }
