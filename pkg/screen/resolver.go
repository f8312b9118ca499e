// pkg/screen/resolver.go
package screen

import (
	"fmt"
	"sync"
)

// Resolver constructs an instance for a symbolic parameter type name. The
// default implementation is the package registry below; service wiring may
// substitute its own (e.g. one backed by a DI container).
type Resolver interface {
	Construct(typeName string) (any, error)
}

// RouteResolvable lets a constructed instance replace itself with one looked
// up from the raw route value, the equivalent of implicit model binding by
// identifier.
type RouteResolvable interface {
	ResolveRouteValue(raw any) (any, error)
}

var (
	typeMu  sync.RWMutex
	typeReg = map[string]func() any{}
)

// RegisterType binds a symbolic name to a constructor for T. Referenced by
// ParameterDescriptor.Type.
func RegisterType[T any](name string, make func() T) error {
	if name == "" || make == nil {
		return fmt.Errorf("type name and constructor required")
	}
	typeMu.Lock()
	defer typeMu.Unlock()
	if _, ok := typeReg[name]; ok {
		return fmt.Errorf("type %q already registered", name)
	}
	typeReg[name] = func() any { return make() }
	return nil
}

func MustRegisterType[T any](name string, make func() T) {
	if err := RegisterType(name, make); err != nil {
		panic(err)
	}
}

type registryResolver struct{}

// DefaultResolver constructs instances from the package type registry.
func DefaultResolver() Resolver { return registryResolver{} }

func (registryResolver) Construct(typeName string) (any, error) {
	typeMu.RLock()
	mk, ok := typeReg[typeName]
	typeMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unregistered type %q", typeName)
	}
	return mk(), nil
}
