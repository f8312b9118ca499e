// pkg/screen/screen.go
package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/joeydtaylor/steeze-screens/pkg/layout"
)

// QueryName is the reserved full-page data source. It is never listed among
// externally invokable actions.
const QueryName = "query"

// ParameterDescriptor declares one formal parameter of an action. Type is a
// symbolic name resolved through a Resolver; empty Type binds the raw route
// value under Name.
type ParameterDescriptor struct {
	Name string
	Type string
}

// ActionFunc executes one action with positionally bound arguments. The
// result is returned to the caller unwrapped: a RedirectResult, a rendered
// view, or any representation the transport layer understands.
type ActionFunc func(ctx context.Context, args []any) (any, error)

// QueryFunc produces the full-page data set.
type QueryFunc func(ctx context.Context, args []any) (map[string]any, error)

// Action is one externally invokable method of a screen.
type Action struct {
	Name   string
	Params []ParameterDescriptor
	Fn     ActionFunc
}

// Command is one command-bar entry. Visible, when set, reads the active data
// container to decide whether the command is shown.
type Command struct {
	Label   string
	Method  string
	Icon    string
	Visible func(d layout.Data) bool
}

// Definition is the static, shareable declaration of a screen type. One
// Definition exists per page type; New stamps out a per-request Screen.
type Definition struct {
	Name        string
	Description string
	Permission  []string
	Query       QueryFunc
	QueryParams []ParameterDescriptor
	Actions     []Action
	Layout      []layout.Descriptor
	CommandBar  []Command
}

func (d Definition) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("screen name required")
	}
	if d.Query == nil {
		return fmt.Errorf("screen %q: query required", d.Name)
	}
	seen := map[string]struct{}{}
	for _, a := range d.Actions {
		if strings.TrimSpace(a.Name) == "" || a.Fn == nil {
			return fmt.Errorf("screen %q: action name and fn required", d.Name)
		}
		if a.Name == QueryName {
			return fmt.Errorf("screen %q: %q is reserved", d.Name, QueryName)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("screen %q: duplicate action %q", d.Name, a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	return nil
}

// Screen is the per-request instance: static declaration plus the data
// container of the current render pass. Discarded at end of request.
type Screen struct {
	def     Definition
	actions map[string]Action
	order   []string
	repo    *Repository
}

// New builds a request-scoped Screen from a Definition.
func New(def Definition) (*Screen, error) {
	if err := def.validate(); err != nil {
		return nil, err
	}
	s := &Screen{
		def:     def,
		actions: make(map[string]Action, len(def.Actions)),
		order:   make([]string, 0, len(def.Actions)),
	}
	for _, a := range def.Actions {
		s.actions[a.Name] = a
		s.order = append(s.order, a.Name)
	}
	return s, nil
}

// MustNew panics on an invalid definition; screen definitions are static.
func MustNew(def Definition) *Screen {
	s, err := New(def)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Screen) Name() string         { return s.def.Name }
func (s *Screen) Description() string  { return s.def.Description }
func (s *Screen) Permission() []string { return s.def.Permission }

// Repository returns the active data container, nil before any action ran.
func (s *Screen) Repository() *Repository { return s.repo }

// AvailableMethods lists externally invokable action names in declaration
// order. The reserved query is held apart from the action registry, so it is
// excluded by construction; a screen with no actions yields an empty list.
func (s *Screen) AvailableMethods() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// action looks up a named method. The reserved query resolves only where the
// caller explicitly allows it (the async data path).
func (s *Screen) action(name string, allowQuery bool) (Action, bool) {
	if allowQuery && name == QueryName {
		return Action{
			Name:   QueryName,
			Params: s.def.QueryParams,
			Fn: func(ctx context.Context, args []any) (any, error) {
				return s.def.Query(ctx, args)
			},
		}, true
	}
	a, ok := s.actions[name]
	return a, ok
}
