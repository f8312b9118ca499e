// pkg/screen/dispatcher.go
package screen

import (
	"context"
	"net/http"
	"strings"

	"github.com/joeydtaylor/steeze-screens/pkg/layout"
)

// ViewResult is a fully rendered page.
type ViewResult struct {
	HTML     string
	Commands []Command
}

// RedirectResult instructs the transport to re-enter the handler with the
// reduced argument list. Produced when a stale link supplies more positional
// arguments than the route expects; each redirect drops exactly one, so the
// loop terminates within len(args) round trips.
type RedirectResult struct {
	Args []string
}

// Fragment is one partially re-rendered sub-component.
type Fragment struct {
	Slug string
	HTML string
}

// Dispatcher turns one inbound call into an action invocation on its screen.
// One per request, like the screen it wraps.
type Dispatcher struct {
	screen     *Screen
	resolver   Resolver
	principals PrincipalSource
}

func NewDispatcher(s *Screen, r Resolver, p PrincipalSource) *Dispatcher {
	if r == nil {
		r = DefaultResolver()
	}
	return &Dispatcher{screen: s, resolver: r, principals: p}
}

func (d *Dispatcher) Screen() *Screen { return d.screen }

func (d *Dispatcher) capabilities(ctx context.Context) []string {
	if d.principals == nil {
		return nil
	}
	return d.principals.Capabilities(ctx)
}

// Handle maps an inbound call to a render, a redirect, or a method
// invocation. The access gate runs first in every case.
//
// Safe verbs compare the supplied positional arguments against the declared
// path variables minus the reserved trailing method slot: within bounds is a
// full-page view, beyond bounds redirects with the last argument dropped.
// Other verbs invoke the action named by the route's method segment, falling
// back to the last positional argument, and return its result unwrapped.
func (d *Dispatcher) Handle(ctx context.Context, verb string, rs RouteState, rawArgs []string) (any, error) {
	if !CheckAccess(d.screen.Permission(), d.capabilities(ctx)) {
		return nil, ErrNotAuthorized
	}

	verb = strings.ToUpper(strings.TrimSpace(verb))
	if verb == http.MethodGet || verb == http.MethodHead {
		expected := rs.DeclaredVariableCount() - 1
		if expected < 0 {
			expected = 0
		}
		if len(rawArgs) <= expected {
			return d.renderFull(ctx, rs)
		}
		return &RedirectResult{Args: rawArgs[:len(rawArgs)-1]}, nil
	}

	name := d.targetAction(rs, rawArgs)
	if name == "" {
		return nil, ErrActionNotFound
	}
	a, ok := d.screen.action(name, false)
	if !ok {
		return nil, ErrActionNotFound
	}
	args, err := d.ResolveParameters(name, rs)
	if err != nil {
		return nil, err
	}
	return a.Fn(ctx, args)
}

// targetAction picks the action name from the route's method segment, else
// the last positional argument.
func (d *Dispatcher) targetAction(rs RouteState, rawArgs []string) string {
	if v, ok := rs.Parameter("method"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if len(rawArgs) > 0 {
		return rawArgs[len(rawArgs)-1]
	}
	return ""
}

func (d *Dispatcher) renderFull(ctx context.Context, rs RouteState) (any, error) {
	ctx = WithCurrent(ctx, d.screen)

	args, err := d.ResolveParameters(QueryName, rs)
	if err != nil {
		return nil, err
	}
	data, err := d.screen.def.Query(ctx, args)
	if err != nil {
		return nil, err
	}
	repo := NewRepository(data)
	d.screen.repo = repo

	commands := d.screen.BuildCommandBar(repo)

	var b strings.Builder
	for _, n := range layout.Normalize(d.screen.def.Layout) {
		s, err := n.Render(ctx, repo)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	}
	return &ViewResult{HTML: b.String(), Commands: commands}, nil
}
