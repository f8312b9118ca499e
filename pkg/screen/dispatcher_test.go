package screen_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeydtaylor/steeze-screens/pkg/layout"
	"github.com/joeydtaylor/steeze-screens/pkg/screen"
)

type staticPrincipals struct{ caps []string }

func (p staticPrincipals) Capabilities(ctx context.Context) []string { return p.caps }

type dispatchProbe struct {
	queryRuns  int
	actionRuns int
	lastArgs   []any
}

func probeScreen(probe *dispatchProbe, perm ...string) *screen.Screen {
	return screen.MustNew(screen.Definition{
		Name:       "orders",
		Permission: perm,
		Query: func(ctx context.Context, args []any) (map[string]any, error) {
			probe.queryRuns++
			return map[string]any{"title": "Orders"}, nil
		},
		Actions: []screen.Action{
			{
				Name:   "approve",
				Params: []screen.ParameterDescriptor{{Name: "id"}},
				Fn: func(ctx context.Context, args []any) (any, error) {
					probe.actionRuns++
					probe.lastArgs = args
					return &screen.RedirectResult{}, nil
				},
			},
		},
		Layout: []layout.Descriptor{
			layout.Use(layout.MustTemplate("orders-title", `<h1>{{.title}}</h1>`, "title")),
		},
		CommandBar: []screen.Command{
			{Label: "Approve", Method: "approve"},
			{Label: "Hidden", Method: "approve", Visible: func(d layout.Data) bool { return d.Has("never") }},
		},
	})
}

func TestHandle_FullView(t *testing.T) {
	probe := &dispatchProbe{}
	d := screen.NewDispatcher(probeScreen(probe), nil, nil)

	// Route declares 2 path variables; one is the reserved method slot.
	rs := screen.NewParams(map[string]any{"id": "42"}, 2)
	out, err := d.Handle(context.Background(), http.MethodGet, rs, []string{"42"})
	require.NoError(t, err)

	view, ok := out.(*screen.ViewResult)
	require.True(t, ok)
	assert.Equal(t, "<h1>Orders</h1>", view.HTML)
	require.Len(t, view.Commands, 1)
	assert.Equal(t, "Approve", view.Commands[0].Label)
	assert.Equal(t, 1, probe.queryRuns)
	assert.Equal(t, 0, probe.actionRuns)
}

func TestHandle_RedirectOnStaleArgs(t *testing.T) {
	probe := &dispatchProbe{}
	d := screen.NewDispatcher(probeScreen(probe), nil, nil)
	rs := screen.NewParams(nil, 2)

	// realArgs=2 > expected=1: drop the trailing argument and retry.
	out, err := d.Handle(context.Background(), http.MethodGet, rs, []string{"42", "extra"})
	require.NoError(t, err)
	redir, ok := out.(*screen.RedirectResult)
	require.True(t, ok)
	assert.Equal(t, []string{"42"}, redir.Args)
	assert.Equal(t, 0, probe.queryRuns)

	// The reduced call lands on the full view: the loop terminated.
	out, err = d.Handle(context.Background(), http.MethodGet, rs, redir.Args)
	require.NoError(t, err)
	_, ok = out.(*screen.ViewResult)
	assert.True(t, ok)
	assert.Equal(t, 1, probe.queryRuns)
}

func TestHandle_RedirectTerminates(t *testing.T) {
	probe := &dispatchProbe{}
	d := screen.NewDispatcher(probeScreen(probe), nil, nil)
	rs := screen.NewParams(nil, 2)

	args := []string{"a", "b", "c", "d", "e"}
	steps := 0
	for {
		out, err := d.Handle(context.Background(), http.MethodGet, rs, args)
		require.NoError(t, err)
		redir, ok := out.(*screen.RedirectResult)
		if !ok {
			break
		}
		require.Less(t, len(redir.Args), len(args), "redirect must strictly shrink args")
		args = redir.Args
		steps++
		require.LessOrEqual(t, steps, 5)
	}
	assert.Equal(t, 4, steps)
}

func TestHandle_PostInvokesNamedAction(t *testing.T) {
	probe := &dispatchProbe{}
	d := screen.NewDispatcher(probeScreen(probe), nil, nil)

	rs := screen.NewParams(map[string]any{"id": "42", "method": "approve"}, 2)
	out, err := d.Handle(context.Background(), http.MethodPost, rs, []string{"42", "approve"})
	require.NoError(t, err)

	// Action result comes back unwrapped.
	_, ok := out.(*screen.RedirectResult)
	assert.True(t, ok)
	assert.Equal(t, 1, probe.actionRuns)
	assert.Equal(t, 0, probe.queryRuns)
	assert.Equal(t, []any{"42"}, probe.lastArgs)
}

func TestHandle_PostFallsBackToLastArg(t *testing.T) {
	probe := &dispatchProbe{}
	d := screen.NewDispatcher(probeScreen(probe), nil, nil)

	rs := screen.NewParams(map[string]any{"id": "42"}, 2)
	_, err := d.Handle(context.Background(), http.MethodPost, rs, []string{"42", "approve"})
	require.NoError(t, err)
	assert.Equal(t, 1, probe.actionRuns)
}

func TestHandle_UnknownAction(t *testing.T) {
	probe := &dispatchProbe{}
	d := screen.NewDispatcher(probeScreen(probe), nil, nil)

	rs := screen.NewParams(map[string]any{"method": "vanish"}, 2)
	_, err := d.Handle(context.Background(), http.MethodPost, rs, []string{"vanish"})
	assert.ErrorIs(t, err, screen.ErrActionNotFound)
	assert.Equal(t, 0, probe.actionRuns)
}

func TestHandle_QueryNotExternallyInvokable(t *testing.T) {
	probe := &dispatchProbe{}
	d := screen.NewDispatcher(probeScreen(probe), nil, nil)

	rs := screen.NewParams(map[string]any{"method": "query"}, 2)
	_, err := d.Handle(context.Background(), http.MethodPost, rs, []string{"query"})
	assert.ErrorIs(t, err, screen.ErrActionNotFound)
	assert.Equal(t, 0, probe.queryRuns)
}

func TestHandle_GateDeniesBeforeAnyWork(t *testing.T) {
	probe := &dispatchProbe{}
	s := probeScreen(probe, "platform.orders")
	d := screen.NewDispatcher(s, nil, staticPrincipals{caps: []string{"platform.other"}})

	rs := screen.NewParams(nil, 2)
	_, err := d.Handle(context.Background(), http.MethodGet, rs, nil)
	assert.ErrorIs(t, err, screen.ErrNotAuthorized)

	_, err = d.Handle(context.Background(), http.MethodPost, rs, []string{"approve"})
	assert.ErrorIs(t, err, screen.ErrNotAuthorized)

	assert.Equal(t, 0, probe.queryRuns)
	assert.Equal(t, 0, probe.actionRuns)
}

func TestHandle_GatePassesOnAnyToken(t *testing.T) {
	probe := &dispatchProbe{}
	s := probeScreen(probe, "platform.orders", "platform.admin")
	d := screen.NewDispatcher(s, nil, staticPrincipals{caps: []string{"platform.admin"}})

	_, err := d.Handle(context.Background(), http.MethodGet, screen.NewParams(nil, 2), nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, probe.queryRuns)
}

func TestAvailableMethods(t *testing.T) {
	probe := &dispatchProbe{}
	s := probeScreen(probe)
	assert.Equal(t, []string{"approve"}, s.AvailableMethods())

	empty := screen.MustNew(screen.Definition{
		Name:  "blank",
		Query: func(ctx context.Context, args []any) (map[string]any, error) { return nil, nil },
	})
	assert.Empty(t, empty.AvailableMethods())
}

func TestNew_RejectsReservedAndDuplicateNames(t *testing.T) {
	q := func(ctx context.Context, args []any) (map[string]any, error) { return nil, nil }
	fn := func(ctx context.Context, args []any) (any, error) { return nil, nil }

	_, err := screen.New(screen.Definition{
		Name: "bad", Query: q,
		Actions: []screen.Action{{Name: "query", Fn: fn}},
	})
	assert.Error(t, err)

	_, err = screen.New(screen.Definition{
		Name: "bad", Query: q,
		Actions: []screen.Action{{Name: "save", Fn: fn}, {Name: "save", Fn: fn}},
	})
	assert.Error(t, err)

	_, err = screen.New(screen.Definition{Name: "noquery"})
	assert.Error(t, err)
}
