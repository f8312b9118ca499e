package screen_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeydtaylor/steeze-screens/pkg/layout"
	"github.com/joeydtaylor/steeze-screens/pkg/screen"
)

// spyNode counts renders so tests can prove siblings stay untouched.
type spyNode struct {
	slug       string
	renders    int
	asyncRuns  int
	seenScreen *screen.Screen
}

func (n *spyNode) Slug() string            { return n.slug }
func (n *spyNode) Children() []layout.Node { return nil }

func (n *spyNode) Render(ctx context.Context, d layout.Data) (string, error) {
	n.renders++
	return "<div>" + n.slug + "</div>", nil
}

func (n *spyNode) RenderAsync(ctx context.Context, d layout.Data) (string, error) {
	n.asyncRuns++
	n.seenScreen = screen.Current(ctx)
	rows, _ := d.Get("rows")
	return fmt.Sprintf("<div id=%q>%v</div>", n.slug, rows), nil
}

func asyncScreen(table, stats *spyNode) *screen.Screen {
	return screen.MustNew(screen.Definition{
		Name: "users",
		Query: func(ctx context.Context, args []any) (map[string]any, error) {
			return map[string]any{"rows": "all-users"}, nil
		},
		Actions: []screen.Action{
			{
				Name:   "filter",
				Params: []screen.ParameterDescriptor{{Name: "needle"}},
				Fn: func(ctx context.Context, args []any) (any, error) {
					return map[string]any{"rows": args[0]}, nil
				},
			},
		},
		Layout: []layout.Descriptor{
			layout.Make(func() layout.Node {
				return &layout.Group{ID: "page", Items: []layout.Descriptor{
					layout.Use(table),
					layout.Use(stats),
				}}
			}),
		},
	})
}

func TestAsyncBuild_RendersOnlyMatchedNode(t *testing.T) {
	table := &spyNode{slug: "users-table"}
	stats := &spyNode{slug: "users-stats"}
	d := screen.NewDispatcher(asyncScreen(table, stats), nil, nil)

	frag, err := d.AsyncBuild(context.Background(), "query", "users-table", screen.NewParams(nil, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, "users-table", frag.Slug)
	assert.Equal(t, `<div id="users-table">all-users</div>`, frag.HTML)

	assert.Equal(t, 1, table.asyncRuns)
	assert.Equal(t, 0, table.renders)
	assert.Equal(t, 0, stats.asyncRuns, "sibling must not be rendered")
	assert.Equal(t, 0, stats.renders)
}

func TestAsyncBuild_MergesBodyIntoRouteState(t *testing.T) {
	table := &spyNode{slug: "users-table"}
	stats := &spyNode{slug: "users-stats"}
	d := screen.NewDispatcher(asyncScreen(table, stats), nil, nil)

	rs := screen.NewParams(nil, 0)
	frag, err := d.AsyncBuild(context.Background(), "filter", "users-table", rs, map[string]any{"needle": "ada"})
	require.NoError(t, err)
	assert.Equal(t, `<div id="users-table">ada</div>`, frag.HTML)

	v, ok := rs.Parameter("needle")
	require.True(t, ok)
	assert.Equal(t, "ada", v)
}

func TestAsyncBuild_UnknownSlug(t *testing.T) {
	table := &spyNode{slug: "users-table"}
	stats := &spyNode{slug: "users-stats"}
	d := screen.NewDispatcher(asyncScreen(table, stats), nil, nil)

	_, err := d.AsyncBuild(context.Background(), "query", "does-not-exist", screen.NewParams(nil, 0), nil)
	assert.ErrorIs(t, err, screen.ErrSlugNotFound)
	assert.NotErrorIs(t, err, screen.ErrActionNotFound)
}

func TestAsyncBuild_UnknownMethod(t *testing.T) {
	table := &spyNode{slug: "users-table"}
	stats := &spyNode{slug: "users-stats"}
	d := screen.NewDispatcher(asyncScreen(table, stats), nil, nil)

	_, err := d.AsyncBuild(context.Background(), "missingMethod", "users-table", screen.NewParams(nil, 0), nil)
	assert.ErrorIs(t, err, screen.ErrActionNotFound)
	assert.NotErrorIs(t, err, screen.ErrSlugNotFound)
}

func TestAsyncBuild_CurrentScreenInContext(t *testing.T) {
	table := &spyNode{slug: "users-table"}
	stats := &spyNode{slug: "users-stats"}
	s := asyncScreen(table, stats)
	d := screen.NewDispatcher(s, nil, nil)

	_, err := d.AsyncBuild(context.Background(), "query", "users-table", screen.NewParams(nil, 0), nil)
	require.NoError(t, err)
	assert.Same(t, s, table.seenScreen)
}

func TestAsyncBuild_GateApplies(t *testing.T) {
	table := &spyNode{slug: "users-table"}
	stats := &spyNode{slug: "users-stats"}
	s := screen.MustNew(screen.Definition{
		Name:       "users",
		Permission: []string{"platform.users"},
		Query: func(ctx context.Context, args []any) (map[string]any, error) {
			return nil, nil
		},
		Layout: []layout.Descriptor{layout.Use(table), layout.Use(stats)},
	})
	d := screen.NewDispatcher(s, nil, staticPrincipals{})

	_, err := d.AsyncBuild(context.Background(), "query", "users-table", screen.NewParams(nil, 0), nil)
	assert.ErrorIs(t, err, screen.ErrNotAuthorized)
	assert.Equal(t, 0, table.asyncRuns)
}

func TestAsyncBuild_RepositoryReplacedPerCall(t *testing.T) {
	table := &spyNode{slug: "users-table"}
	stats := &spyNode{slug: "users-stats"}
	s := asyncScreen(table, stats)
	d := screen.NewDispatcher(s, nil, nil)

	_, err := d.AsyncBuild(context.Background(), "query", "users-table", screen.NewParams(nil, 0), nil)
	require.NoError(t, err)
	first := s.Repository()

	_, err = d.AsyncBuild(context.Background(), "filter", "users-table", screen.NewParams(map[string]any{"needle": "x"}, 0), nil)
	require.NoError(t, err)
	assert.NotSame(t, first, s.Repository())
	assert.Equal(t, "x", s.Repository().GetString("rows"))
}
