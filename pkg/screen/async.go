// pkg/screen/async.go
package screen

import (
	"context"

	"github.com/joeydtaylor/steeze-screens/pkg/layout"
)

// AsyncBuild re-renders the single layout node addressed by slug from the
// output of the named data method, leaving the rest of the tree untouched.
//
// The request body's key/value pairs are merged into the route state first so
// the data method can bind them like route parameters. The reserved query is
// a valid data method here, unlike on the external invocation path. An
// unknown method and an unknown slug fail distinctly (ErrActionNotFound vs
// ErrSlugNotFound).
func (d *Dispatcher) AsyncBuild(ctx context.Context, methodName, slug string, rs RouteState, body map[string]any) (*Fragment, error) {
	ctx = WithCurrent(ctx, d.screen)

	if !CheckAccess(d.screen.Permission(), d.capabilities(ctx)) {
		return nil, ErrNotAuthorized
	}

	a, ok := d.screen.action(methodName, true)
	if !ok {
		return nil, ErrActionNotFound
	}

	for k, v := range body {
		rs.SetParameter(k, v)
	}

	args, err := d.ResolveParameters(methodName, rs)
	if err != nil {
		return nil, err
	}
	out, err := a.Fn(ctx, args)
	if err != nil {
		return nil, err
	}
	repo := asRepository(out)
	d.screen.repo = repo

	node := layout.FindBySlug(layout.Normalize(d.screen.def.Layout), slug)
	if node == nil {
		return nil, ErrSlugNotFound
	}

	html, err := node.RenderAsync(ctx, repo)
	if err != nil {
		return nil, err
	}
	return &Fragment{Slug: slug, HTML: html}, nil
}

// asRepository coerces a data method's result into a container: maps as-is,
// nil empty, any other value stored under "value".
func asRepository(out any) *Repository {
	switch v := out.(type) {
	case nil:
		return NewRepository(nil)
	case map[string]any:
		return NewRepository(v)
	case *Repository:
		return v
	default:
		return NewRepository(map[string]any{"value": v})
	}
}
