// pkg/layout/nodes.go
package layout

import (
	"context"
	"html/template"
	"strings"
)

// Group is a container node. It carries an optional slug and renders its
// children in order.
type Group struct {
	ID    string
	Items []Descriptor
}

func (g *Group) Slug() string { return g.ID }

func (g *Group) Children() []Node { return Normalize(g.Items) }

func (g *Group) Render(ctx context.Context, d Data) (string, error) {
	var b strings.Builder
	for _, n := range g.Children() {
		s, err := n.Render(ctx, d)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// RenderAsync for a container re-renders the whole subtree; partial updates
// normally target leaves but a slugged group is addressable too.
func (g *Group) RenderAsync(ctx context.Context, d Data) (string, error) {
	return g.Render(ctx, d)
}

// Template is a leaf node backed by html/template. The template executes
// against a map of the container's values so expressions read fields by name.
type Template struct {
	ID     string
	Tmpl   *template.Template
	Fields []string // container keys exposed to the template; empty = none
}

// MustTemplate parses src and panics on error. Screen layouts are static
// declarations, so a bad template is a programming error.
func MustTemplate(id, src string, fields ...string) *Template {
	return &Template{
		ID:     id,
		Tmpl:   template.Must(template.New(id).Parse(src)),
		Fields: fields,
	}
}

func (t *Template) Slug() string { return t.ID }

func (t *Template) Children() []Node { return nil }

func (t *Template) Render(ctx context.Context, d Data) (string, error) {
	vals := map[string]any{}
	for _, f := range t.Fields {
		if v, ok := d.Get(f); ok {
			vals[f] = v
		}
	}
	var b strings.Builder
	if err := t.Tmpl.Execute(&b, vals); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (t *Template) RenderAsync(ctx context.Context, d Data) (string, error) {
	return t.Render(ctx, d)
}
