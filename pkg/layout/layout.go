// pkg/layout/layout.go
package layout

import "context"

// Data is the read-only view of the active data container. screen.Repository
// satisfies it; layout stays decoupled from the screen package.
type Data interface {
	Get(name string) (any, bool)
	Has(name string) bool
}

// Node is one fragment in a screen's layout tree. Slug may be empty for
// nodes that cannot be addressed by a partial render.
type Node interface {
	Slug() string
	Children() []Node
	Render(ctx context.Context, d Data) (string, error)
	RenderAsync(ctx context.Context, d Data) (string, error)
}

// Descriptor declares one layout entry: either an already-built Node or a
// factory invoked once per render pass.
type Descriptor struct {
	node    Node
	factory func() Node
}

// Use declares an already-constructed node.
func Use(n Node) Descriptor { return Descriptor{node: n} }

// Make declares a node factory, built fresh on each normalization.
func Make(f func() Node) Descriptor { return Descriptor{factory: f} }

// Normalize turns descriptors into concrete nodes. Nil entries are dropped.
func Normalize(ds []Descriptor) []Node {
	out := make([]Node, 0, len(ds))
	for _, d := range ds {
		n := d.node
		if n == nil && d.factory != nil {
			n = d.factory()
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// FindBySlug walks nodes depth-first and returns the first node whose slug
// matches. Returns nil when no node matches.
func FindBySlug(nodes []Node, slug string) Node {
	for _, n := range nodes {
		if n.Slug() == slug {
			return n
		}
		if hit := FindBySlug(n.Children(), slug); hit != nil {
			return hit
		}
	}
	return nil
}
