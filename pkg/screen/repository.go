// pkg/screen/repository.go
package screen

// Repository is the read-only container around one action's output. A fresh
// one is built per render pass and is never shared across requests.
type Repository struct {
	values map[string]any
}

// NewRepository copies src so later mutation of the source map cannot leak
// into an in-flight render.
func NewRepository(src map[string]any) *Repository {
	vals := make(map[string]any, len(src))
	for k, v := range src {
		vals[k] = v
	}
	return &Repository{values: vals}
}

func (r *Repository) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *Repository) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// GetString returns the value under name when it is a string, else "".
func (r *Repository) GetString(name string) string {
	if v, ok := r.values[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (r *Repository) Len() int { return len(r.values) }
