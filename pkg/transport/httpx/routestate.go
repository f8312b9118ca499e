// pkg/transport/httpx/routestate.go
package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joeydtaylor/steeze-screens/pkg/screen"
)

// RouteState builds the dispatcher's route state from the chi route context.
// declared lists the mount's path variables in order; the returned raw slice
// holds the values actually present in the URL, positionally.
func RouteState(r *http.Request, declared []string) (*screen.Params, []string) {
	vals := make(map[string]any, len(declared))
	raw := make([]string, 0, len(declared))
	for _, name := range declared {
		if v := chi.URLParam(r, name); v != "" {
			vals[name] = v
			raw = append(raw, v)
		}
	}
	return screen.NewParams(vals, len(declared)), raw
}
