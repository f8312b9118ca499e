package core

import (
	"net/http"

	manifest "github.com/joeydtaylor/steeze-screens/pkg/manifest"
	"github.com/joeydtaylor/steeze-screens/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-screens/pkg/screen"
)

// withGuard enforces the mount-level declaration before dispatch. Capability
// checks use the same any-token gate as the screen's own permission spec.
func withGuard(next http.HandlerFunc, a *auth.Middleware, g manifest.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// If no auth middleware wired, only allow when the mount doesn't
		// require one.
		if a == nil {
			if g.RequireAuth || len(g.Capabilities) > 0 {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next(w, r)
			return
		}

		if g.RequireAuth && !a.IsAuthenticated(r.Context()) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if len(g.Capabilities) > 0 {
			if !a.IsAuthenticated(r.Context()) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !screen.CheckAccess(g.Capabilities, a.Capabilities(r.Context())) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
		}
		next(w, r)
	}
}
