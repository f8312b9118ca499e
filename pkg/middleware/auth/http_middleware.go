package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const principalCtxKey ctxKey = 0

// Middleware resolves the request's principal and stores it in context.
// Validation failure leaves the request unauthenticated rather than
// rejecting it: the screen gate treats a missing principal as holding no
// capabilities, and the dispatch layer turns that into a 403.
func (m *Middleware) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.devBypass {
				ctx := context.WithValue(r.Context(), principalCtxKey, Principal{
					Subject:      "dev",
					Capabilities: m.devCaps,
					Provider:     "dev-bypass",
				})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			raw := bearerToken(r)
			if raw == "" {
				if c, err := r.Cookie(m.cookieName); err == nil {
					raw = c.Value
				}
			}
			if raw != "" {
				if p, err := m.validateAssertion(raw); err == nil {
					ctx := context.WithValue(r.Context(), principalCtxKey, p)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
