package auth

import "context"

func (m *Middleware) GetPrincipal(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalCtxKey).(Principal); ok {
		return p
	}
	return Principal{}
}

func (m *Middleware) IsAuthenticated(ctx context.Context) bool {
	return m.GetPrincipal(ctx).Authenticated()
}

// Capabilities implements screen.PrincipalSource.
func (m *Middleware) Capabilities(ctx context.Context) []string {
	return m.GetPrincipal(ctx).Capabilities
}

// WithPrincipal injects p directly; used by tests and internal tooling.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}
