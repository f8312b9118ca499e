// pkg/screen/current.go
package screen

import "context"

type currentKey struct{}

// WithCurrent marks s as the screen of the active render pass. The pointer
// lives only as long as the request context; nothing reads it across
// requests.
func WithCurrent(ctx context.Context, s *Screen) context.Context {
	return context.WithValue(ctx, currentKey{}, s)
}

// Current returns the screen of the active render pass, nil outside one.
// Render helpers nested under a layout use this instead of a process global.
func Current(ctx context.Context) *Screen {
	s, _ := ctx.Value(currentKey{}).(*Screen)
	return s
}
