// pkg/screen/gate.go
package screen

import "context"

// PrincipalSource yields the capability tokens held by the current principal.
// A nil source, or a source with nothing in context, means no capabilities.
type PrincipalSource interface {
	Capabilities(ctx context.Context) []string
}

// CheckAccess evaluates a declarative permission spec against the principal's
// capability set. An empty spec is open. A non-empty spec passes when the
// principal holds ANY of the listed tokens: this is OR semantics across
// tokens, not AND, matching the observed platform behavior. A screen that
// lists several permissions is reachable by a holder of any one of them.
func CheckAccess(spec []string, caps []string) bool {
	if len(spec) == 0 {
		return true
	}
	held := make(map[string]struct{}, len(caps))
	for _, c := range caps {
		held[c] = struct{}{}
	}
	for _, want := range spec {
		if _, ok := held[want]; ok {
			return true
		}
	}
	return false
}
