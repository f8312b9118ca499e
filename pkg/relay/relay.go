// pkg/relay/relay.go
package relay

import (
	"context"
	"time"
)

// AuditEvent is one dispatch outcome published for offline audit.
type AuditEvent struct {
	Screen  string        `json:"screen"`
	Action  string        `json:"action"`
	Subject string        `json:"subject"`
	Outcome string        `json:"outcome"`
	Latency time.Duration `json:"latency"`
	At      time.Time     `json:"at"`
}

// Publisher ships audit events downstream. Publishing is best-effort: the
// route layer never fails a request on a publish error.
type Publisher interface {
	Publish(ctx context.Context, ev AuditEvent) error
}

// noopPublisher accepts events and discards them.
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, AuditEvent) error { return nil }

// Noop returns the discard publisher, used when no relay target is set.
func Noop() Publisher { return noopPublisher{} }
