// pkg/relay/builder.go
package relay

// Audit publisher implemented with Electrician builder primitives. Internals
// are hidden: no builder.* types are stored on the struct.

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joeydtaylor/electrician/pkg/builder"

	"github.com/joeydtaylor/steeze-screens/pkg/codec"
)

type builderPublisher struct {
	once   sync.Once
	start  error
	submit func(context.Context, []byte) error // captures wire.Submit
}

// NewPublisherFromEnv returns a Publisher powered by Electrician's
// ForwardRelay[[]byte]. It expects:
//
//	AUDIT_RELAY_TARGET         = "host:port[,host2:port2]"   (required)
//
// Optional features (all off by default):
//
//	AUDIT_RELAY_TLS_ENABLE     = "true" | "false"
//	AUDIT_RELAY_TLS_CLIENT_CRT = path (default: keys/tls/client.crt)
//	AUDIT_RELAY_TLS_CLIENT_KEY = path (default: keys/tls/client.key)
//	AUDIT_RELAY_TLS_CA         = path (default: keys/tls/ca.crt)
//	AUDIT_RELAY_COMPRESS       = "snappy" | ""
//
// If AUDIT_RELAY_TARGET is absent, it returns the noop Publisher.
func NewPublisherFromEnv() (Publisher, error) {
	raw := strings.TrimSpace(os.Getenv("AUDIT_RELAY_TARGET"))
	if raw == "" {
		return Noop(), nil
	}
	targets := strings.Split(raw, ",")

	useTLS := strings.EqualFold(os.Getenv("AUDIT_RELAY_TLS_ENABLE"), "true")
	tlsCrt := envOr("AUDIT_RELAY_TLS_CLIENT_CRT", "keys/tls/client.crt")
	tlsKey := envOr("AUDIT_RELAY_TLS_CLIENT_KEY", "keys/tls/client.key")
	tlsCA := envOr("AUDIT_RELAY_TLS_CA", "keys/tls/ca.crt")
	useSnappy := strings.EqualFold(os.Getenv("AUDIT_RELAY_COMPRESS"), "snappy")

	logger := builder.NewLogger(builder.LoggerWithDevelopment(true))

	// Build internals (not stored on the struct; captured by closures).
	ctx := context.Background()
	wire := builder.NewWire[[]byte](ctx, builder.WireWithLogger[[]byte](logger))

	perf := builder.NewPerformanceOptions(useSnappy, builder.COMPRESS_SNAPPY)
	tlsCfg := builder.NewTlsClientConfig(
		useTLS,
		tlsCrt, tlsKey, tlsCA,
		tls.VersionTLS13, tls.VersionTLS13,
	)

	fwd := builder.NewForwardRelay[[]byte](
		ctx,
		builder.ForwardRelayWithLogger[[]byte](logger),
		builder.ForwardRelayWithTarget[[]byte](targets...),
		builder.ForwardRelayWithPerformanceOptions[[]byte](perf),
		builder.ForwardRelayWithTLSConfig[[]byte](tlsCfg),
		builder.ForwardRelayWithInput(wire),
	)

	p := &builderPublisher{
		submit: func(ctx context.Context, b []byte) error { return wire.Submit(ctx, b) },
	}
	p.once.Do(func() {
		if err := wire.Start(ctx); err != nil {
			p.start = fmt.Errorf("audit wire start: %w", err)
			return
		}
		if err := fwd.Start(ctx); err != nil {
			p.start = fmt.Errorf("audit relay start: %w", err)
			return
		}
	})
	if p.start != nil {
		return nil, p.start
	}
	return p, nil
}

func (p *builderPublisher) Publish(ctx context.Context, ev AuditEvent) error {
	if p.start != nil {
		return p.start
	}
	body, err := codec.JSON.Marshal(ev)
	if err != nil {
		return fmt.Errorf("audit encode: %w", err)
	}
	return p.submit(ctx, body)
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
