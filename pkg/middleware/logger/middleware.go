// middleware/logger/middleware.go
package logger

import (
	"context"
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/joeydtaylor/steeze-screens/pkg/middleware/auth"
)

type ctxKey int

const dispatchCtxKey ctxKey = 0

// DispatchInfo is filled in by the dispatch handler so the access log can
// carry screen/action fields. The middleware seeds an empty record per
// request.
type DispatchInfo struct {
	Screen  string
	Action  string
	Outcome string
}

// Dispatch returns the request's dispatch record, nil outside the middleware.
func Dispatch(ctx context.Context) *DispatchInfo {
	d, _ := ctx.Value(dispatchCtxKey).(*DispatchInfo)
	return d
}

func (m *Middleware) Middleware(ca *auth.Middleware) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := httpAccessLogger

			ww := chimd.NewWrapResponseWriter(w, r.ProtoMajor)

			disp := &DispatchInfo{}
			r = r.WithContext(context.WithValue(r.Context(), dispatchCtxKey, disp))

			scheme := "http"
			if r.TLS != nil {
				scheme = "https"
			}

			start := time.Now()
			defer func() {
				lat := time.Since(start)

				// nil-safe auth lookups
				isAuth := false
				subject := ""
				provider := ""
				if ca != nil {
					isAuth = ca.IsAuthenticated(r.Context())
					p := ca.GetPrincipal(r.Context())
					subject = p.Subject
					provider = p.Provider
				}

				l.Info("",
					zap.String("dateTime", start.UTC().Format(time.RFC1123)),
					zap.String("requestId", chimd.GetReqID(r.Context())),
					zap.String("httpScheme", scheme),
					zap.Bool("isAuthenticated", isAuth),
					zap.String("subject", subject),
					zap.String("authenticationProvider", provider),
					zap.String("httpProto", r.Proto),
					zap.String("httpMethod", r.Method),
					zap.String("remoteAddr", r.RemoteAddr),
					zap.String("uri", r.URL.Path),
					zap.String("screen", disp.Screen),
					zap.String("action", disp.Action),
					zap.String("outcome", disp.Outcome),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("lat", lat),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
