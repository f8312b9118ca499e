// core/router.go
package core

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	chimd "github.com/go-chi/chi/v5/middleware"

	"github.com/joeydtaylor/steeze-screens/pkg/codec"
	manifest "github.com/joeydtaylor/steeze-screens/pkg/manifest"
	"github.com/joeydtaylor/steeze-screens/pkg/middleware/logger"
	hmetrics "github.com/joeydtaylor/steeze-screens/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-screens/pkg/relay"
	"github.com/joeydtaylor/steeze-screens/pkg/screen"
	httpx "github.com/joeydtaylor/steeze-screens/pkg/transport/httpx"
)

func BuildRouter(cfg manifest.Config, d BuildDeps) http.Handler {
	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))
	if d.Auth != nil {
		r.Use(d.Auth.Middleware())
	}
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware(d.Auth))
	}
	r.Use(hmetrics.Collect())

	if d.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", d.Metrics)
	}

	for _, mt := range cfg.Mounts {
		h := withGuard(wrapMount(mt, d), d.Auth, mt.Guard)
		async := withGuard(wrapAsync(mt, d), d.Auth, mt.Guard)

		// Static "async" segment wins over the {param} patterns below.
		r.Post(joinPattern(mt.Path, "async/{asyncMethod}/{asyncSlug}"), async)

		// One pattern per argument count: the trailing variables are all
		// optional, so each prefix gets the same handler.
		pattern := mt.Path
		r.Get(pattern, h)
		r.Post(pattern, h)
		for _, p := range mt.Params {
			pattern = joinPattern(pattern, "{"+p+"}")
			r.Get(pattern, h)
			r.Post(pattern, h)
		}
	}
	return r.Mux()
}

func wrapMount(mt manifest.Mount, d BuildDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mk, ok := Lookup(mt.Screen)
		if !ok {
			http.Error(w, "screen not registered", http.StatusInternalServerError)
			return
		}
		s := mk()
		disp := screen.NewDispatcher(s, d.Resolver, principals(d))
		rs, raw := httpx.RouteState(r, mt.Params)

		start := time.Now()
		out, err := disp.Handle(r.Context(), r.Method, rs, raw)
		action := actionLabel(r.Method, rs, raw)
		outcome := outcomeOf(out, err)

		noteDispatch(r, mt.Screen, action, outcome)
		hmetrics.ObserveDispatch(mt.Screen, action, outcome)
		publishAudit(d, r, mt.Screen, action, outcome, time.Since(start))

		if err != nil {
			writeDispatchError(w, err)
			return
		}
		writeResult(w, r, mt, out)
	}
}

func wrapAsync(mt manifest.Mount, d BuildDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mk, ok := Lookup(mt.Screen)
		if !ok {
			http.Error(w, "screen not registered", http.StatusInternalServerError)
			return
		}
		s := mk()
		disp := screen.NewDispatcher(s, d.Resolver, principals(d))

		body, _ := io.ReadAll(r.Body)
		params, err := codec.DecodeParams(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		method := chi.URLParam(r, "asyncMethod")
		slug := chi.URLParam(r, "asyncSlug")
		rs := screen.NewParams(nil, len(mt.Params))

		start := time.Now()
		frag, err := disp.AsyncBuild(r.Context(), method, slug, rs, params)
		outcome := "fragment"
		if err != nil {
			outcome = errorOutcome(err)
		}

		noteDispatch(r, mt.Screen, method, outcome)
		hmetrics.ObserveDispatch(mt.Screen, method, outcome)
		publishAudit(d, r, mt.Screen, method, outcome, time.Since(start))

		if err != nil {
			writeDispatchError(w, err)
			return
		}
		hmetrics.ObservePartialRender(mt.Screen, frag.Slug)
		writeHTML(w, frag.HTML)
	}
}

func principals(d BuildDeps) screen.PrincipalSource {
	if d.Auth == nil {
		return nil
	}
	return d.Auth
}

// actionLabel mirrors the dispatcher's target selection for observability.
func actionLabel(verb string, rs screen.RouteState, raw []string) string {
	if verb == http.MethodGet || verb == http.MethodHead {
		return screen.QueryName
	}
	if v, ok := rs.Parameter(manifest.MethodParam); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if len(raw) > 0 {
		return raw[len(raw)-1]
	}
	return ""
}

func outcomeOf(out any, err error) string {
	if err != nil {
		return errorOutcome(err)
	}
	switch out.(type) {
	case *screen.ViewResult:
		return "view"
	case *screen.RedirectResult:
		return "redirect"
	default:
		return "action"
	}
}

func errorOutcome(err error) string {
	switch {
	case errors.Is(err, screen.ErrNotAuthorized):
		return "denied"
	case errors.Is(err, screen.ErrActionNotFound), errors.Is(err, screen.ErrSlugNotFound):
		return "not_found"
	default:
		var be *screen.BindingError
		if errors.As(err, &be) {
			return "bind_error"
		}
		return "error"
	}
}

// writeDispatchError maps the dispatch taxonomy onto HTTP statuses at the
// boundary; nothing below this layer writes a response.
func writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, screen.ErrNotAuthorized):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, screen.ErrActionNotFound):
		http.Error(w, "action not found", http.StatusNotFound)
	case errors.Is(err, screen.ErrSlugNotFound):
		http.Error(w, "fragment not found", http.StatusNotFound)
	default:
		var be *screen.BindingError
		if errors.As(err, &be) {
			http.Error(w, be.Error(), http.StatusInternalServerError)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeResult(w http.ResponseWriter, r *http.Request, mt manifest.Mount, out any) {
	switch v := out.(type) {
	case *screen.ViewResult:
		writeHTML(w, v.HTML)
	case *screen.RedirectResult:
		http.Redirect(w, r, redirectLocation(mt.Path, v.Args), http.StatusSeeOther)
	case string:
		writeHTML(w, v)
	case nil:
		w.WriteHeader(http.StatusNoContent)
	default:
		b, err := codec.JSON.Marshal(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", codec.JSON.ContentType())
		_, _ = w.Write(b)
	}
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func redirectLocation(base string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, base)
	for _, a := range args {
		parts = append(parts, url.PathEscape(a))
	}
	return path.Join(parts...)
}

func joinPattern(base, seg string) string {
	if base == "/" {
		return "/" + seg
	}
	return base + "/" + seg
}

func noteDispatch(r *http.Request, screenName, action, outcome string) {
	if d := logger.Dispatch(r.Context()); d != nil {
		d.Screen = screenName
		d.Action = action
		d.Outcome = outcome
	}
}

func publishAudit(d BuildDeps, r *http.Request, screenName, action, outcome string, lat time.Duration) {
	if d.Audit == nil {
		return
	}
	subject := ""
	if d.Auth != nil {
		subject = d.Auth.GetPrincipal(r.Context()).Subject
	}
	// Best-effort: audit must never fail a request.
	_ = d.Audit.Publish(r.Context(), relay.AuditEvent{
		Screen:  screenName,
		Action:  action,
		Subject: subject,
		Outcome: outcome,
		Latency: lat,
		At:      time.Now().UTC(),
	})
}
