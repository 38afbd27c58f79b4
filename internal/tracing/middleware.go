package tracing

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// NewTracingMiddleware starts a server span per request, continuing any
// trace propagated in the request headers.
func NewTracingMiddleware(t Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := t.StartSpanFromHeader(r.Context(), r.Header, "http.request")
			defer span.End()

			t.InjectHTTP(ctx, w.Header())

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			span.SetName(strings.ToUpper(r.Method) + " " + route)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			span.SetAttributes(
				attribute.String("http.method", strings.ToUpper(r.Method)),
				attribute.String("http.route", route),
				attribute.Int("http.status_code", status),
			)
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}
