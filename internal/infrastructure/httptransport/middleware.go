package httptransport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/storefront/internal/observability"
	"github.com/storekit/storefront/internal/observability/logctx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ObservabilityMiddleware wires the per-request plumbing:
// W3C trace context extraction, X-Request-ID generation and echo,
// request-scoped logger injection, and HTTP RED metrics with
// low-cardinality labels.
func ObservabilityMiddleware(tel observability.Telemetry) func(http.Handler) http.Handler {
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	base := tel.Logger()
	requests := tel.Counter(observability.MHTTPRequests)
	durations := tel.Histogram(observability.MHTTPRequestDuration)
	prop := otel.GetTextMapPropagator()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			sc := trace.SpanContextFromContext(ctx)

			rid := r.Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", rid)

			fields := []observability.Field{observability.F("request_id", rid)}
			if sc.IsValid() {
				fields = append(fields,
					observability.F("trace_id", sc.TraceID().String()),
					observability.F("span_id", sc.SpanID().String()),
				)
			}
			ctx = logctx.With(ctx, base.With(fields...))

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			started := time.Now()
			next.ServeHTTP(recorder, r.WithContext(ctx))

			labels := []observability.Label{
				observability.L("method", r.Method),
				observability.L("path", routeLabel(r.URL.Path)),
				observability.L("status", strconv.Itoa(recorder.status)),
			}
			requests.Add(1, labels...)
			durations.Observe(time.Since(started).Seconds(),
				observability.L("method", r.Method),
				observability.L("path", routeLabel(r.URL.Path)),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// routeLabel collapses receipt lookups into one label value to keep
// metric cardinality bounded.
func routeLabel(path string) string {
	if len(path) > len("/orders/") && path[:len("/orders/")] == "/orders/" {
		return "/orders/{id}"
	}
	return path
}
