package middleware

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	httpTracer             = otel.Tracer("settleup/http")
	httpMeter              = otel.Meter("settleup/http")
	httpRequestDuration, _ = httpMeter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	httpRequestTotal, _ = httpMeter.Int64Counter("http.server.request.total",
		metric.WithDescription("Total HTTP requests"),
	)
)

// Tracing creates a span and records request metrics for each request.
// Span names and the http.route label use the normalized route, not
// the raw path, so every card keeps feeding the same time series.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeLabel(r.URL.Path)
		ctx, span := httpTracer.Start(r.Context(), r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		start := time.Now()
		wrapped := wrapResponseWriter(w)
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		status := wrapped.status
		if status == 0 {
			status = 200
		}

		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		attrs := metric.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		httpRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		httpRequestTotal.Add(ctx, 1, attrs)
	})
}

// routeLabel collapses per-resource path segments (card ids, currency
// codes) into placeholders. Unrecognized paths pass through unchanged.
func routeLabel(path string) string {
	if rest, ok := strings.CutPrefix(path, "/api/cards/"); ok && rest != "" {
		switch rest {
		case "summary", "upcoming", "stream":
			return path
		}
		if strings.HasSuffix(rest, "/reminder") {
			return "/api/cards/{id}/reminder"
		}
		if strings.HasSuffix(rest, "/reminder.ics") {
			return "/api/cards/{id}/reminder.ics"
		}
		return "/api/cards/{id}"
	}
	if rest, ok := strings.CutPrefix(path, "/api/currencies/available/"); ok && rest != "" {
		return "/api/currencies/available/{code}"
	}
	return path
}
