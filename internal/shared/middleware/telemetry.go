package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Telemetry wraps an http.Handler with the otelhttp instrumentation:
// request duration, active requests, request/response sizes, and a
// trace span per request. Health probes are filtered out so load
// balancer checks do not drown out the API series.
func Telemetry(next http.Handler) http.Handler {
	return otelhttp.NewMiddleware("settleup-api",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	)(next)
}
