package middleware

import (
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/telemetry"
)

// Metrics records request count, latency and in-flight gauge per route template.
func Metrics(m *telemetry.Metrics) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		m.InflightRequests.Inc()
		defer m.InflightRequests.Dec()

		route := "UNMATCHED"
		if op := ctx.Operation(); op != nil {
			route = op.Path
		}

		next(ctx)

		m.RequestsTotal.WithLabelValues(ctx.Method(), route, strconv.Itoa(ctx.Status())).Inc()
		m.RequestDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
	}
}
