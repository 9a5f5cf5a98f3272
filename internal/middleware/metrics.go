package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamehub/internal/metrics"
)

// Metrics records request counts and latency per route template
func Metrics(m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := Record(w)

			next.ServeHTTP(rec, r)

			m.ObserveHTTP(routeLabel(r), r.Method, rec.status, time.Since(start))
		})
	}
}

// routeLabel keeps label cardinality bounded by using the mux template
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
