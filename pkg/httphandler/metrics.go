package httphandler

import (
	"net/http"

	// Packages
	prometheus "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /metrics
func MetricsHandler(gatherer prometheus.Gatherer) (string, http.HandlerFunc) {
	return "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP
}
