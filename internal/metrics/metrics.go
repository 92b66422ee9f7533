// Package metrics provides Prometheus metrics for the browsing engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	navigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontend_navigations_total",
			Help: "Total number of folder navigations",
		},
		[]string{"status"},
	)

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontend_uploads_total",
			Help: "Total number of upload operations",
		},
		[]string{"status"},
	)

	uploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "frontend_upload_bytes_total",
			Help: "Total bytes sent to the upload endpoint",
		},
	)

	deletesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontend_deletes_total",
			Help: "Total number of delete operations",
		},
		[]string{"kind", "status"},
	)

	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontend_searches_total",
			Help: "Total number of search requests",
		},
		[]string{"status"},
	)
)

func status(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}

// RecordNavigation records one folder navigation.
func RecordNavigation(ok bool) {
	navigationsTotal.WithLabelValues(status(ok)).Inc()
}

// RecordUpload records one upload operation and its size.
func RecordUpload(ok bool, bytes int64) {
	uploadsTotal.WithLabelValues(status(ok)).Inc()
	if ok && bytes > 0 {
		uploadBytesTotal.Add(float64(bytes))
	}
}

// RecordDelete records one delete operation.
func RecordDelete(kind string, ok bool) {
	deletesTotal.WithLabelValues(kind, status(ok)).Inc()
}

// RecordSearch records one search request.
func RecordSearch(ok bool) {
	searchesTotal.WithLabelValues(status(ok)).Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
