package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resource names double as API surfaces and metric labels.
const (
	resourceH2I   = "h2i"
	resourceImage = "image"
	resourcePDF   = "pdf"
	resourceTools = "tools"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "renderjet_client",
			Name:      "requests_total",
			Help:      "API requests issued, by resource.",
		},
		[]string{"resource"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "renderjet_client",
			Name:      "request_failures_total",
			Help:      "API requests that failed in transport or returned non-2xx.",
		},
		[]string{"resource"},
	)

	downloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "renderjet_client",
			Name:      "result_downloads_total",
			Help:      "Result URLs fetched back into byte buffers.",
		},
	)
)
