package loader

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindLabel    = "kind"
	modeLabel    = "mode"
	errTypeLabel = "error_type"

	kindRays = "rays"
	kindBVH  = "bvh"
)

var (
	loadCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raydump_loads",
		Help: "The number of completed load operations.",
	}, []string{
		kindLabel,
		modeLabel,
	})

	loadError = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raydump_load_errors",
		Help: "The errors that occurred while loading a dump.",
	}, []string{
		kindLabel,
		errTypeLabel,
	})

	loadLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "raydump_load_latency",
		Help: "The time to decode and project a dump.",
	}, []string{
		kindLabel,
	})

	decodedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raydump_decoded_rays",
		Help: "The number of decoded ray records.",
	}, []string{
		"class",
	})

	decodedNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raydump_decoded_bvh_nodes",
		Help: "The number of decoded BVH nodes.",
	})
)

func instrumentLoad(kind, mode string, start time.Time) {
	loadLatency.With(prometheus.Labels{
		kindLabel: kind,
	}).Observe(time.Since(start).Seconds())

	loadCount.With(prometheus.Labels{
		kindLabel: kind,
		modeLabel: mode,
	}).Inc()
}

func instrumentLoadError(kind string, err error) {
	loadError.
		With(prometheus.Labels{
			kindLabel:    kind,
			errTypeLabel: errorType(err),
		}).
		Inc()
}

func instrumentRays(hits, misses int) {
	decodedRecords.WithLabelValues("hit").Add(float64(hits))
	decodedRecords.WithLabelValues("miss").Add(float64(misses))
}

func instrumentNodes(count int) {
	decodedNodes.Add(float64(count))
}
