package config

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecordMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sinifplanim_record_mutations_total",
		Help: "Daily-record mutations by operation.",
	}, []string{"op"})

	BlobPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sinifplanim_blob_persist_failures_total",
		Help: "Blob writes that failed after the in-memory state was updated.",
	})
)

// StartMetricsServer serves /metrics on a sidecar listener so the fiber app
// keeps its own port. Never blocks the caller.
func StartMetricsServer() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		addr = ":9091"
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			GetLogrusInstance().Warnf("metrics server stopped: %v", err)
		}
	}()
}
