// Package metrics exposes organize-pass counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joseph-ayodele/docsorter/constants"
)

const namespace = "docsorter"

// Collector holds the pass metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry
	files    *prometheus.CounterVec
	ocr      prometheus.Counter
	batch    prometheus.Histogram
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Files processed, by outcome.",
		}, []string{"outcome"}),
		ocr: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ocr_fallback_total",
			Help:      "PDFs whose embedded text was inconclusive and went through OCR.",
		}),
		batch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of an organize pass.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}),
	}
	c.registry.MustRegister(c.files, c.ocr, c.batch,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	// expose every outcome from the start, even at zero
	for _, o := range constants.AllOutcomes {
		c.files.WithLabelValues(string(o))
	}
	return c
}

func (c *Collector) FileFiled(outcome constants.Outcome) {
	c.files.WithLabelValues(string(outcome)).Inc()
}

func (c *Collector) OCRFallback() { c.ocr.Inc() }

func (c *Collector) BatchFinished(d time.Duration) { c.batch.Observe(d.Seconds()) }

// Handler serves the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
