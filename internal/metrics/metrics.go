// Package metrics exposes the scraper's Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	inframetrics "github.com/mai-repo/Newscraper/infrastructure/metrics"
)

const namespace = "newscraper"

// Metrics holds all scraper Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Scrape metrics
	ScrapesTotal      *prometheus.CounterVec
	ScrapeDuration    prometheus.Histogram
	ArticlesExtracted prometheus.Counter
	ArticlesInserted  prometheus.Counter

	// Request metrics
	HTTP *inframetrics.HTTPMetrics
}

// New registers every metric on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ScrapesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrapes_total",
			Help:      "Scrape runs by outcome",
		}, []string{"outcome"}),
		ScrapeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scrape_duration_seconds",
			Help:      "Duration of a full fetch, extract and ingest run",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ArticlesExtracted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_extracted_total",
			Help:      "Triples extracted from listing pages",
		}),
		ArticlesInserted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_inserted_total",
			Help:      "Articles stored by the ingestor",
		}),
		HTTP: inframetrics.NewHTTPMetrics(reg, namespace),
	}
}

// ObserveScrape records one scrape run.
func (m *Metrics) ObserveScrape(outcome string, duration time.Duration, extracted, inserted int) {
	m.ScrapesTotal.WithLabelValues(outcome).Inc()
	m.ScrapeDuration.Observe(duration.Seconds())
	m.ArticlesExtracted.Add(float64(extracted))
	m.ArticlesInserted.Add(float64(inserted))
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
