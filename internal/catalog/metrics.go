package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Products     prometheus.Gauge
	BuildSeconds prometheus.Gauge
	Searches     prometheus.Counter
	Results      prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Products: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Products held by the catalog",
		}),
		BuildSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_build_seconds",
			Help: "Time spent loading and indexing the catalog",
		}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_searches_total",
			Help: "Search queries answered",
		}),
		Results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_search_results",
			Help:    "Products returned per search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
	}

	reg.MustRegister(m.Products, m.BuildSeconds, m.Searches, m.Results)
	return m
}

func (m *Metrics) observeBuild(products int, took time.Duration) {
	if m == nil {
		return
	}
	m.Products.Set(float64(products))
	m.BuildSeconds.Set(took.Seconds())
}

func (m *Metrics) observeSearch(results int) {
	if m == nil {
		return
	}
	m.Searches.Inc()
	m.Results.Observe(float64(results))
}
