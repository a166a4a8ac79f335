package logger

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "corona_scraper"

// Metrics counts what happened during one run. The counters live on a private
// registry so repeated runs in one process (tests) never collide.
type Metrics struct {
	registry *prometheus.Registry

	FilesProcessed prometheus.Counter
	Rows           *prometheus.CounterVec // labels: outcome
	DatesDropped   *prometheus.CounterVec // labels: table
}

// NewMetrics creates and registers all run metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_processed_total",
			Help:      "Snapshot files parsed.",
		}),
		Rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Table rows seen, by extraction outcome.",
		}, []string{"outcome"}),
		DatesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dates_dropped_total",
			Help:      "Snapshot dates removed as unchanged duplicates, by table.",
		}, []string{"table"}),
	}

	m.registry.MustRegister(m.FilesProcessed, m.Rows, m.DatesDropped)
	return m
}

// Registry exposes the registry holding the run metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Summary flattens every counter into log fields, e.g. "rows_observed": 12.
func (m *Metrics) Summary() (Fields, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	fields := make(Fields)
	for _, mf := range families {
		base := strings.TrimSuffix(strings.TrimPrefix(mf.GetName(), namespace+"_"), "_total")
		for _, metric := range mf.GetMetric() {
			key := base
			for _, label := range metric.GetLabel() {
				key += "_" + strings.ToLower(label.GetValue())
			}
			fields[key] = metric.GetCounter().GetValue()
		}
	}
	return fields, nil
}
