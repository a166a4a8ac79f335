package logger

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.FilesProcessed.Inc()
	m.FilesProcessed.Inc()
	m.Rows.WithLabelValues("observed").Add(3)
	m.Rows.WithLabelValues("unknown").Inc()
	m.DatesDropped.WithLabelValues("Cases").Add(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FilesProcessed))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Rows.WithLabelValues("observed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatesDropped.WithLabelValues("Cases")))
}

func TestMetrics_Summary(t *testing.T) {
	m := NewMetrics()
	m.FilesProcessed.Inc()
	m.Rows.WithLabelValues("observed").Add(5)
	m.DatesDropped.WithLabelValues("Recoveries").Inc()

	summary, err := m.Summary()
	require.NoError(t, err)

	assert.Equal(t, 1.0, summary["files_processed"])
	assert.Equal(t, 5.0, summary["rows_observed"])
	assert.Equal(t, 1.0, summary["dates_dropped_recoveries"])
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	a.FilesProcessed.Inc()

	assert.Equal(t, 0.0, testutil.ToFloat64(b.FilesProcessed))
	assert.NotSame(t, a.Registry(), b.Registry())
}
