package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bvarner/syslog"
)

type fixedStats syslog.Stats

func (f fixedStats) Stats() syslog.Stats { return syslog.Stats(f) }

func TestCollector(t *testing.T) {
	src := fixedStats{
		Dispatched:          12,
		Rotations:           3,
		Deletions:           2,
		Compressions:        3,
		CompressionFailures: 1,
	}
	c := NewCollector(src, "app")

	assert.Equal(t, 8, testutil.CollectAndCount(c))

	expected := `
# HELP app_syslog_dispatched_total Total number of log requests dispatched
# TYPE app_syslog_dispatched_total counter
app_syslog_dispatched_total 12
# HELP app_syslog_rotations_total Total number of size-triggered log file rollovers
# TYPE app_syslog_rotations_total counter
app_syslog_rotations_total 3
# HELP app_syslog_compression_failures_total Total number of failed log file compressions
# TYPE app_syslog_compression_failures_total counter
app_syslog_compression_failures_total 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"app_syslog_dispatched_total", "app_syslog_rotations_total", "app_syslog_compression_failures_total"))
}

func TestCollectorWithLogger(t *testing.T) {
	logger := syslog.NewLogger(syslog.WithConsoleWriter(&bytes.Buffer{}))
	defer logger.Shutdown()

	registry := prometheus.NewRegistry()
	_, err := Register(registry, logger, "")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, logger.Logf(syslog.LevelInfo, "message %d", i))
	}

	count, err := testutil.GatherAndCount(registry, "syslog_dispatched_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "syslog_dispatched_total" {
			assert.Equal(t, float64(5), mf.GetMetric()[0].GetCounter().GetValue())
		}
	}

	_, err = Register(registry, logger, "")
	assert.Error(t, err, "duplicate registration")
}
