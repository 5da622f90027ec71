// Package metrics exports the counters of a syslog.Logger to Prometheus.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bvarner/syslog"
)

// StatsSource is implemented by *syslog.Logger.
type StatsSource interface {
	Stats() syslog.Stats
}

// Collector reads a fresh Stats snapshot on every scrape.
type Collector struct {
	source StatsSource

	uptime              *prometheus.Desc
	dispatched          *prometheus.Desc
	rotations           *prometheus.Desc
	deletions           *prometheus.Desc
	compressions        *prometheus.Desc
	compressionFailures *prometheus.Desc
	openFailures        *prometheus.Desc
	writeFailures       *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for source. Metric names are prefixed
// with namespace, e.g. "app" yields "app_syslog_dispatched_total".
func NewCollector(source StatsSource, namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "syslog", name), help, nil, nil)
	}
	return &Collector{
		source:              source,
		uptime:              desc("uptime_seconds", "Time since the logger was created"),
		dispatched:          desc("dispatched_total", "Total number of log requests dispatched"),
		rotations:           desc("rotations_total", "Total number of size-triggered log file rollovers"),
		deletions:           desc("deletions_total", "Total number of old log files removed by retention"),
		compressions:        desc("compressions_total", "Total number of closed log files compressed"),
		compressionFailures: desc("compression_failures_total", "Total number of failed log file compressions"),
		openFailures:        desc("open_failures_total", "Total number of log files that could not be opened"),
		writeFailures:       desc("write_failures_total", "Total number of failed log file writes"),
	}
}

// Register creates a collector for source and registers it with registry.
func Register(registry prometheus.Registerer, source StatsSource, namespace string) (*Collector, error) {
	c := NewCollector(source, namespace)
	if err := registry.Register(c); err != nil {
		return nil, fmt.Errorf("failed to register syslog metrics: %w", err)
	}
	return c, nil
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.uptime
	ch <- c.dispatched
	ch <- c.rotations
	ch <- c.deletions
	ch <- c.compressions
	ch <- c.compressionFailures
	ch <- c.openFailures
	ch <- c.writeFailures
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, s.Uptime.Seconds())
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	counter(c.dispatched, s.Dispatched)
	counter(c.rotations, s.Rotations)
	counter(c.deletions, s.Deletions)
	counter(c.compressions, s.Compressions)
	counter(c.compressionFailures, s.CompressionFailures)
	counter(c.openFailures, s.OpenFailures)
	counter(c.writeFailures, s.WriteFailures)
}
