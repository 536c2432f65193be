// Package metrics provides Prometheus metrics for logwrap.
//
// One Collector tracks a single wrapper process: how many children it
// has launched, how many lines and bytes it has captured, and how the
// children ended. Metrics are served by Server when -metrics is set
// and can be written out once at exit with WriteTextFile.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records capture activity. All methods are safe for
// concurrent use.
type Collector struct {
	launchesTotal      prometheus.Counter
	linesTotal         prometheus.Counter
	bytesTotal         prometheus.Counter
	forcedFlushesTotal prometheus.Counter
	childExitsTotal    *prometheus.CounterVec
	childRunning       prometheus.Gauge
	childUptimeSeconds prometheus.Histogram

	gatherer prometheus.Gatherer

	mu         sync.Mutex
	startTimes map[int]time.Time // pid → start time
}

// NewCollector creates a collector registered on the default registry.
func NewCollector() *Collector {
	return newCollector(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewCollectorWithRegistry creates a collector on a custom registry.
// Useful for testing.
func NewCollectorWithRegistry(registry *prometheus.Registry) *Collector {
	return newCollector(registry, registry)
}

func newCollector(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Collector {
	c := &Collector{
		launchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logwrap_launches_total",
			Help: "Child processes launched",
		}),
		linesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logwrap_lines_total",
			Help: "Lines captured from child output",
		}),
		bytesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logwrap_bytes_total",
			Help: "Bytes of line content captured from child output",
		}),
		forcedFlushesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logwrap_forced_flushes_total",
			Help: "Lines emitted because the reassembly buffer filled without a newline",
		}),
		childExitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logwrap_child_exits_total",
			Help: "Reaped children by outcome",
		}, []string{"outcome"}),
		childRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "logwrap_child_running",
			Help: "Children currently running",
		}),
		childUptimeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "logwrap_child_uptime_seconds",
			Help:    "Child run duration from start to reap",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
		gatherer:   gatherer,
		startTimes: make(map[int]time.Time),
	}

	registerer.MustRegister(
		c.launchesTotal,
		c.linesTotal,
		c.bytesTotal,
		c.forcedFlushesTotal,
		c.childExitsTotal,
		c.childRunning,
		c.childUptimeSeconds,
	)
	return c
}

// ChildStarted records a launch.
func (c *Collector) ChildStarted(pid int) {
	c.launchesTotal.Inc()
	c.childRunning.Inc()
	c.mu.Lock()
	c.startTimes[pid] = time.Now()
	c.mu.Unlock()
}

// LineCaptured records one emitted line of n content bytes.
func (c *Collector) LineCaptured(n int) {
	c.linesTotal.Inc()
	c.bytesTotal.Add(float64(n))
}

// ForcedFlush records a buffer-forced line emission.
func (c *Collector) ForcedFlush() {
	c.forcedFlushesTotal.Inc()
}

// ChildExited records a reaped child. Outcome is the short outcome
// class: "exited", "signaled", "stopped", or "unknown".
func (c *Collector) ChildExited(pid int, outcome string) {
	c.childExitsTotal.WithLabelValues(outcome).Inc()
	c.childRunning.Dec()

	c.mu.Lock()
	started, ok := c.startTimes[pid]
	delete(c.startTimes, pid)
	c.mu.Unlock()
	if ok {
		c.childUptimeSeconds.Observe(time.Since(started).Seconds())
	}
}

// Gatherer returns the gatherer holding this collector's metrics.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.gatherer
}
