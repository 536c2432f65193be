package metrics

import (
	"fmt"

	dto "github.com/prometheus/client_model/go"
)

// Snapshot is a point-in-time view of the capture counters, extracted
// from the gathered metric families. The TUI polls this instead of
// reaching into the Prometheus client types.
type Snapshot struct {
	Launches      uint64
	Lines         uint64
	Bytes         uint64
	ForcedFlushes uint64
	ChildRunning  int
}

// Snapshot gathers the registry and extracts the logwrap counters.
func (c *Collector) Snapshot() (*Snapshot, error) {
	families, err := c.gatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, family := range families {
		byName[family.GetName()] = family
	}

	return &Snapshot{
		Launches:      uint64(counterValue(byName, "logwrap_launches_total")),
		Lines:         uint64(counterValue(byName, "logwrap_lines_total")),
		Bytes:         uint64(counterValue(byName, "logwrap_bytes_total")),
		ForcedFlushes: uint64(counterValue(byName, "logwrap_forced_flushes_total")),
		ChildRunning:  int(gaugeValue(byName, "logwrap_child_running")),
	}, nil
}

// counterValue sums the counter samples of the named family, zero if
// the family is absent.
func counterValue(families map[string]*dto.MetricFamily, name string) float64 {
	family, ok := families[name]
	if !ok {
		return 0
	}
	var total float64
	for _, metric := range family.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	return total
}

// gaugeValue sums the gauge samples of the named family.
func gaugeValue(families map[string]*dto.MetricFamily, name string) float64 {
	family, ok := families[name]
	if !ok {
		return 0
	}
	var total float64
	for _, metric := range family.GetMetric() {
		total += metric.GetGauge().GetValue()
	}
	return total
}
