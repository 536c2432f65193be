package metrics

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// WriteText encodes the gatherer's current state to w in Prometheus
// text exposition format.
func WriteText(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	encoder := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return fmt.Errorf("encoding metric family %q: %w", family.GetName(), err)
		}
	}

	return nil
}

// WriteTextFile writes the gatherer's current state to the named file,
// creating or truncating it.
func WriteTextFile(path string, gatherer prometheus.Gatherer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating metrics dump file: %w", err)
	}

	if err := WriteText(f, gatherer); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
