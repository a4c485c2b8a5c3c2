// Package report renders harness results as text, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Result is the timing of one scenario.
type Result struct {
	Scenario   string        `json:"scenario"`
	Entities   int           `json:"entities"`
	Rows       int           `json:"rows"` // rows touched per iteration
	Iterations int           `json:"iterations"`
	Total      time.Duration `json:"total_ns"`
	PerOp      time.Duration `json:"per_op_ns"`
	PerRow     float64       `json:"per_row_ns"`
}

// yamlResult is Result with durations as integer nanoseconds; yaml.v3 would
// otherwise print them as strings.
type yamlResult struct {
	Scenario   string  `yaml:"scenario"`
	Entities   int     `yaml:"entities"`
	Rows       int     `yaml:"rows"`
	Iterations int     `yaml:"iterations"`
	Total      int64   `yaml:"total_ns"`
	PerOp      int64   `yaml:"per_op_ns"`
	PerRow     float64 `yaml:"per_row_ns"`
}

// MarshalYAML implements yaml.Marshaler.
func (r Result) MarshalYAML() (any, error) {
	return yamlResult{
		Scenario:   r.Scenario,
		Entities:   r.Entities,
		Rows:       r.Rows,
		Iterations: r.Iterations,
		Total:      r.Total.Nanoseconds(),
		PerOp:      r.PerOp.Nanoseconds(),
		PerRow:     r.PerRow,
	}, nil
}

// Write renders results to w in format.
func Write(w io.Writer, format string, results []Result) error {
	switch format {
	case "text":
		return writeText(w, results)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return eris.Wrap(err, "failed to encode json report")
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return eris.Wrap(err, "failed to encode yaml report")
		}
		return eris.Wrap(enc.Close(), "failed to flush yaml report")
	default:
		return eris.Errorf("unknown report format %q", format)
	}
}

func writeText(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "scenario\tentities\trows\titerations\tper op\tns/row\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%.3f\t\n",
			r.Scenario, r.Entities, r.Rows, r.Iterations, r.PerOp, r.PerRow)
	}
	return eris.Wrap(tw.Flush(), "failed to write text report")
}
