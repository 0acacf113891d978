// Package cli provides output utilities for the Genie command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "text", "":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteResult writes one named text result (summary, script, answer) to w.
// Text mode prints the raw value; JSON mode wraps it under its name.
func WriteResult(w io.Writer, name, value string, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{name: value})
	default:
		_, err := fmt.Fprintln(w, value)
		return err
	}
}

// ProgressPrinter returns a callback that renders fractions as an in-place
// percentage line on w, terminating the line when the fraction reaches 1.
func ProgressPrinter(w io.Writer, label string) func(float64) {
	return func(fraction float64) {
		if fraction < 0 {
			fraction = 0
		}
		if fraction > 1 {
			fraction = 1
		}
		fmt.Fprintf(w, "\r%s %3.0f%%", label, fraction*100)
		if fraction == 1 {
			fmt.Fprintln(w)
		}
	}
}
