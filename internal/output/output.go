// Package output renders transform results and savings reports in text,
// JSON, and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bimmerbailey/kevinify/internal/savings"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Result is one input run through compress or expand.
type Result struct {
	Source string `json:"source,omitempty"` // file name, empty for args or stdin
	Mode   string `json:"mode"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// SavingsRow is a savings report for one input.
type SavingsRow struct {
	Source string `json:"source,omitempty"`
	savings.Report
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
	color  ColorMode
}

// New creates a new output Writer. Color is off until WithColor is called.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format, color: ColorNever}
}

// WithColor sets when text output is colorized.
func (wr *Writer) WithColor(mode ColorMode) *Writer {
	wr.color = mode
	return wr
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteResults outputs transform results in the configured format. Text
// output is just the transformed text, one result per line.
func (wr *Writer) WriteResults(results []Result) error {
	switch wr.format {
	case FormatJSON:
		if len(results) == 1 {
			return wr.WriteJSON(results[0])
		}
		return wr.WriteJSON(results)
	case FormatTable:
		return wr.writeResultsTable(results)
	default:
		for _, r := range results {
			if _, err := fmt.Fprintln(wr.w, r.Output); err != nil {
				return err
			}
		}
		return nil
	}
}

func (wr *Writer) writeResultsTable(results []Result) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tMODE\tIN\tOUT\tOUTPUT")
	fmt.Fprintln(tw, "------\t----\t--\t---\t------")

	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			sourceName(r.Source), r.Mode, len(r.Input), len(r.Output), truncate(r.Output, 60))
	}

	return tw.Flush()
}

// WriteSavings outputs savings reports. With more than one row a total is
// appended.
func (wr *Writer) WriteSavings(rows []SavingsRow) error {
	reports := make([]savings.Report, len(rows))
	for i, r := range rows {
		reports[i] = r.Report
	}
	total := savings.Total(reports...)

	switch wr.format {
	case FormatJSON:
		if len(rows) == 1 {
			return wr.WriteJSON(rows[0])
		}
		return wr.WriteJSON(map[string]interface{}{
			"inputs": rows,
			"total":  total,
		})
	case FormatTable:
		return wr.writeSavingsTable(rows, total)
	default:
		return wr.writeSavingsText(rows, total)
	}
}

func (wr *Writer) writeSavingsText(rows []SavingsRow, total savings.Report) error {
	colorize := shouldColorize(wr.color, wr.w)
	sep := strings.Repeat("=", 60)

	for i, r := range rows {
		if i > 0 {
			fmt.Fprintf(wr.w, "\n%s\n\n", sep)
		}
		if r.Source != "" {
			fmt.Fprintf(wr.w, "=== %s ===\n\n", r.Source)
		}
		fmt.Fprintln(wr.w, "Original:")
		fmt.Fprintln(wr.w, r.Original)
		fmt.Fprintf(wr.w, "\nCharacters: %d, Estimated tokens: ~%d\n\n", r.OriginalChars, r.OriginalTokens)
		fmt.Fprintln(wr.w, "Compressed:")
		fmt.Fprintln(wr.w, r.Compressed)
		fmt.Fprintf(wr.w, "\nCharacters: %d, Estimated tokens: ~%d\n\n", r.CompressedChars, r.CompressedTokens)
		wr.writeSavingsLine(r.Report, colorize)
	}

	if len(rows) > 1 {
		fmt.Fprintf(wr.w, "\n%s\n\nTotal across %d inputs:\n", sep, len(rows))
		wr.writeSavingsLine(total, colorize)
	}
	return nil
}

func (wr *Writer) writeSavingsLine(r savings.Report, colorize bool) {
	pct := fmt.Sprintf("%.1f%%", r.PercentSaved)
	if colorize {
		pct = colorizePercent(r.PercentSaved, pct)
	}
	fmt.Fprintf(wr.w, "Savings: %s fewer characters\n", pct)
	fmt.Fprintf(wr.w, "Estimated token reduction: %d tokens\n", r.SavedTokens)
}

func (wr *Writer) writeSavingsTable(rows []SavingsRow, total savings.Report) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tCHARS\tCOMPRESSED\tTOKENS\tCOMPRESSED\tSAVED\tPERCENT")
	fmt.Fprintln(tw, "------\t-----\t----------\t------\t----------\t-----\t-------")

	line := func(name string, r savings.Report) {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%.1f%%\n",
			name, r.OriginalChars, r.CompressedChars,
			r.OriginalTokens, r.CompressedTokens, r.SavedTokens, r.PercentSaved)
	}
	for _, r := range rows {
		line(sourceName(r.Source), r.Report)
	}
	if len(rows) > 1 {
		line("TOTAL", total)
	}

	return tw.Flush()
}

func sourceName(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
