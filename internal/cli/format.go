package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// fatih/color disables these when stdout is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
)

// printer writes formatted command output.
type printer struct {
	w io.Writer
}

// newPrinter returns a printer writing to the command's output.
func newPrinter(cmd *cobra.Command) *printer {
	return &printer{w: cmd.OutOrStdout()}
}

// JSON writes v as indented JSON.
func (p *printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Section prints a section header
func (p *printer) Section(title string) {
	_, _ = fmt.Fprintln(p.w)
	_, _ = headerColor.Fprintf(p.w, "▸ %s\n", title)
	_, _ = fmt.Fprintln(p.w)
}

// Success prints a success message with a checkmark
func (p *printer) Success(msg string) {
	_, _ = successColor.Fprintf(p.w, "✓ %s\n", msg)
}

// Info prints an informational message
func (p *printer) Info(msg string) {
	_, _ = fmt.Fprintln(p.w, msg)
}

// LabelValue prints a label-value pair
func (p *printer) LabelValue(label, value string) {
	_, _ = labelColor.Fprintf(p.w, "  %s: ", label)
	_, _ = valueColor.Fprintln(p.w, value)
}

// List prints a list of items with bullet points
func (p *printer) List(items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = infoColor.Fprintf(p.w, "%s• %s\n", indentStr, item)
	}
}

// Table prints a simple table with left-aligned columns
func (p *printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	_, _ = fmt.Fprint(p.w, "  ")
	for i, header := range headers {
		if i > 0 {
			_, _ = fmt.Fprint(p.w, "  ")
		}
		_, _ = headerColor.Fprintf(p.w, "%-*s", colWidths[i], header)
	}
	_, _ = fmt.Fprintln(p.w)

	_, _ = fmt.Fprint(p.w, "  ")
	for i, width := range colWidths {
		if i > 0 {
			_, _ = fmt.Fprint(p.w, "  ")
		}
		_, _ = fmt.Fprint(p.w, strings.Repeat("-", width))
	}
	_, _ = fmt.Fprintln(p.w)

	for _, row := range rows {
		_, _ = fmt.Fprint(p.w, "  ")
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				_, _ = fmt.Fprint(p.w, "  ")
			}
			_, _ = valueColor.Fprintf(p.w, "%-*s", colWidths[i], cell)
		}
		_, _ = fmt.Fprintln(p.w)
	}
}

// EmptyState prints a message when there's no data to show
func (p *printer) EmptyState(msg string) {
	_, _ = dimColor.Fprintf(p.w, "  %s\n", msg)
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// formatCount formats a count with the singular or plural noun
func formatCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
