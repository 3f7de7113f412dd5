// Package observability provides formatted console output for run results.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/social-scout/internal/pipeline"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output at the end of a run
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunSummary outputs how many profiles were discovered, fetched and
// failed, and where the CSV landed.
func (p *Printer) PrintRunSummary(s *pipeline.Summary) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:        %s\n", s.RunID))
	sb.WriteString(fmt.Sprintf("Discovered: %d\n", s.Discovered))
	sb.WriteString(fmt.Sprintf("Fetched:    %d\n", s.Fetched))
	sb.WriteString(fmt.Sprintf("Failed:     %d\n", s.Failed))
	if s.QueriesFailed > 0 {
		sb.WriteString(fmt.Sprintf("Queries skipped: %d\n", s.QueriesFailed))
	}
	if s.Fetched > 0 {
		sb.WriteString(fmt.Sprintf("Output:     %s", s.Output))
	} else {
		sb.WriteString("Output:     (nothing written)")
	}

	p.printBox("RUN SUMMARY", sb.String())
}
