package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
)

// Text writes a plain-text rendering of the report. A nil report writes nothing.
func Text(w io.Writer, r *report.MatchReport) error {
	v := NewView(r)
	if v == nil {
		return nil
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Match score: %d/%d\n", v.Score, v.MaxScore)
	fmt.Fprintf(bw, "Decision:    %s\n", v.Decision)

	fmt.Fprintln(bw, "\nWhy this score")
	for _, line := range v.Why {
		fmt.Fprintf(bw, "  - %s\n", line)
	}

	fmt.Fprintln(bw, "\nRadar")
	for _, b := range v.Bars {
		fmt.Fprintf(bw, "  %-11s %2d/%-2d %s\n", b.Label, b.Value, b.Max, meter(b.Percent))
	}

	fmt.Fprintln(bw, "\nMissing qualifications")
	if len(v.Missing) == 0 {
		fmt.Fprintln(bw, "  (none)")
	}
	for _, q := range v.Missing {
		fmt.Fprintf(bw, "  [%s] %s  -%d\n", q.Severity, q.Text, q.Penalty)
	}

	fmt.Fprintln(bw, "\nKeyword coverage")
	fmt.Fprintf(bw, "  Matched: %s\n", joinOrNone(v.MatchedKeywords))
	fmt.Fprintf(bw, "  Missing: %s\n", joinOrNone(v.MissingKeywords))

	return bw.Flush()
}

func meter(percent int) string {
	filled := percent / 10
	return strings.Repeat("#", filled) + strings.Repeat(".", 10-filled)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
