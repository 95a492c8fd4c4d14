// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillbyte/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes label followed by up to limit items joined on one line
func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		fmt.Fprintf(sb, "%-10s(none)\n", label+":")
		return
	}
	shown := items[:min(len(items), limit)]
	line := strings.Join(shown, ", ")
	if len(items) > limit {
		line += fmt.Sprintf(" +%d more", len(items)-limit)
	}
	fmt.Fprintf(sb, "%-10s%s\n", label+":", line)
}

// PrintProfile outputs the detected skills, experience tier and role.
func (p *Printer) PrintProfile(report *types.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Technical", report.Profile.Technical, maxItemsToShow)
	writeList(&sb, "Soft", report.Profile.Soft, maxItemsToShow)
	writeList(&sb, "Tools", report.Profile.Tools, maxItemsToShow)
	writeList(&sb, "Certs", report.Profile.Certifications, 3)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Tier:     %s\n", report.Tier.Label())
	fmt.Fprintf(&sb, "Role:     %s", report.Role.Title())

	p.printBox("SKILL PROFILE", sb.String())
}

// PrintMatches outputs up to maxItemsToShow ranked job matches.
func (p *Printer) PrintMatches(title string, matches []types.RankedMatch) {
	if len(matches) == 0 {
		p.printBox(title, "No matching jobs")
		return
	}

	var sb strings.Builder
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s", i+1, m.Job.Title))
		if m.Job.Company != "" {
			sb.WriteString(fmt.Sprintf(" @ %s", m.Job.Company))
		}
		sb.WriteString("\n")
		switch {
		case m.Match > 0:
			sb.WriteString(fmt.Sprintf("    Match: %d%%\n", m.Match))
		default:
			sb.WriteString(fmt.Sprintf("    Overlap: %d\n", m.Score))
		}
		if len(m.Job.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", truncate(strings.Join(m.Job.Skills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(matches)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeedbackSource notes where the feedback came from and, after a failed
// remote call, why it fell back.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFeedbackSource(report *types.Report) {
	if report == nil {
		return
	}
	if report.RemoteError != "" {
		fmt.Fprintf(p.out, "⚠ remote feedback unavailable: %s\n", report.RemoteError)
	}
	fmt.Fprintf(p.out, "Feedback source: %s\n", report.FeedbackSource)
}

// PrintReport prints the profile, recommendation and listing boxes.
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}
	p.PrintProfile(report)
	p.PrintMatches("RECOMMENDED JOBS", report.Recommendations)
	p.PrintMatches("JOB LISTINGS", report.Listings)
	p.PrintFeedbackSource(report)
}
