// Package observability provides logging setup and formatted output for
// verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
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
		line = truncate(line, boxWidth-4)
		pad := boxWidth - 4 - utf8.RuneCountInString(line)
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", pad))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to limit runes, ending in "..." when cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

// writeList writes up to limit items as bullets with an overflow line.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintResumeProfile outputs a summary of a parsed résumé.
func (p *Printer) PrintResumeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Contact.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Contact.Email))
	sb.WriteString(fmt.Sprintf("Skills:   %d\n", len(profile.Skills)))
	sb.WriteString(fmt.Sprintf("Roles:    %d\n", len(profile.Experience)))
	sb.WriteString(fmt.Sprintf("Projects: %d\n", len(profile.Projects)))
	sb.WriteString("\n")

	roles := make([]string, 0, len(profile.Experience))
	for _, r := range profile.Experience {
		line := r.Role
		if r.Company != "" {
			line += " @ " + r.Company
		}
		if r.Start != "" || r.End != "" {
			line += fmt.Sprintf(" (%s – %s)", r.Start, r.End)
		}
		roles = append(roles, line)
	}
	writeList(&sb, "Experience", roles, maxItemsToShow)
	writeList(&sb, "Skills", profile.Skills, maxItemsToShow)

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobDescription outputs a summary of a parsed job posting.
func (p *Printer) PrintJobDescription(jd *types.JobDescription) {
	if jd == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", jd.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", jd.Title))
	sb.WriteString("\n")

	writeList(&sb, "Required", jd.Required, maxItemsToShow)
	writeList(&sb, "Preferred", jd.Preferred, 3)
	writeList(&sb, "Responsibilities", jd.Responsibilities, 3)

	p.printBox("PARSED JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the headline numbers of an analysis.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:      %d/100\n", result.Score))
	sb.WriteString(fmt.Sprintf("Core:       %d%%\n", result.Sections.SkillsCoveragePct))
	sb.WriteString(fmt.Sprintf("Preferred:  %d%%\n", result.Sections.PreferredCoveragePct))
	sb.WriteString(fmt.Sprintf("Domain:     %d%%\n", result.Sections.DomainCoveragePct))
	sb.WriteString(fmt.Sprintf("Verbs:      %d%%\n", result.Sections.VerbAlignmentPct))
	sb.WriteString(fmt.Sprintf("Recency:    %d%%\n", result.Sections.RecencyScorePct))
	sb.WriteString(fmt.Sprintf("Hygiene:    %d%%\n", result.Sections.HygieneScorePct))
	sb.WriteString("\n")

	writeList(&sb, "Missing", result.Missing, maxItemsToShow)
	writeList(&sb, "Flags", result.HygieneFlags, maxItemsToShow)

	p.printBox("ANALYSIS "+result.AnalysisID, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBreakdown outputs per-bucket hits and the raw weighted sum.
func (p *Printer) PrintBreakdown(b *scoring.Breakdown) {
	if b == nil {
		return
	}

	var sb strings.Builder
	for _, cov := range []scoring.BucketCoverage{b.Core, b.Preferred, b.Domain} {
		sb.WriteString(fmt.Sprintf("%-10s %d/%d\n", cov.Name, len(cov.Present), len(cov.Hits)))
		for _, hit := range cov.Hits {
			mark := "✗"
			if hit.Present {
				mark = "✓"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", mark, hit.Term))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Verbs:    %.2f\n", b.Verbs))
	sb.WriteString(fmt.Sprintf("Recency:  %.2f\n", b.Recency))
	sb.WriteString(fmt.Sprintf("Hygiene:  %.2f\n", b.Hygiene.Score))
	sb.WriteString(fmt.Sprintf("Bonus:    %.2f\n", b.Bonus))
	sb.WriteString(fmt.Sprintf("Raw:      %.2f", b.Raw))

	p.printBox("SCORE BREAKDOWN", sb.String())
}
