package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/hygiene"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

func TestPrintResumeProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeProfile(&types.ResumeProfile{
		Contact: types.Contact{Name: "Jane Doe", Email: "jane@example.com"},
		Skills:  types.StringList{"Go", "Python"},
		Experience: []types.ExperienceRole{
			{Role: "Backend Engineer", Company: "Globex", Start: "Jan 2022", End: "Present"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Backend Engineer @ Globex (Jan 2022 – Present)")
	assert.Contains(t, output, "• Python")
}

func TestPrintJobDescription(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobDescription(&types.JobDescription{
		Title:     "Senior Engineer",
		Company:   "Acme Corp",
		Required:  types.StringList{"Go", "Kubernetes", "Terraform", "AWS", "Docker", "PostgreSQL", "Redis"},
		Preferred: types.StringList{"Rust"},
	})
	output := buf.String()

	assert.Contains(t, output, "PARSED JOB DESCRIPTION")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "• Rust")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "Redis")
}

func TestPrint_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeProfile(nil)
	p.PrintJobDescription(nil)
	p.PrintAnalysis(nil)
	p.PrintBreakdown(nil)

	assert.Empty(t, buf.String())
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.AnalysisResult{
		AnalysisID:   "abc",
		Score:        72,
		Missing:      []string{"Kubernetes"},
		HygieneFlags: []string{"passive_voice"},
		Sections:     types.SectionScores{SkillsCoveragePct: 80},
	})
	output := buf.String()

	assert.Contains(t, output, "ANALYSIS abc")
	assert.Contains(t, output, "72/100")
	assert.Contains(t, output, "80%")
	assert.Contains(t, output, "• Kubernetes")
	assert.Contains(t, output, "• passive_voice")
}

func TestPrintBreakdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBreakdown(&scoring.Breakdown{
		Core: scoring.BucketCoverage{
			Name:    "core",
			Hits:    []scoring.TermHit{{Term: "Go", Present: true}, {Term: "Rust"}},
			Present: []string{"Go"},
			Missing: []string{"Rust"},
		},
		Hygiene: hygiene.Report{Score: 0.8},
		Raw:     61.5,
	})
	output := buf.String()

	assert.Contains(t, output, "SCORE BREAKDOWN")
	assert.Contains(t, output, "core       1/2")
	assert.Contains(t, output, "✓ Go")
	assert.Contains(t, output, "✗ Rust")
	assert.Contains(t, output, "Raw:      61.50")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[3], "...")
	for _, line := range lines {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, "warn", "json")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger, err = NewLogger(&buf, "DEBUG", "text")
	require.NoError(t, err)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")

	_, err = NewLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = NewLogger(&buf, "info", "xml")
	assert.Error(t, err)
}
