package parsing

import (
	"regexp"
	"strings"
)

// longLineThreshold gates the title-then-date split; shorter lines are not
// the product of column concatenation.
const longLineThreshold = 60

var whitespaceRx = regexp.MustCompile(`\s+`)

// splitRule inserts line breaks into one physical line. Rules run in order
// and each sees the output of the previous one.
type splitRule struct {
	name    string
	pattern *regexp.Regexp
	repl    string
	minLen  int
}

var splitRules = []splitRule{
	{
		name:    "glued-date-range",
		pattern: regexp.MustCompile(`([a-z\).,])((?i:` + monthYearRangePattern + `))`),
		repl:    "$1\n$2",
	},
	{
		name:    "text-after-present",
		pattern: regexp.MustCompile(`(Present|PRESENT|(?:19|20)\d{2})([A-Z][a-z])`),
		repl:    "$1\n$2",
	},
	{
		name:    "glued-bullet",
		pattern: regexp.MustCompile(`([^\s•])[ \t]*(•)`),
		repl:    "$1\n$2",
	},
	{
		name: "title-then-date",
		pattern: regexp.MustCompile(`([a-z\).])([A-Z][A-Za-z /]*(?:Engineer|Developer|Research|Assistant|Intern|Analyst|Scientist|Manager|Fellow|Consultant|Lead|Architect|Designer)[A-Za-z ]*` +
			`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(?:19|20)\d{2})`),
		repl:   "$1\n$2",
		minLen: longLineThreshold,
	},
}

func (r splitRule) apply(line string) string {
	if len(line) < r.minLen {
		return line
	}
	return r.pattern.ReplaceAllString(line, r.repl)
}

// PreprocessLines splits concatenated role blocks, such as
// "Engineer Oct 2024 – PresentAcme Corp• Built X", into separate lines.
// Blank lines are preserved; every other output line is trimmed.
func PreprocessLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		for _, rule := range splitRules {
			line = rule.apply(line)
		}
		for _, part := range strings.Split(line, "\n") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
