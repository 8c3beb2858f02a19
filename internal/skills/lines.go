package skills

import (
	"regexp"
	"strings"
)

var (
	skillSeparatorRx = regexp.MustCompile(`[,;|·•]`)
	skillLabelRx     = regexp.MustCompile(`^([A-Za-z][A-Za-z &/+-]{0,30}):\s*(.*)$`)
	conjunctionRx    = regexp.MustCompile(`(?i)^(?:and|or|&)\s+`)
)

// SplitSkillLines turns raw skills-section lines such as
// "Languages: Python, Go / Rust" into individual terms. A slash splits two
// terms unless the whole token is a known alias (CI/CD).
func (c *Canonicalizer) SplitSkillLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(leadingGlyphRx.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		if m := skillLabelRx.FindStringSubmatch(line); m != nil {
			line = m[2]
		}
		line = strings.NewReplacer("(", ",", ")", "", "[", ",", "]", "").Replace(line)

		for _, part := range skillSeparatorRx.Split(line, -1) {
			part = conjunctionRx.ReplaceAllString(strings.TrimSpace(part), "")
			if part == "" {
				continue
			}
			if strings.Contains(part, "/") {
				if _, known := c.table.Lookup(lookupKey(part)); !known {
					for _, sub := range strings.Split(part, "/") {
						if sub = cleanTerm(sub); sub != "" {
							out = append(out, sub)
						}
					}
					continue
				}
			}
			if part = cleanTerm(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
