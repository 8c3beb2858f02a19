package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

var (
	degreeRx = regexp.MustCompile(`(?i)(?:\b(?:Bachelor|Master|Associate|Doctor(?:ate)?|MBA|PhD|BSc|MSc|BEng|MEng|BTech|BS|BA)\b|\b(?:B\.S|B\.A|M\.S|M\.A|Ph\.D)\.?)[^,|\n]*`)
	schoolRx = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy|polytechnic)\b`)
	gradRx   = regexp.MustCompile(`(?i)(?:` + monthPattern + `\s+)?(?:19|20)\d{2}|\bexpected\b[^,|]*`)
)

// ParseEducation turns education-section lines into entries. Blank lines
// separate entries; a block without a blank separator starts a new entry at
// each line naming a school.
func ParseEducation(lines []string) []types.Education {
	out := []types.Education{}
	for _, block := range educationBlocks(lines) {
		if e, ok := parseEducationBlock(block); ok {
			out = append(out, e)
		}
	}
	return out
}

func educationBlocks(lines []string) [][]string {
	var blocks [][]string
	var cur []string
	for _, line := range lines {
		t := StripBullet(strings.TrimSpace(line))
		if t == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		if len(cur) > 0 && schoolRx.MatchString(t) && hasSchoolLine(cur) {
			blocks = append(blocks, cur)
			cur = nil
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

func hasSchoolLine(block []string) bool {
	for _, l := range block {
		if schoolRx.MatchString(l) {
			return true
		}
	}
	return false
}

func parseEducationBlock(block []string) (types.Education, bool) {
	var e types.Education
	for _, l := range block {
		if e.School == "" && schoolRx.MatchString(l) {
			e.School = l
		}
		if e.Degree == "" {
			if m := degreeRx.FindString(l); m != "" {
				e.Degree = trimSeparators(gradRx.ReplaceAllString(StripDateRange(m), ""))
			}
		}
		if ms := gradRx.FindAllString(l, -1); len(ms) > 0 {
			e.Grad = strings.TrimSpace(ms[len(ms)-1])
		}
	}
	if e.School == "" {
		e.School = block[0]
	}
	e.School = cleanSchool(e.School, e.Degree, e.Grad)
	return e, e.School != "" || e.Degree != ""
}

// cleanSchool removes the degree and date text when they share the school
// line.
func cleanSchool(school, degree, grad string) string {
	if dr, ok := FindDateRange(school); ok {
		school = school[:dr.Begin] + school[dr.Finish:]
	}
	if degree != "" {
		school = strings.Replace(school, degree, "", 1)
	}
	if grad != "" {
		school = strings.Replace(school, grad, "", 1)
	}
	return trimSeparators(school)
}
