package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Vocabulary that marks a line as the wrapped tail of a project description
// rather than a project name.
var (
	projectContinuationWords = []string{
		"achieving", "optimized", "hyperparameter", "accuracy", "dataset", "trained",
		"implemented", "efficiency", "response times", "concurrent users", "processing",
	}
	projectBodyWords = []string{"using", "with", "achieving", "optimized"}
)

// IsProjectName applies the name-line heuristics in order; the first rule
// that decides wins.
func IsProjectName(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	n := utf8.RuneCountInString(t)
	low := strings.ToLower(t)
	hasPipe := strings.Contains(t, "|")
	hasColon := strings.Contains(t, ":")

	switch {
	case hasPipe && n < 100:
		return true
	case n > 80:
		return false
	case containsAny(low, projectContinuationWords) && !hasColon:
		return false
	case n < 50 && !containsAny(low, projectBodyWords):
		return true
	default:
		return hasColon && n < 100
	}
}

// ProjectName reduces a name line to the project name: the text before "|",
// or before ":" when there is no pipe.
func ProjectName(nameLines []string) string {
	name := strings.TrimSpace(strings.Join(nameLines, " "))
	if i := strings.Index(name, "|"); i >= 0 {
		name = name[:i]
	} else if i := strings.Index(name, ":"); i >= 0 {
		name = name[:i]
	}
	return trimSeparators(name)
}

type projectSplitter struct {
	blocks []types.Project
	names  []string
	chunk  []string
}

func (s *projectSplitter) flush() {
	if len(s.chunk) > 0 {
		if bullets := CollectBullets(s.chunk); len(bullets) > 0 {
			s.blocks = append(s.blocks, types.Project{Name: ProjectName(s.names), Bullets: bullets})
		}
	}
	s.names, s.chunk = nil, nil
}

// SplitProjects groups project-section lines into named blocks. When no block
// is found but the lines contain bullets, one unnamed project holds them all.
func SplitProjects(lines []string) []types.Project {
	s := &projectSplitter{}
	for _, line := range lines {
		t := strings.TrimSpace(line)
		switch {
		case IsBullet(t):
			s.chunk = append(s.chunk, line)
		case t == "":
			if len(s.chunk) > 0 {
				s.flush()
			}
		case IsProjectName(t):
			if len(s.chunk) > 0 {
				s.flush()
			}
			s.names = append(s.names, t)
		case len(s.chunk) > 0 || len(s.names) > 0:
			s.chunk = append(s.chunk, line)
		}
	}
	s.flush()

	if len(s.blocks) == 0 {
		if hasBulletLine(lines) {
			if bullets := CollectBullets(lines); len(bullets) > 0 {
				return []types.Project{{Name: "", Bullets: bullets}}
			}
		}
		return []types.Project{}
	}
	return s.blocks
}

// HasProjectish reports whether lines contain a short "Name | Stack" or
// "Name: detail" line followed within five lines by a bullet.
func HasProjectish(lines []string) bool {
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if IsBullet(t) {
			continue
		}
		if !strings.Contains(t, " | ") && !(strings.Contains(t, ":") && utf8.RuneCountInString(t) < 80) {
			continue
		}
		for j := i + 1; j < len(lines) && j <= i+5; j++ {
			if IsBullet(strings.TrimSpace(lines[j])) {
				return true
			}
		}
	}
	return false
}

func hasBulletLine(lines []string) bool {
	for _, l := range lines {
		if IsBullet(l) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
