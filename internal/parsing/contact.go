package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/sections"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	nameScanLines = 6
	maxNameWords  = 5
)

var (
	emailRx = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRx = regexp.MustCompile(`(?:\+?\d{1,3}[\s\-.]?)?(?:\(\d{3}\)|\d{3})[\s\-.]?\d{3}[\s\-.]?\d{4}`)
	linkRx  = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s,;|]+`)
)

// ExtractContact finds the email, phone and links anywhere in lines and
// guesses the name from the first few lines.
func ExtractContact(lines []string) types.Contact {
	text := strings.Join(lines, "\n")
	c := types.Contact{
		Email: emailRx.FindString(text),
		Phone: strings.TrimSpace(phoneRx.FindString(text)),
		Links: extractLinks(text),
		Name:  guessName(lines),
	}
	return c
}

func extractLinks(text string) []string {
	links := []string{}
	seen := make(map[string]bool)
	for _, raw := range linkRx.FindAllString(text, -1) {
		link := strings.TrimRight(raw, ".)")
		if strings.HasPrefix(strings.ToLower(link), "www.") {
			link = "https://" + link
		}
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	}
	return links
}

// guessName returns the first short line near the top that is neither a
// section header, contact details nor a role/date line.
func guessName(lines []string) string {
	checked := 0
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if checked++; checked > nameScanLines {
			break
		}
		if _, known := sections.ExactName(sections.Key(t)); known {
			break
		}
		if strings.Contains(t, "@") || emailRx.MatchString(t) || linkRx.MatchString(t) || phoneRx.MatchString(t) {
			continue
		}
		if IsRoleHeader(t) || IsBullet(t) {
			continue
		}
		if len(strings.Fields(t)) > maxNameWords {
			continue
		}
		return trimSeparators(t)
	}
	return ""
}
