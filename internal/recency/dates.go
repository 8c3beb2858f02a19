// Package recency weights skill evidence by how recently, and for how long,
// the candidate used it.
package recency

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthPattern = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var monthNumbers = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

var presentWords = map[string]bool{
	"present": true, "current": true, "currently": true, "now": true, "today": true, "ongoing": true,
}

// dateRule recognizes one date format. parse receives the submatches of rx.
type dateRule struct {
	name  string
	rx    *regexp.Regexp
	parse func(m []string) (year int, month time.Month, ok bool)
}

var dateRules = []dateRule{
	{
		name: "month-year",
		rx:   regexp.MustCompile(`^` + monthPattern + `\.?,?\s+((?:19|20)\d{2})$`),
		parse: func(m []string) (int, time.Month, bool) {
			return atoi(m[2]), monthNumbers[m[1][:3]], true
		},
	},
	{
		name: "month-short-year",
		rx:   regexp.MustCompile(`^` + monthPattern + `\.?,?\s+'(\d{2})$`),
		parse: func(m []string) (int, time.Month, bool) {
			return expandYear(atoi(m[2])), monthNumbers[m[1][:3]], true
		},
	},
	{
		name: "numeric-month-year",
		rx:   regexp.MustCompile(`^(\d{1,2})/((?:19|20)\d{2})$`),
		parse: func(m []string) (int, time.Month, bool) {
			return numericMonth(atoi(m[2]), m[1])
		},
	},
	{
		name: "numeric-month-short-year",
		rx:   regexp.MustCompile(`^(\d{1,2})/(\d{2})$`),
		parse: func(m []string) (int, time.Month, bool) {
			return numericMonth(expandYear(atoi(m[2])), m[1])
		},
	},
	{
		name: "short-year",
		rx:   regexp.MustCompile(`^'(\d{2})$`),
		parse: func(m []string) (int, time.Month, bool) {
			return expandYear(atoi(m[1])), time.June, true
		},
	},
	{
		name: "year",
		rx:   regexp.MustCompile(`^((?:19|20)\d{2})$`),
		parse: func(m []string) (int, time.Month, bool) {
			return atoi(m[1]), time.June, true
		},
	},
}

// ParseDate parses the date formats found on résumés into the first day of
// the month. A bare year means mid-year (June 1). It reports false for
// anything it does not recognize, including "Present".
func ParseDate(s string) (time.Time, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("’", "'", "‘", "'").Replace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, rule := range dateRules {
		m := rule.rx.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		year, month, ok := rule.parse(m)
		if !ok {
			return time.Time{}, false
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// IsPresent reports whether s marks an ongoing role.
func IsPresent(s string) bool {
	return presentWords[strings.ToLower(strings.TrimSpace(s))]
}

// MonthsBetween returns whole months from a to b, or 0 when b is not after a.
func MonthsBetween(a, b time.Time) float64 {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < 0 {
		return 0
	}
	return float64(months)
}

// expandYear maps a two-digit year the way time.Parse does for "06".
func expandYear(yy int) int {
	if yy < 69 {
		return 2000 + yy
	}
	return 1900 + yy
}

func numericMonth(year int, mm string) (int, time.Month, bool) {
	n := atoi(mm)
	if n < 1 || n > 12 {
		return 0, 0, false
	}
	return year, time.Month(n), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
