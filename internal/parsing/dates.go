package parsing

import (
	"regexp"
	"strings"
)

const (
	monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`
	yearPattern  = `(?:19|20)\d{2}`
	// dateTokenPattern lists month-year forms before bare years so the longer
	// form wins.
	dateTokenPattern = `(?:` + monthPattern + `\s+(?:` + yearPattern + `|'\d{2})` +
		`|\d{1,2}/(?:` + yearPattern + `|\d{2})` +
		`|'\d{2}` +
		`|` + yearPattern + `)`
	presentPattern  = `(?:present|current|now)`
	rangeSepPattern = `(?:\s*[-–—]\s*|\s+to\s+)`

	monthYearRangePattern = monthPattern + `\s+` + yearPattern + rangeSepPattern +
		`(?:` + presentPattern + `|` + monthPattern + `\s+` + yearPattern + `)`
)

var (
	dateRangeRx = regexp.MustCompile(`(?i)(?:^|[^\w/'])(` + dateTokenPattern + `)` + rangeSepPattern +
		`(` + presentPattern + `|` + dateTokenPattern + `)`)
	presentRx = regexp.MustCompile(`(?i)^` + presentPattern + `$`)
)

// DateRange is a start/end pair found in a line. End is "Present" for open
// ranges. Begin and Finish are byte offsets of the matched text.
type DateRange struct {
	Start  string
	End    string
	Begin  int
	Finish int
}

// FindDateRange returns the first date range in s.
func FindDateRange(s string) (DateRange, bool) {
	m := dateRangeRx.FindStringSubmatchIndex(s)
	if m == nil {
		return DateRange{}, false
	}
	end := s[m[4]:m[5]]
	if presentRx.MatchString(end) {
		end = "Present"
	}
	return DateRange{
		Start:  s[m[2]:m[3]],
		End:    end,
		Begin:  m[2],
		Finish: m[5],
	}, true
}

// StripDateRange removes the first date range from s and trims separators
// left at either end.
func StripDateRange(s string) string {
	dr, ok := FindDateRange(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return trimSeparators(s[:dr.Begin] + " " + s[dr.Finish:])
}

func trimSeparators(s string) string {
	s = whitespaceRx.ReplaceAllString(s, " ")
	return strings.Trim(s, " ,|-–—•·()")
}
