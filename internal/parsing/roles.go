package parsing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
)

// maxRoleHeaderTokens bounds keyword-only role headers; longer lines are
// prose that happens to mention a title.
const maxRoleHeaderTokens = 15

var (
	roleKeywordRx = regexp.MustCompile(`(?i)\b(?:engineers?|developers?|analysts?|managers?|scientists?|interns?|internship|consultants?|architects?|leads?|fellows?|designers?|administrators?|specialists?|research assistants?|assistants?)\b`)
	locationRx    = regexp.MustCompile(`\b(?:Remote|Hybrid|On-site|Onsite|[A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)?,\s*[A-Z]{2})\b`)
	titleSplitRx  = regexp.MustCompile(`\s+(?:\||@|at)\s+`)
)

// LineKind classifies one experience-section line for the role parser.
type LineKind int

const (
	LineBlank LineKind = iota
	LineBullet
	LineHeader
	LineText
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineBullet:
		return "bullet"
	case LineHeader:
		return "header"
	default:
		return "text"
	}
}

// IsRoleHeader reports whether line opens a new role: it carries a date
// range, or it names a role keyword in a short non-bullet line. Keyword-only
// headers must start with a capital and not end like a sentence, so wrapped
// bullet text ("engineers on the platform team.") stays a continuation.
func IsRoleHeader(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" || IsBullet(t) {
		return false
	}
	if _, ok := FindDateRange(t); ok {
		return true
	}
	first, _ := utf8.DecodeRuneInString(t)
	if !unicode.IsUpper(first) || strings.HasSuffix(t, ".") {
		return false
	}
	return roleKeywordRx.MatchString(t) && len(strings.Fields(t)) <= maxRoleHeaderTokens
}

// ClassifyLine returns the LineKind of a single line.
func ClassifyLine(line string) LineKind {
	switch {
	case strings.TrimSpace(line) == "":
		return LineBlank
	case IsBullet(line):
		return LineBullet
	case IsRoleHeader(line):
		return LineHeader
	default:
		return LineText
	}
}

// ExtractLocation returns the first location token in s: Remote, Hybrid,
// On-site or "City, ST".
func ExtractLocation(s string) string {
	return locationRx.FindString(s)
}

// RoleState is a state of the role-block parser.
type RoleState int

const (
	// StateScanning has no open role.
	StateScanning RoleState = iota
	// StateRoleOpen has consumed a header and may still take a company line.
	StateRoleOpen
	// StateCollectingBullets is accumulating bullet text for the open role.
	StateCollectingBullets
)

func (s RoleState) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateRoleOpen:
		return "role_open"
	default:
		return "collecting_bullets"
	}
}

// NextRoleState is the pure transition function of the role parser. It does
// not account for the company-line lookahead, which keeps the machine in
// StateRoleOpen.
func NextRoleState(state RoleState, kind LineKind) RoleState {
	switch kind {
	case LineHeader:
		return StateRoleOpen
	case LineBullet:
		return StateCollectingBullets
	case LineText:
		if state == StateScanning {
			return StateScanning
		}
		return StateCollectingBullets
	default:
		return state
	}
}

type roleParser struct {
	state       RoleState
	roles       []types.ExperienceRole
	current     *types.ExperienceRole
	companyDone bool
	bullets     bulletCollector
}

// ParseRoles runs the role-block state machine over experience lines.
// Concatenated lines are split first. Roles without bullets are dropped.
func ParseRoles(lines []string) []types.ExperienceRole {
	p := &roleParser{}
	for _, line := range PreprocessLines(lines) {
		p.step(line)
	}
	p.flush()
	if p.roles == nil {
		return []types.ExperienceRole{}
	}
	return p.roles
}

func (p *roleParser) step(line string) {
	kind := ClassifyLine(line)
	switch kind {
	case LineHeader:
		p.onHeader(line)
	case LineBullet:
		if p.current == nil {
			p.open(types.ExperienceRole{})
		}
		p.bullets.add(line)
	case LineBlank:
		p.bullets.flush()
	case LineText:
		p.onText(line)
	}
	if kind == LineText && p.state == StateRoleOpen && p.current != nil && len(p.bullets.pending) == 0 {
		return
	}
	p.state = NextRoleState(p.state, kind)
}

func (p *roleParser) onHeader(line string) {
	dr, hasDates := FindDateRange(line)
	title := StripDateRange(line)

	if p.current != nil && p.state == StateRoleOpen && p.pristine() {
		// A date-only line completes the title line above it.
		if title == "" && hasDates && p.current.Start == "" && p.current.End == "" {
			p.current.Start, p.current.End = dr.Start, dr.End
			return
		}
		// "Acme Corp  2020 - 2022" followed by "Software Engineer": the
		// first line named the company.
		if !hasDates && p.current.Company == "" && p.current.Start != "" && !roleKeywordRx.MatchString(p.current.Role) {
			p.current.Company = p.current.Role
			p.current.Role = title
			p.companyDone = true
			return
		}
	}

	p.flush()
	role := types.ExperienceRole{Role: title}
	if hasDates {
		role.Start, role.End = dr.Start, dr.End
	}
	if parts := titleSplitRx.Split(title, 2); len(parts) == 2 {
		role.Role, role.Company = orderTitleCompany(parts[0], parts[1])
	} else {
		splitTitleComma(&role)
	}
	p.open(role)
}

func (p *roleParser) onText(line string) {
	if p.current == nil {
		return
	}
	text := strings.TrimSpace(line)
	if p.state == StateRoleOpen && p.pristine() {
		loc := ExtractLocation(text)
		if !p.companyDone {
			p.current.Location = loc
			company := text
			if loc != "" {
				company = strings.Replace(text, loc, "", 1)
			}
			p.current.Company = trimSeparators(company)
			p.companyDone = true
			return
		}
		if loc != "" && p.current.Location == "" && trimSeparators(strings.Replace(text, loc, "", 1)) == "" {
			p.current.Location = loc
			return
		}
	}
	p.bullets.add(line)
}

// pristine reports whether the open role has not collected any bullet text.
func (p *roleParser) pristine() bool {
	return len(p.current.Bullets) == 0 && len(p.bullets.out) == 0 && len(p.bullets.pending) == 0
}

func (p *roleParser) open(role types.ExperienceRole) {
	p.current = &role
	p.companyDone = role.Company != ""
	p.bullets = bulletCollector{}
}

func (p *roleParser) flush() {
	if p.current == nil {
		return
	}
	p.current.Bullets = p.bullets.finish()
	if len(p.current.Bullets) > 0 {
		p.roles = append(p.roles, *p.current)
	}
	p.current = nil
	p.companyDone = false
	p.bullets = bulletCollector{}
}

// splitTitleComma handles "Data Scientist, Initech[, City, ST]". The part
// before the first comma must name a role and the rest must not.
func splitTitleComma(role *types.ExperienceRole) {
	head, rest, ok := strings.Cut(role.Role, ",")
	if !ok || !roleKeywordRx.MatchString(head) || roleKeywordRx.MatchString(rest) {
		return
	}
	rest = trimSeparators(rest)
	if rest == "" {
		return
	}
	if loc := ExtractLocation(rest); loc != "" {
		role.Location = loc
		rest = trimSeparators(strings.Replace(rest, loc, "", 1))
	}
	role.Role = trimSeparators(head)
	role.Company = rest
}

// orderTitleCompany decides which half of "A | B" or "A at B" is the title.
func orderTitleCompany(a, b string) (title, company string) {
	a, b = trimSeparators(a), trimSeparators(b)
	if !roleKeywordRx.MatchString(a) && roleKeywordRx.MatchString(b) {
		return b, a
	}
	return a, b
}
