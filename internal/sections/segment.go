package sections

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxColonHeaderLen = 80
	maxCapsHeaderLen  = 40
)

var (
	bulletLineRx  = regexp.MustCompile(`^\s*([•\-–—\*·▪►◦]|\d+\.)\s+`)
	inlineLabelRx = regexp.MustCompile(`^([^:]{2,40}):\s+(\S.*)$`)
)

// Section is one named block of body lines.
type Section struct {
	Name   string
	Header string
	Lines  []string
}

// Document is the ordered set of sections of one text. A name that appears
// under several headers collects all their lines.
type Document struct {
	sections []*Section
	index    map[string]*Section
}

// Names returns section names in first-appearance order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.sections))
	for _, s := range d.sections {
		names = append(names, s.Name)
	}
	return names
}

// Get returns the body lines of a section, or nil.
func (d *Document) Get(name string) []string {
	if s, ok := d.index[name]; ok {
		return s.Lines
	}
	return nil
}

// Has reports whether a section with any non-blank line exists.
func (d *Document) Has(name string) bool {
	for _, l := range d.Get(name) {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

// Sections returns copies of all sections in order.
func (d *Document) Sections() []Section {
	out := make([]Section, 0, len(d.sections))
	for _, s := range d.sections {
		out = append(out, Section{Name: s.Name, Header: s.Header, Lines: append([]string(nil), s.Lines...)})
	}
	return out
}

func (d *Document) open(name, header string) *Section {
	if s, ok := d.index[name]; ok {
		return s
	}
	s := &Section{Name: name, Header: header}
	d.sections = append(d.sections, s)
	d.index[name] = s
	return s
}

// Segmenter classifies lines as headers or body text.
type Segmenter struct {
	veto func(line string) bool
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithHeaderVeto rejects lines that the colon and ALL-CAPS rules would
// otherwise treat as headers, such as "SENIOR ENGINEER" role lines. Exact
// alias matches are never vetoed. During Split an ALL-CAPS line directly
// below a vetoed line ("ACME CORP" under a role header) stays body text.
func WithHeaderVeto(veto func(line string) bool) Option {
	return func(s *Segmenter) {
		s.veto = veto
	}
}

// New returns a Segmenter.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// headerRule is one independent header test. It returns the header key and
// any inline body text that followed a "Label:" prefix.
type headerRule struct {
	name     string
	vetoable bool
	// belowVeto rules are skipped on the line after one the veto accepts.
	belowVeto bool
	match     func(line string) (key, inline string, ok bool)
}

var headerRules = []headerRule{
	{name: "alias", match: matchAlias},
	{name: "inline-label", match: matchInlineLabel},
	{name: "markdown", vetoable: true, match: matchMarkdown},
	{name: "trailing-colon", vetoable: true, match: matchTrailingColon},
	{name: "all-caps", vetoable: true, belowVeto: true, match: matchAllCaps},
}

func matchAlias(line string) (string, string, bool) {
	key := Key(line)
	if _, ok := ExactName(key); ok {
		return key, "", true
	}
	return "", "", false
}

// matchInlineLabel handles "Skills: Go, Python" when the label is a known
// section name.
func matchInlineLabel(line string) (string, string, bool) {
	m := inlineLabelRx.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", false
	}
	key := Key(m[1])
	if _, ok := ExactName(key); !ok {
		return "", "", false
	}
	return key, strings.TrimSpace(m[2]), true
}

func matchMarkdown(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") && Key(trimmed) != "" {
		return Key(trimmed), "", true
	}
	return "", "", false
}

func matchTrailingColon(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasSuffix(trimmed, ":") && utf8.RuneCountInString(trimmed) < maxColonHeaderLen {
		if key := Key(trimmed); key != "" {
			return key, "", true
		}
	}
	return "", "", false
}

func matchAllCaps(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if utf8.RuneCountInString(trimmed) > maxCapsHeaderLen || strings.ContainsAny(trimmed, ",|@") {
		return "", "", false
	}
	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return "", "", false
			}
		}
		if unicode.IsDigit(r) {
			return "", "", false
		}
	}
	if !hasLetter {
		return "", "", false
	}
	return Key(trimmed), "", true
}

// ClassifyHeader reports whether line is a section header and, if so, the
// section name it opens and any inline body text.
func (s *Segmenter) ClassifyHeader(line string) (name, inline string, ok bool) {
	name, inline, _, ok = s.classify(line, false)
	return name, inline, ok
}

func (s *Segmenter) classify(line string, belowVetoed bool) (name, inline, rule string, ok bool) {
	if strings.TrimSpace(line) == "" || bulletLineRx.MatchString(line) {
		return "", "", "", false
	}
	for _, r := range headerRules {
		if r.belowVeto && belowVetoed {
			continue
		}
		key, in, matched := r.match(line)
		if !matched {
			continue
		}
		if r.vetoable && s.veto != nil && s.veto(line) {
			return "", "", "", false
		}
		return GuessName(key), in, r.name, true
	}
	return "", "", "", false
}

// Split assigns every line of text to exactly one section. Lines before the
// first header go to Unknown. Blank lines stay in their section so that
// downstream collectors can use them as separators. Inside a skills section
// "Languages: Go, Python" is a sub-label, not a new section.
func (s *Segmenter) Split(text string) *Document {
	doc := &Document{index: make(map[string]*Section)}
	if text == "" {
		return doc
	}

	current := (*Section)(nil)
	prev := ""
	for _, line := range strings.Split(text, "\n") {
		belowVetoed := s.veto != nil && prev != "" && s.veto(prev)
		prev = line
		name, inline, rule, ok := s.classify(line, belowVetoed)
		if ok && rule == "inline-label" && current != nil && current.Name == Skills {
			ok = false
		}
		if ok {
			current = doc.open(name, strings.TrimSpace(line))
			if inline != "" {
				current.Lines = append(current.Lines, inline)
			}
			continue
		}
		if current == nil {
			current = doc.open(Unknown, "")
		}
		current.Lines = append(current.Lines, line)
	}
	return doc
}
