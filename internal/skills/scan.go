package skills

import (
	"regexp"
	"sort"
	"strings"
)

// caseSensitiveAliases are ordinary English words as well as skill names.
// In prose they only count when written like the skill: "Go", "REST".
var caseSensitiveAliases = map[string]bool{
	"go": true, "rest": true, "rust": true, "spring": true, "ml": true, "flask": true,
	"react": true,
}

// verbUsageRx matches what follows a case-sensitive alias used as a verb:
// "React quickly", "Go to market".
var verbUsageRx = regexp.MustCompile(`^\s+(?:to|\p{Ll}+ly)\b`)

// unscannedAliases are too ambiguous to detect in prose at all. They still
// resolve when a skills list names them directly.
var unscannedAliases = map[string]bool{
	"next": true, "node": true, "tf": true, "ts": true, "py": true, "torch": true,
	"kube": true, "ror": true, "mongo": true, "rails": true, "spark": true, "tf2": true,
}

type scanPattern struct {
	canonical     string
	rx            *regexp.Regexp
	caseSensitive bool
}

type termHit struct {
	pos       int
	canonical string
}

func buildScanPatterns(entries []aliasEntry) []scanPattern {
	type spelled struct{ alias, canonical string }
	var all []spelled
	seen := make(map[string]bool)
	for _, e := range entries {
		for _, a := range append([]string{e.Canonical}, e.Aliases...) {
			key := strings.ToLower(a)
			if seen[key] || unscannedAliases[key] {
				continue
			}
			seen[key] = true
			all = append(all, spelled{alias: a, canonical: e.Canonical})
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return len(all[i].alias) > len(all[j].alias) })

	patterns := make([]scanPattern, 0, len(all))
	for _, s := range all {
		key := strings.ToLower(s.alias)
		body := regexp.QuoteMeta(s.alias)
		flags := "(?i)"
		sensitive := caseSensitiveAliases[key]
		if sensitive {
			body = regexp.QuoteMeta(s.canonical) + "|" + regexp.QuoteMeta(strings.ToUpper(key))
			flags = ""
		}
		rx := regexp.MustCompile(flags + `(?:^|[^\p{L}\p{N}+#])(` + body + `)(?:$|[^\p{L}\p{N}+#])`)
		patterns = append(patterns, scanPattern{canonical: s.canonical, rx: rx, caseSensitive: sensitive})
	}
	return patterns
}

// FindKnownTerms returns the canonical names of every registered skill
// mentioned in free text, in order of first mention. Longer spellings are
// matched first and consume their span, so "React Native" does not also
// yield "React".
func (c *Canonicalizer) FindKnownTerms(text string) []string {
	work := []byte(text)
	var hits []termHit
	for _, p := range c.table.scan {
		for {
			m := p.rx.FindSubmatchIndex(work)
			if m == nil {
				break
			}
			if !p.caseSensitive || !verbUsageRx.Match(work[m[3]:]) {
				hits = append(hits, termHit{pos: m[2], canonical: p.canonical})
			}
			for i := m[2]; i < m[3]; i++ {
				work[i] = ' '
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := []string{}
	seen := make(map[string]bool)
	for _, h := range hits {
		if !seen[h.canonical] {
			seen[h.canonical] = true
			out = append(out, h.canonical)
		}
	}
	return out
}
