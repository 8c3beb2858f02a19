// Package hygiene scores the writing quality of résumé bullets: length,
// quantification, voice and phrasing.
package hygiene

import (
	"regexp"
	"strings"
)

// Strong action verbs. A bullet that uses none of them reads as a duty list.
var strongVerbs = map[string]bool{
	"achieved": true, "architected": true, "architect": true, "automated": true, "automate": true,
	"built": true, "build": true, "created": true, "cut": true, "debugged": true, "debug": true,
	"delivered": true, "deliver": true, "deployed": true, "deploy": true, "designed": true,
	"design": true, "developed": true, "engineered": true, "established": true, "implemented": true,
	"implement": true, "improved": true, "improve": true, "increased": true, "increase": true,
	"launched": true, "led": true, "lead": true, "mentored": true, "migrated": true, "migrate": true,
	"monitored": true, "monitor": true, "optimized": true, "optimize": true, "owned": true,
	"own": true, "reduced": true, "reduce": true, "refactored": true, "scaled": true, "scale": true,
	"shipped": true, "spearheaded": true, "streamlined": true, "transformed": true, "wrote": true,
}

var (
	wordRx        = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.#-]+`)
	digitRx       = regexp.MustCompile(`\d`)
	passiveRx     = regexp.MustCompile(`(?i)\b(?:was|were|is|are|been|being)\s+\w+ed\b`)
	byAgentRx     = regexp.MustCompile(`(?i)\bby\b`)
	firstPersonRx = regexp.MustCompile(`(?:^|[^\w/])I(?:[^\w/]|$)|\b(?:[Mm]e|[Mm]y|[Ww]e|[Oo]ur|us)\b`)
)

// phraseRule is one entry of the weak-phrase bank.
type phraseRule struct {
	name string
	rx   *regexp.Regexp
}

// weakPhraseRules are checked in order; the first match names the problem.
var weakPhraseRules = []phraseRule{
	{"responsible-for", regexp.MustCompile(`(?i)\b(?:was\s+)?responsible\s+for\b`)},
	{"worked-on", regexp.MustCompile(`(?i)\bworked\s+on\b`)},
	{"helped", regexp.MustCompile(`(?i)^\s*(?:helped|assisted)\b|\b(?:helped|assisted)\s+(?:with|in|to)\b`)},
	{"involved-in", regexp.MustCompile(`(?i)\b(?:was\s+)?involved\s+in\b`)},
	{"participated-in", regexp.MustCompile(`(?i)\bparticipated\s+in\b`)},
	{"tasked-with", regexp.MustCompile(`(?i)\btasked\s+with\b`)},
	{"duties-included", regexp.MustCompile(`(?i)\bduties\s+(?:included|include)\b`)},
	{"attempted", regexp.MustCompile(`(?i)\b(?:tried|attempted)\s+to\b`)},
	{"vague-scope", regexp.MustCompile(`(?i)\b(?:various|several|numerous)\s+(?:tasks|things|projects|duties|activities)\b`)},
	{"hedging", regexp.MustCompile(`(?i)\b(?:familiar\s+with|exposure\s+to|some\s+experience)\b`)},
}

// WeakPhrase returns the name of the first weak-phrase rule bullet matches.
func WeakPhrase(bullet string) (string, bool) {
	for _, rule := range weakPhraseRules {
		if rule.rx.MatchString(bullet) {
			return rule.name, true
		}
	}
	return "", false
}

// IsPassive reports passive constructions: an auxiliary followed by an -ed
// participle, or an agent introduced with "by".
func IsPassive(bullet string) bool {
	return passiveRx.MatchString(bullet) || byAgentRx.MatchString(bullet)
}

// HasFirstPerson reports first-person pronouns. Upper-case "US" is read as
// the country and "I/O" is not a pronoun.
func HasFirstPerson(bullet string) bool {
	return firstPersonRx.MatchString(bullet)
}

// HasActionVerb reports whether any word of bullet is a strong action verb.
func HasActionVerb(bullet string) bool {
	for _, w := range wordRx.FindAllString(bullet, -1) {
		if strongVerbs[strings.TrimRight(strings.ToLower(w), ".")] {
			return true
		}
	}
	return false
}

// IsQuantified reports whether bullet contains a digit.
func IsQuantified(bullet string) bool {
	return digitRx.MatchString(bullet)
}

// WordCount counts whitespace-separated words.
func WordCount(bullet string) int {
	return len(strings.Fields(bullet))
}
