// Package fuzzy implements normalized string similarity scores in the 0-100
// range: an Indel-distance ratio and a token-set ratio built on top of it.
package fuzzy

import (
	"sort"
	"strings"
)

// MaxRunes bounds the work of one comparison: Ratio looks at no more than
// the first MaxRunes runes of each input.
const MaxRunes = 1000

// Ratio returns 100 * (1 - indel(a, b) / (len(a) + len(b))), where indel is
// the insert/delete edit distance. Two empty strings score 100.
func Ratio(a, b string) float64 {
	return RatioCutoff(a, b, 0)
}

// RatioCutoff is Ratio, except that it returns 0 without computing the edit
// distance when the lengths alone rule out a score of at least cutoff.
func RatioCutoff(a, b string, cutoff float64) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	// The LCS is at most the shorter length.
	if bound := 200 * float64(min(len(ra), len(rb))) / float64(total); bound < cutoff {
		return 0
	}
	ra, rb = truncate(ra), truncate(rb)
	total = len(ra) + len(rb)
	lcs := lcsLength(ra, rb)
	dist := total - 2*lcs
	return 100 * (1 - float64(dist)/float64(total))
}

func truncate(r []rune) []rune {
	if len(r) > MaxRunes {
		return r[:MaxRunes]
	}
	return r
}

// lcsLength returns the length of the longest common subsequence using a
// two-row table.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// TokenSetRatio compares the sets of whitespace-separated tokens of a and b.
// When the two share at least one token and one side's tokens are all found
// in the other, the score is 100. Otherwise it is the best Ratio among the
// sorted intersection and the intersection joined with each side's
// remaining tokens.
func TokenSetRatio(a, b string) float64 {
	return TokenSetRatioCutoff(a, b, 0)
}

// TokenSetRatioCutoff is TokenSetRatio with RatioCutoff applied to each
// recombination. Scores below cutoff may be reported as 0.
func TokenSetRatioCutoff(a, b string, cutoff float64) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for tok := range ta {
		if tb[tok] {
			inter = append(inter, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if !ta[tok] {
			onlyB = append(onlyB, tok)
		}
	}

	if len(inter) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(inter, " ")
	diffA := strings.Join(onlyA, " ")
	diffB := strings.Join(onlyB, " ")

	if sect == "" {
		return RatioCutoff(diffA, diffB, cutoff)
	}

	combinedA := sect + " " + diffA
	combinedB := sect + " " + diffB
	return max(
		RatioCutoff(sect, combinedA, cutoff),
		RatioCutoff(sect, combinedB, cutoff),
		RatioCutoff(combinedA, combinedB, cutoff),
	)
}

func tokenSet(s string) map[string]bool {
	fields := strings.Fields(s)
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// Contains reports whether any haystack entry scores at least threshold
// against needle with TokenSetRatio. It returns the first such entry.
func Contains(needle string, haystack []string, threshold float64) (string, bool) {
	for _, h := range haystack {
		if TokenSetRatioCutoff(needle, h, threshold) >= threshold {
			return h, true
		}
	}
	return "", false
}

// Count returns how many haystack entries score at least threshold.
func Count(needle string, haystack []string, threshold float64) int {
	_, n := Match(needle, haystack, threshold)
	return n
}

// Match scores needle against every haystack entry once and returns the
// first entry reaching threshold together with the number that do.
func Match(needle string, haystack []string, threshold float64) (first string, count int) {
	for _, h := range haystack {
		if TokenSetRatioCutoff(needle, h, threshold) < threshold {
			continue
		}
		if count == 0 {
			first = h
		}
		count++
	}
	return first, count
}
