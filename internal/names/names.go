// Package names canonicalizes free-text organization names for comparison
// and scores string similarity by edit distance.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes to NFD, drops combining marks, and recomposes,
// turning "Atlético" into "Atletico".
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Common club-type abbreviations and organizational words, removed as
// whole words so "Manchester United FC" and "Manchester United" compare
// equal.
var suffixWords = map[string]bool{
	"fc":        true,
	"afc":       true,
	"cfc":       true,
	"cf":        true,
	"sc":        true,
	"ac":        true,
	"as":        true,
	"ss":        true,
	"ssc":       true,
	"fk":        true,
	"sk":        true,
	"bk":        true,
	"if":        true,
	"cd":        true,
	"sv":        true,
	"sl":        true,
	"cp":        true,
	"club":      true,
	"calcio":    true,
	"deportivo": true,
}

// Normalize canonicalizes a club name for comparison: lowercase, strip
// diacritics, drop everything that is not a letter, digit, or space,
// drop club-suffix words, and remove all remaining whitespace.
// Normalize is idempotent.
func Normalize(name string) string {
	s := normalizeOnce(name)
	// Removing whitespace can concatenate the kept words into a new
	// suffix word ("S C" becomes "sc"); re-run until a fixed point.
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(name string) string {
	s := strings.ToLower(name)
	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}

	var kept []string
	for _, word := range strings.Fields(b.String()) {
		if !suffixWords[word] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, "")
}

// Distance computes the classic single-character insertion, deletion,
// and substitution edit distance between two strings, in runes.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity maps edit distance to [0, 1]: 1 − distance/max(len).
// Two empty strings are defined as identical.
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}

	longest := la
	if lb > longest {
		longest = lb
	}
	return 1.0 - float64(Distance(a, b))/float64(longest)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
