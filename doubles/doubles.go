// Package doubles counts adjacent repeated characters in text.
package doubles

import "golang.org/x/text/unicode/norm"

// Names under which the counter is exposed to embedding hosts.
const (
	ModuleName   = "precise_math"
	FunctionName = "count_doubles"
)

// Count returns the number of positions where a rune equals the rune that
// follows it. Runes are Unicode scalar values, not bytes; invalid UTF-8
// decodes to U+FFFD. Empty and single-rune strings yield 0.
//
//	Count("aabbcc") == 3
//	Count("aaa")    == 2
func Count(s string) uint64 {
	var (
		total uint64
		prev  rune
		first = true
	)
	for _, r := range s {
		if !first && r == prev {
			total++
		}
		prev, first = r, false
	}
	return total
}

// CountNormalized is Count over the NFC form of s, so "e\u0301e\u0301" and
// "\u00e9\u00e9" both count one double.
func CountNormalized(s string) uint64 {
	return Count(norm.NFC.String(s))
}
