// SPDX-License-Identifier: Apache-2.0

// Package fuzzy scores approximate string matches as an edit-distance ratio.
package fuzzy

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum ratio accepted as a match when callers do
// not configure one.
const DefaultThreshold = 60.0

// Distance returns the unit-cost edit distance between a and b, counting
// insertions, deletions and substitutions of runes.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity converts the edit distance between a and b into a percentage of
// the longer string's length. Two empty strings have a similarity of 0.
func Similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 0
	}
	d := Distance(a, b)
	return float64(maxLen-d) / float64(maxLen) * 100
}

// Ratio returns Similarity(a, b) when it reaches threshold and 0 otherwise.
// A zero result does not distinguish a weak match from no match at all.
func Ratio(a, b string, threshold float64) float64 {
	sim := Similarity(a, b)
	if sim >= threshold {
		return sim
	}
	return 0
}
