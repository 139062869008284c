// SPDX-License-Identifier: Apache-2.0

// Package textnorm folds raw OCR text into a canonical, comparable form and
// splits it into tokens.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize lowercases raw, strips every character that is neither a word
// character nor whitespace, collapses whitespace runs to a single space and
// trims the result. Unicode spaces (NBSP, em space, ideographic space, vertical
// tab) separate words just like ASCII ones.
func Normalize(raw string) string {
	// A Caser keeps state between calls and must not be shared.
	lower := cases.Lower(language.Und).String(raw)
	spaced := strings.Map(foldSpace, lower)
	stripped := nonWord.ReplaceAllString(spaced, "")
	collapsed := whitespace.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(collapsed)
}

// foldSpace maps every Unicode space to ASCII space, which is all RE2's \s
// understands.
func foldSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
}

// Tokenize normalizes raw and splits it on word boundaries. Input without any
// word characters yields an empty, non-nil slice.
func Tokenize(raw string) []string {
	canonical := Normalize(raw)
	if canonical == "" {
		return []string{}
	}
	return strings.Split(canonical, " ")
}
