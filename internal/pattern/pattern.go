// SPDX-License-Identifier: Apache-2.0

// Package pattern scores token sequences against lists of weighted, fuzzily
// matched pattern terms.
package pattern

import (
	"math"
	"strings"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/fuzzy"
)

// Term is one weighted sub-phrase contributing evidence to a pattern. Weight
// is the most the term can contribute when it matches perfectly.
type Term struct {
	Text   string  `json:"text" yaml:"text"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// TermMatch records how a single term was satisfied during scoring.
type TermMatch struct {
	Pattern      string  `json:"pattern" yaml:"pattern"`
	Token        string  `json:"token" yaml:"token"`
	SubToken     string  `json:"sub_token" yaml:"sub_token"`
	Ratio        float64 `json:"ratio" yaml:"ratio"`
	Weight       float64 `json:"weight" yaml:"weight"`
	Contribution float64 `json:"contribution" yaml:"contribution"`
}

// Result is the outcome of scoring one term list. It is recomputed on every
// call and never cached.
type Result struct {
	MatchCount       int         `json:"match_count" yaml:"match_count"`
	RawScore         float64     `json:"raw_score" yaml:"raw_score"`
	MaxPossibleScore float64     `json:"max_possible_score" yaml:"max_possible_score"`
	Matches          []TermMatch `json:"matches,omitempty" yaml:"matches,omitempty"`
}

// Normalized returns RawScore as a percentage of MaxPossibleScore, or 0 when
// no score is achievable.
func (r Result) Normalized() float64 {
	if r.MaxPossibleScore <= 0 {
		return 0
	}
	return r.RawScore / r.MaxPossibleScore * 100
}

// Score evaluates terms against tokens.
//
// Each term is split into lowercase sub-tokens on whitespace. Tokens are
// scanned in order and, for each token, sub-tokens are tried in declaration
// order; the first sub-token whose ratio clears threshold is the one that
// counts, even if a later sub-token would have scored higher. The first token
// that matches ends the scan for that term, so a term contributes at most once.
func Score(tokens []string, terms []Term, threshold float64) Result {
	var res Result
	for _, term := range terms {
		weight := effectiveWeight(term.Weight)
		res.MaxPossibleScore += weight

		m, ok := matchTerm(tokens, term, threshold)
		if !ok {
			continue
		}
		m.Weight = weight
		m.Contribution = m.Ratio / 100 * weight
		res.MatchCount++
		res.RawScore += m.Contribution
		res.Matches = append(res.Matches, m)
	}
	return res
}

func matchTerm(tokens []string, term Term, threshold float64) (TermMatch, bool) {
	subTokens := strings.Fields(strings.ToLower(term.Text))
	if len(subTokens) == 0 {
		return TermMatch{}, false
	}
	for _, tok := range tokens {
		for _, sub := range subTokens {
			if ratio := fuzzy.Ratio(tok, sub, threshold); ratio > 0 {
				return TermMatch{
					Pattern:  term.Text,
					Token:    tok,
					SubToken: sub,
					Ratio:    ratio,
				}, true
			}
		}
	}
	return TermMatch{}, false
}

// effectiveWeight maps weights that cannot contribute meaningfully to zero.
func effectiveWeight(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return 0
	}
	return w
}
