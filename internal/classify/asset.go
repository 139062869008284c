// SPDX-License-Identifier: Apache-2.0

// Package classify selects the best matching asset type and equipment rule for
// a token sequence.
package classify

import (
	"math"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/catalog"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/pattern"
)

// AssetMatch is the winning asset classification. Score is RawScore as a
// percentage of the maximum selected by the normalization policy.
type AssetMatch struct {
	AssetType        string  `json:"asset_type" yaml:"asset_type"`
	SystemType       string  `json:"system_type" yaml:"system_type"`
	Score            float64 `json:"score" yaml:"score"`
	RawScore         float64 `json:"raw_score" yaml:"raw_score"`
	MaxPossibleScore float64 `json:"max_possible_score" yaml:"max_possible_score"`
	MatchCount       int     `json:"match_count" yaml:"match_count"`
}

// ClassifyAsset scores every rule against tokens and returns the candidate
// with the strictly highest raw score; the first rule seen wins ties. A rule
// is a candidate once its match count reaches its RequireMatchCount. The
// returned match is nil when no rule qualifies. One trace entry is returned
// per rule, in catalog order.
func ClassifyAsset(tokens []string, rules []catalog.ClassificationRule, threshold float64, policy NormalizationPolicy) (*AssetMatch, []RuleTrace) {
	traces := make([]RuleTrace, 0, len(rules))
	var best *AssetMatch

	for _, rule := range rules {
		res := pattern.Score(tokens, rule.Patterns, threshold)
		tr := newTrace(KindAsset, rule.SystemType, rule.AssetType, "", rule.RequireMatchCount, res)
		traces = append(traces, tr)

		if !tr.Candidate {
			continue
		}
		if best == nil || res.RawScore > best.RawScore {
			best = &AssetMatch{
				AssetType:        rule.AssetType,
				SystemType:       rule.SystemType,
				RawScore:         res.RawScore,
				MaxPossibleScore: res.MaxPossibleScore,
				MatchCount:       res.MatchCount,
			}
		}
	}

	if best == nil {
		return nil, traces
	}
	best.Score = normalize(best, traces, policy)
	return best, traces
}

func normalize(best *AssetMatch, traces []RuleTrace, policy NormalizationPolicy) float64 {
	res := pattern.Result{RawScore: best.RawScore, MaxPossibleScore: best.MaxPossibleScore}
	if policy == NormalizeByAssetType {
		for _, tr := range traces {
			if tr.AssetType == best.AssetType {
				res.MaxPossibleScore = tr.MaxPossibleScore
				break
			}
		}
	}
	// The asset-type lookup can borrow a smaller maximum from another rule.
	return math.Min(res.Normalized(), 100)
}
