// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/catalog"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/pattern"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/pseudonym"
)

// EquipmentMatch is the winning equipment rule. Score is the raw accumulated
// score, not a percentage, and Details is the pseudonymized flat detail view.
type EquipmentMatch struct {
	EquipmentID string        `json:"equipment_id" yaml:"equipment_id"`
	Details     catalog.Value `json:"details" yaml:"details"`
	Score       float64       `json:"score" yaml:"score"`
}

// MatchEquipment scores the equipment rules of the entries belonging exactly
// to asset's system and asset type, and returns the best candidate using the
// same selection as ClassifyAsset. The winner's detail field names are
// digested into reg. The returned match is nil when asset is nil or no rule
// qualifies.
func MatchEquipment(tokens []string, asset *AssetMatch, entries []catalog.EquipmentCatalogEntry, threshold float64, reg *pseudonym.Registry) (*EquipmentMatch, []RuleTrace) {
	if asset == nil {
		return nil, nil
	}

	var (
		traces    []RuleTrace
		best      *catalog.EquipmentRule
		bestScore float64
	)
	for _, entry := range entries {
		if !entry.Matches(asset.SystemType, asset.AssetType) {
			continue
		}
		for i := range entry.Patterns {
			rule := &entry.Patterns[i]
			res := pattern.Score(tokens, rule.Pattern, threshold)
			tr := newTrace(KindEquipment, entry.SystemType, entry.AssetType, rule.EquipmentID, rule.RequireMatchCount, res)
			traces = append(traces, tr)

			if !tr.Candidate {
				continue
			}
			if best == nil || res.RawScore > bestScore {
				best = rule
				bestScore = res.RawScore
			}
		}
	}

	if best == nil {
		return nil, traces
	}
	return &EquipmentMatch{
		EquipmentID: best.EquipmentID,
		Details:     pseudonym.Pseudonymize(best.EquipmentDetails.Flatten(), reg),
		Score:       bestScore,
	}, traces
}
