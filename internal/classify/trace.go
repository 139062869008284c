// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/pattern"
)

// Rule kinds reported in a RuleTrace.
const (
	KindAsset     = "asset"
	KindEquipment = "equipment"
)

// RuleTrace is the diagnostic record of one evaluated rule. Traces are meant
// for logging and audit and never feed back into selection.
type RuleTrace struct {
	Kind              string              `json:"kind" yaml:"kind"`
	SystemType        string              `json:"system_type" yaml:"system_type"`
	AssetType         string              `json:"asset_type" yaml:"asset_type"`
	EquipmentID       string              `json:"equipment_id,omitempty" yaml:"equipment_id,omitempty"`
	Matches           []pattern.TermMatch `json:"matches,omitempty" yaml:"matches,omitempty"`
	MatchCount        int                 `json:"match_count" yaml:"match_count"`
	RequireMatchCount int                 `json:"require_match_count" yaml:"require_match_count"`
	RawScore          float64             `json:"raw_score" yaml:"raw_score"`
	MaxPossibleScore  float64             `json:"max_possible_score" yaml:"max_possible_score"`
	Candidate         bool                `json:"candidate" yaml:"candidate"`
}

func newTrace(kind, systemType, assetType, equipmentID string, require int, res pattern.Result) RuleTrace {
	return RuleTrace{
		Kind:              kind,
		SystemType:        systemType,
		AssetType:         assetType,
		EquipmentID:       equipmentID,
		Matches:           res.Matches,
		MatchCount:        res.MatchCount,
		RequireMatchCount: require,
		RawScore:          res.RawScore,
		MaxPossibleScore:  res.MaxPossibleScore,
		Candidate:         res.MatchCount >= require,
	}
}
