// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"fmt"
	"strings"
)

// NormalizationPolicy selects which maximum score the winning asset rule's
// raw score is normalized against.
type NormalizationPolicy int

const (
	// NormalizeByRule uses the winning rule's own maximum score.
	NormalizeByRule NormalizationPolicy = iota
	// NormalizeByAssetType uses the maximum score of the first evaluated rule
	// sharing the winner's asset type. When several rules share an asset type
	// with different system types or term weights this can pick another rule's
	// maximum; it is kept for compatibility with catalogs tuned against it.
	NormalizeByAssetType
)

func (p NormalizationPolicy) String() string {
	switch p {
	case NormalizeByRule:
		return "rule"
	case NormalizeByAssetType:
		return "asset-type"
	default:
		return "unknown"
	}
}

// ParsePolicy parses the configuration name of a policy.
func ParsePolicy(s string) (NormalizationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rule":
		return NormalizeByRule, nil
	case "asset-type", "asset_type", "assettype":
		return NormalizeByAssetType, nil
	default:
		return 0, fmt.Errorf("unknown normalization policy %q (want rule or asset-type)", s)
	}
}
