// SPDX-License-Identifier: Apache-2.0

// Package catalog defines the asset and equipment pattern catalogs consumed by
// the classifier and loads them from YAML or JSON documents.
package catalog

import (
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/pattern"
)

// ClassificationRule identifies an asset/system type by its weighted terms.
// A rule whose RequireMatchCount exceeds the number of terms that can match
// is accepted here and simply never wins.
type ClassificationRule struct {
	SystemType        string         `json:"systemType" yaml:"systemType"`
	AssetType         string         `json:"assetType" yaml:"assetType"`
	Patterns          []pattern.Term `json:"patterns" yaml:"patterns"`
	RequireMatchCount int            `json:"requireMatchCount" yaml:"requireMatchCount"`
}

// EquipmentCatalogEntry groups the equipment rules of one asset/system type.
type EquipmentCatalogEntry struct {
	SystemType string          `json:"systemType" yaml:"systemType"`
	AssetType  string          `json:"assetType" yaml:"assetType"`
	Patterns   []EquipmentRule `json:"patterns" yaml:"patterns"`
}

// EquipmentRule identifies a specific piece of equipment.
type EquipmentRule struct {
	EquipmentID       string           `json:"equipmentId" yaml:"equipmentId"`
	Pattern           []pattern.Term   `json:"pattern" yaml:"pattern"`
	RequireMatchCount int              `json:"requireMatchCount" yaml:"requireMatchCount"`
	EquipmentDetails  EquipmentDetails `json:"equipmentDetails" yaml:"equipmentDetails"`
}

// EquipmentDetails is the descriptive record attached to an equipment rule.
// Manufacturer and model live at the top level; the remaining attributes sit
// one level deeper under Details.
type EquipmentDetails struct {
	Manufacturer Value          `json:"manufacturer" yaml:"manufacturer"`
	Model        Value          `json:"model" yaml:"model"`
	Details      ProductDetails `json:"details" yaml:"details"`
}

// ProductDetails holds the nested product attributes of an equipment record.
type ProductDetails struct {
	ProductType    Value `json:"productType" yaml:"productType"`
	Features       Value `json:"features" yaml:"features"`
	TechnicalSpecs Value `json:"technicalSpecs" yaml:"technicalSpecs"`
	Application    Value `json:"application" yaml:"application"`
}

// Flatten returns the single-level detail view handed out for a matched
// equipment rule, in a fixed field order.
func (d EquipmentDetails) Flatten() Value {
	return Record(
		Field{Name: "manufacturer", Value: d.Manufacturer},
		Field{Name: "model", Value: d.Model},
		Field{Name: "productType", Value: d.Details.ProductType},
		Field{Name: "features", Value: d.Details.Features},
		Field{Name: "technicalSpecs", Value: d.Details.TechnicalSpecs},
		Field{Name: "application", Value: d.Details.Application},
	)
}

// Matches reports whether the entry belongs to the given asset/system type.
func (e EquipmentCatalogEntry) Matches(systemType, assetType string) bool {
	return e.SystemType == systemType && e.AssetType == assetType
}
