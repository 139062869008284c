// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/goccy/go-yaml"
)

// ErrInvalidCatalog is wrapped by every load error caused by the shape of the
// catalog document rather than by I/O.
var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed schema.cue
var schemaSource string

const (
	assetCatalogDef     = "#AssetCatalog"
	equipmentCatalogDef = "#EquipmentCatalog"
)

// LoadAssetCatalog validates and decodes an asset catalog document.
func LoadAssetCatalog(data []byte) ([]ClassificationRule, error) {
	var rules []ClassificationRule
	if err := load(data, assetCatalogDef, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadEquipmentCatalog validates and decodes an equipment catalog document.
func LoadEquipmentCatalog(data []byte) ([]EquipmentCatalogEntry, error) {
	var entries []EquipmentCatalogEntry
	if err := load(data, equipmentCatalogDef, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadAssetCatalogFile reads and loads the asset catalog at path.
func LoadAssetCatalogFile(path string) ([]ClassificationRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset catalog: %w", err)
	}
	rules, err := LoadAssetCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// LoadEquipmentCatalogFile reads and loads the equipment catalog at path.
func LoadEquipmentCatalogFile(path string) ([]EquipmentCatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read equipment catalog: %w", err)
	}
	entries, err := LoadEquipmentCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func load(data []byte, def string, out any) error {
	if err := validate(data, def); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return nil
}

// validate checks data, YAML or JSON, against the named schema definition.
func validate(data []byte, def string) error {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	cctx := cuecontext.New()
	schema := cctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	doc := cctx.CompileBytes(js, cue.Filename("catalog.json"))
	if err := doc.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, cueerrors.Details(err, nil))
	}

	unified := schema.LookupPath(cue.ParsePath(def)).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, cueerrors.Details(err, nil))
	}
	return nil
}
