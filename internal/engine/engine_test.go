// SPDX-License-Identifier: Apache-2.0

package engine_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/catalog"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/classify"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/engine"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/pseudonym"
)

func newEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	assets, err := catalog.LoadAssetCatalogFile(filepath.Join("..", "catalog", "testdata", "assets.yaml"))
	require.NoError(t, err)
	equipment, err := catalog.LoadEquipmentCatalogFile(filepath.Join("..", "catalog", "testdata", "equipment.yaml"))
	require.NoError(t, err)
	return engine.New(assets, equipment, opts...)
}

func TestClassify_AssetAndEquipment(t *testing.T) {
	e := newEngine(t)
	reg := pseudonym.NewRegistry()

	res := e.Classify("ACME SAFETY\nPhotoelectric Smoke Detector  Model SD100", reg)

	require.NotNil(t, res.Asset)
	assert.Equal(t, "Smoke Detector", res.Asset.AssetType)
	assert.Equal(t, "Fire Protection", res.Asset.SystemType)
	assert.InDelta(t, 66.6667, res.Asset.Score, 1e-3)

	require.NotNil(t, res.Equipment)
	assert.Equal(t, "SD-100", res.Equipment.EquipmentID)
	assert.InDelta(t, 15, res.Equipment.Score, 1e-9)
	assert.Empty(t, res.Message)

	want := []string{"acme", "safety", "photoelectric", "smoke", "detector", "model", "sd100"}
	if diff := cmp.Diff(want, res.Tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	// Three asset rules, then the two equipment rules of the winning type.
	require.Len(t, res.Trace, 5)
	assert.Equal(t, classify.KindAsset, res.Trace[2].Kind)
	assert.Equal(t, classify.KindEquipment, res.Trace[3].Kind)

	for _, f := range res.Equipment.Details.Fields {
		_, ok := reg.Lookup(f.Name)
		assert.True(t, ok, "digest %s not registered", f.Name)
	}
}

func TestClassify_NilRegistry(t *testing.T) {
	e := newEngine(t)

	res := e.Classify("Photoelectric Smoke Detector SD100", nil)
	require.NotNil(t, res.Equipment)
	assert.Equal(t, "SD-100", res.Equipment.EquipmentID)
	_, ok := res.Equipment.Details.Get("10002859")
	assert.True(t, ok)
}

func TestClassify_NoAsset(t *testing.T) {
	e := newEngine(t)
	reg := pseudonym.NewRegistry()

	res := e.Classify("", reg)
	assert.Nil(t, res.Asset)
	assert.Nil(t, res.Equipment)
	assert.Equal(t, engine.MsgNoAsset, res.Message)
	assert.Empty(t, res.Tokens)
	assert.Zero(t, reg.Len())
}

func TestClassify_AssetWithoutEquipment(t *testing.T) {
	e := newEngine(t)
	res := e.Classify("50 gallon water heater", pseudonym.NewRegistry())

	require.NotNil(t, res.Asset)
	assert.Equal(t, "Water Heater", res.Asset.AssetType)
	assert.Nil(t, res.Equipment)
	assert.Equal(t, engine.MsgNoEquipment, res.Message)
}

func TestClassify_ThresholdOverride(t *testing.T) {
	e := newEngine(t)

	// "smok" reaches 80 against "smoke".
	res := e.Classify("smok", pseudonym.NewRegistry())
	require.NotNil(t, res.Asset)

	res = e.Classify("smok", pseudonym.NewRegistry(), engine.RunWithThreshold(90))
	assert.Nil(t, res.Asset)

	strict := newEngine(t, engine.WithThreshold(90))
	assert.Equal(t, 90.0, strict.Threshold())
	assert.Nil(t, strict.Classify("smok", pseudonym.NewRegistry()).Asset)
}

func TestClassify_LogsRuleTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := newEngine(t, engine.WithLogger(logger))

	e.Classify("smoke detector", pseudonym.NewRegistry())

	out := buf.String()
	assert.Contains(t, out, "rule evaluated")
	assert.Contains(t, out, `asset_type="Smoke Detector"`)
	assert.Contains(t, out, "msg=classified")
}

func TestClassifyBatch(t *testing.T) {
	e := newEngine(t, engine.WithBatchLimit(2))
	reg := pseudonym.NewRegistry()
	texts := []string{
		"photoelectric smoke detector sd100",
		"",
		"AHU-2 air handling unit supply fan",
		"water heater",
	}

	results, err := e.ClassifyBatch(context.Background(), texts, reg)
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	got := make([]string, len(results))
	for i, r := range results {
		if r.Asset != nil {
			got[i] = r.Asset.AssetType
		}
	}
	want := []string{"Smoke Detector", "", "Air Handling Unit", "Water Heater"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batch asset types mismatch (-want +got):\n%s", diff)
	}
	assert.Positive(t, reg.Len())
}

func TestClassifyBatch_Cancelled(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	texts := make([]string, 8)
	for i := range texts {
		texts[i] = fmt.Sprintf("smoke detector %d", i)
	}
	_, err := e.ClassifyBatch(ctx, texts, pseudonym.NewRegistry())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
