// SPDX-License-Identifier: Apache-2.0

// Package engine runs the two classification passes over a piece of text:
// asset type first, then equipment within the winning type.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/catalog"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/classify"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/fuzzy"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/logging"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/pseudonym"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/textnorm"
)

// Messages reported when a pass produces no result.
const (
	MsgNoAsset     = "no matching asset type"
	MsgNoEquipment = "no matching equipment found"
)

// DefaultBatchLimit bounds the number of texts classified at once.
const DefaultBatchLimit = 4

// Result is the outcome of classifying one text.
type Result struct {
	Tokens    []string                 `json:"tokens" yaml:"tokens"`
	Asset     *classify.AssetMatch     `json:"asset,omitempty" yaml:"asset,omitempty"`
	Equipment *classify.EquipmentMatch `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Message   string                   `json:"message,omitempty" yaml:"message,omitempty"`
	Trace     []classify.RuleTrace     `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// Engine classifies text against read-only asset and equipment catalogs. It
// holds no per-request state and may be shared between goroutines.
type Engine struct {
	assets     []catalog.ClassificationRule
	equipment  []catalog.EquipmentCatalogEntry
	threshold  float64
	policy     classify.NormalizationPolicy
	batchLimit int
	log        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold sets the default match threshold (0-100).
func WithThreshold(t float64) Option {
	return func(e *Engine) { e.threshold = t }
}

// WithPolicy sets how the winning asset score is normalized.
func WithPolicy(p classify.NormalizationPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithBatchLimit bounds ClassifyBatch concurrency.
func WithBatchLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.batchLimit = n
		}
	}
}

// WithLogger sets the logger used for per-rule diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New creates an Engine over the given catalogs.
func New(assets []catalog.ClassificationRule, equipment []catalog.EquipmentCatalogEntry, opts ...Option) *Engine {
	e := &Engine{
		assets:     assets,
		equipment:  equipment,
		threshold:  fuzzy.DefaultThreshold,
		policy:     classify.NormalizeByRule,
		batchLimit: DefaultBatchLimit,
		log:        logging.New("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Threshold returns the engine's default match threshold.
func (e *Engine) Threshold() float64 { return e.threshold }

// RunOption adjusts a single Classify call.
type RunOption func(*runConfig)

type runConfig struct {
	threshold float64
}

// RunWithThreshold overrides the match threshold for one call.
func RunWithThreshold(t float64) RunOption {
	return func(c *runConfig) { c.threshold = t }
}

// Classify tokenizes text and runs both passes. Equipment matching is only
// attempted once an asset type has been found. Detail field names of a
// matched equipment rule are recorded in reg; a nil reg records nothing.
func (e *Engine) Classify(text string, reg *pseudonym.Registry, opts ...RunOption) Result {
	cfg := runConfig{threshold: e.threshold}
	for _, opt := range opts {
		opt(&cfg)
	}

	tokens := textnorm.Tokenize(text)
	res := Result{Tokens: tokens}

	asset, assetTrace := classify.ClassifyAsset(tokens, e.assets, cfg.threshold, e.policy)
	res.Trace = append(res.Trace, assetTrace...)
	if asset == nil {
		res.Message = MsgNoAsset
		e.logTrace(res.Trace)
		e.log.Info("no asset type matched", "tokens", len(tokens))
		return res
	}
	res.Asset = asset

	equipment, equipmentTrace := classify.MatchEquipment(tokens, asset, e.equipment, cfg.threshold, reg)
	res.Trace = append(res.Trace, equipmentTrace...)
	e.logTrace(res.Trace)
	if equipment == nil {
		res.Message = MsgNoEquipment
		e.log.Info("asset type matched without equipment",
			"asset_type", asset.AssetType, "system_type", asset.SystemType, "score", asset.Score)
		return res
	}
	res.Equipment = equipment

	e.log.Info("classified",
		"asset_type", asset.AssetType, "system_type", asset.SystemType, "score", asset.Score,
		"equipment_id", equipment.EquipmentID, "equipment_score", equipment.Score)
	return res
}

// ClassifyBatch classifies texts concurrently and returns results in input
// order. All texts share reg.
func (e *Engine) ClassifyBatch(ctx context.Context, texts []string, reg *pseudonym.Registry, opts ...RunOption) ([]Result, error) {
	results := make([]Result, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.batchLimit)

	for i, text := range texts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("classify text %d: %w", i, err)
			}
			results[i] = e.Classify(text, reg, opts...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classify batch: %w", err)
	}
	return results, nil
}

func (e *Engine) logTrace(traces []classify.RuleTrace) {
	for _, tr := range traces {
		e.log.Debug("rule evaluated",
			"kind", tr.Kind,
			"system_type", tr.SystemType,
			"asset_type", tr.AssetType,
			"equipment_id", tr.EquipmentID,
			"matches", len(tr.Matches),
			"match_count", tr.MatchCount,
			"require_match_count", tr.RequireMatchCount,
			"raw_score", tr.RawScore,
			"max_possible_score", tr.MaxPossibleScore,
			"candidate", tr.Candidate,
		)
	}
}
