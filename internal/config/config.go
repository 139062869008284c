// SPDX-License-Identifier: Apache-2.0

// Package config reads classifier settings from flags, environment and an
// optional config file through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/classify"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/engine"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/fuzzy"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/logging"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/tool"
)

// Keys understood by Load.
const (
	KeyThreshold        = "threshold"
	KeyAssetCatalog     = "asset_catalog"
	KeyEquipmentCatalog = "equipment_catalog"
	KeyNormalization    = "normalization"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyBatchLimit       = "batch.limit"
	KeyMaxSessions      = "mcp.max_sessions"
)

// EnvPrefix is prepended to upper-cased keys when reading the environment,
// e.g. ASSETCLASS_THRESHOLD or ASSETCLASS_LOG_LEVEL.
const EnvPrefix = "ASSETCLASS"

// Config is the validated runtime configuration.
type Config struct {
	Threshold        float64
	AssetCatalog     string
	EquipmentCatalog string
	Normalization    classify.NormalizationPolicy
	Logging          logging.Settings
	BatchLimit       int
	MaxSessions      int
}

// New returns a viper instance with defaults registered and environment
// lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyThreshold, fuzzy.DefaultThreshold)
	v.SetDefault(KeyNormalization, classify.NormalizeByRule.String())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyBatchLimit, engine.DefaultBatchLimit)
	v.SetDefault(KeyMaxSessions, tool.DefaultMaxSessions)
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Threshold:        v.GetFloat64(KeyThreshold),
		AssetCatalog:     v.GetString(KeyAssetCatalog),
		EquipmentCatalog: v.GetString(KeyEquipmentCatalog),
		BatchLimit:       v.GetInt(KeyBatchLimit),
		MaxSessions:      v.GetInt(KeyMaxSessions),
	}

	if cfg.Threshold < 0 || cfg.Threshold > 100 {
		return Config{}, fmt.Errorf("%s must be between 0 and 100, got %v", KeyThreshold, cfg.Threshold)
	}

	policy, err := classify.ParsePolicy(v.GetString(KeyNormalization))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyNormalization, err)
	}
	cfg.Normalization = policy

	logSettings, err := logging.Parse(v.GetString(KeyLogLevel), v.GetString(KeyLogFormat))
	if err != nil {
		return Config{}, fmt.Errorf("log: %w", err)
	}
	cfg.Logging = logSettings

	if cfg.BatchLimit < 1 {
		return Config{}, fmt.Errorf("%s must be at least 1, got %d", KeyBatchLimit, cfg.BatchLimit)
	}
	if cfg.MaxSessions < 1 {
		return Config{}, fmt.Errorf("%s must be at least 1, got %d", KeyMaxSessions, cfg.MaxSessions)
	}
	return cfg, nil
}

// EngineOptions returns the engine options derived from cfg.
func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithThreshold(c.Threshold),
		engine.WithPolicy(c.Normalization),
		engine.WithBatchLimit(c.BatchLimit),
	}
}
