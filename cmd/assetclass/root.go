// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/catalog"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/config"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/engine"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/logging"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "assetclass",
		Short: "Classify equipment nameplate text into asset types and catalog equipment",
		Long: "assetclass matches OCR text against an asset catalog using weighted fuzzy\n" +
			"patterns, then identifies the specific equipment within the winning asset type.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.assetclass.yaml)")
	flags.Float64("threshold", 0, "minimum similarity ratio 0-100 for a token to match a pattern term")
	flags.String("assets", "", "asset catalog file (YAML or JSON)")
	flags.String("equipment", "", "equipment catalog file (YAML or JSON)")
	flags.String("normalization", "", "asset score normalization: rule or asset-type")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.Int("batch-limit", 0, "number of inputs classified concurrently")

	bindings := map[string]string{
		config.KeyThreshold:        "threshold",
		config.KeyAssetCatalog:     "assets",
		config.KeyEquipmentCatalog: "equipment",
		config.KeyNormalization:    "normalization",
		config.KeyLogLevel:         "log-level",
		config.KeyLogFormat:        "log-format",
		config.KeyBatchLimit:       "batch-limit",
	}
	for key, name := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(newClassifyCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}

// initConfig reads the config file and environment, then configures logging.
func (a *app) initConfig(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".assetclass")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Install(cmd.ErrOrStderr(), cfg.Logging)
	if used := a.v.ConfigFileUsed(); used != "" {
		logging.New("config").Debug("using config file", "path", used)
	}
	return nil
}

// loadEngine builds an engine from the configured catalogs. The equipment
// catalog is optional.
func (a *app) loadEngine() (*engine.Engine, error) {
	if a.cfg.AssetCatalog == "" {
		return nil, errors.New("an asset catalog is required (--assets or " + config.EnvPrefix + "_ASSET_CATALOG)")
	}
	assets, err := catalog.LoadAssetCatalogFile(a.cfg.AssetCatalog)
	if err != nil {
		return nil, err
	}

	var equipment []catalog.EquipmentCatalogEntry
	if a.cfg.EquipmentCatalog != "" {
		equipment, err = catalog.LoadEquipmentCatalogFile(a.cfg.EquipmentCatalog)
		if err != nil {
			return nil, err
		}
	}

	logging.New("cli").Debug("catalogs loaded", "asset_rules", len(assets), "equipment_entries", len(equipment))
	return engine.New(assets, equipment, a.cfg.EngineOptions()...), nil
}
