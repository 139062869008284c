// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/catalog"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configured asset and equipment catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.AssetCatalog == "" && a.cfg.EquipmentCatalog == "" {
				return errors.New("nothing to validate: set --assets and/or --equipment")
			}
			out := cmd.OutOrStdout()

			if a.cfg.AssetCatalog != "" {
				rules, err := catalog.LoadAssetCatalogFile(a.cfg.AssetCatalog)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %d asset rules\n", a.cfg.AssetCatalog, len(rules))
			}

			if a.cfg.EquipmentCatalog != "" {
				entries, err := catalog.LoadEquipmentCatalogFile(a.cfg.EquipmentCatalog)
				if err != nil {
					return err
				}
				n := 0
				for _, e := range entries {
					n += len(e.Patterns)
				}
				fmt.Fprintf(out, "%s: %d entries, %d equipment rules\n", a.cfg.EquipmentCatalog, len(entries), n)
			}
			return nil
		},
	}
}
