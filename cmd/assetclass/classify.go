// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/catalog"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/engine"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/ocrtext"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/pseudonym"
)

type classifyOptions struct {
	format      string
	output      string
	trace       bool
	showDigests bool
}

// inputResult is the classification of one input file.
type inputResult struct {
	Source        string `json:"source" yaml:"source"`
	engine.Result `json:",inline" yaml:",inline"`
}

type classifyReport struct {
	Results []inputResult     `json:"results" yaml:"results"`
	Digests map[string]string `json:"digests,omitempty" yaml:"digests,omitempty"`
}

func newClassifyCmd(a *app) *cobra.Command {
	opts := &classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify [file...]",
		Short: "Classify OCR text read from files or stdin",
		Long: `Reads one OCR result per file (or stdin when no file or "-" is given),
flattens it to text and classifies it. All inputs share one digest registry,
so digested equipment detail keys can be resolved with --show-digests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClassify(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "", "input format hint: text or json (auto-detected when empty)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "include the per-rule diagnostic trace")
	cmd.Flags().BoolVar(&opts.showDigests, "show-digests", false, "include the digest to field name table")
	return cmd
}

func (a *app) runClassify(cmd *cobra.Command, args []string, opts *classifyOptions) error {
	switch opts.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", opts.output)
	}

	eng, err := a.loadEngine()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	pipeline := ocrtext.DefaultPipeline()
	texts := make([]string, len(args))
	for i, path := range args {
		content, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		flat, err := pipeline.Flatten(cmd.Context(), ocrtext.Source{Content: content, Format: opts.format, ID: path})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		texts[i] = flat.Text
	}

	reg := pseudonym.NewRegistry()
	results, err := eng.ClassifyBatch(cmd.Context(), texts, reg)
	if err != nil {
		return err
	}

	report := classifyReport{Results: make([]inputResult, len(results))}
	for i, res := range results {
		if !opts.trace {
			res.Trace = nil
		}
		report.Results[i] = inputResult{Source: args[i], Result: res}
	}
	if opts.showDigests {
		report.Digests = reg.Snapshot()
	}

	return writeReport(cmd.OutOrStdout(), report, opts.output)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func writeReport(w io.Writer, report classifyReport, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	for _, r := range report.Results {
		fmt.Fprintf(w, "%s:\n", r.Source)
		if r.Asset != nil {
			fmt.Fprintf(w, "  asset:     %s (%s) score=%.2f\n", r.Asset.AssetType, r.Asset.SystemType, r.Asset.Score)
		}
		if r.Equipment != nil {
			fmt.Fprintf(w, "  equipment: %s score=%g", r.Equipment.EquipmentID, r.Equipment.Score)
			if label := equipmentLabel(r.Equipment.Details); label != "" {
				fmt.Fprintf(w, " (%s)", label)
			}
			fmt.Fprintln(w)
		}
		if r.Message != "" {
			fmt.Fprintf(w, "  %s\n", r.Message)
		}
		for _, tr := range r.Trace {
			name := tr.AssetType
			if tr.EquipmentID != "" {
				name = tr.EquipmentID
			}
			fmt.Fprintf(w, "  trace %-9s %-24s matches=%d/%d raw=%g max=%g candidate=%t\n",
				tr.Kind, name, tr.MatchCount, tr.RequireMatchCount, tr.RawScore, tr.MaxPossibleScore, tr.Candidate)
		}
	}
	if len(report.Digests) > 0 {
		digests := make([]string, 0, len(report.Digests))
		for d := range report.Digests {
			digests = append(digests, d)
		}
		sort.Strings(digests)
		fmt.Fprintln(w, "digests:")
		for _, d := range digests {
			fmt.Fprintf(w, "  %s  %s\n", d, report.Digests[d])
		}
	}
	return nil
}

// equipmentLabel renders the manufacturer and model held in a pseudonymized
// detail record. Missing, null and non-scalar values are skipped.
func equipmentLabel(details catalog.Value) string {
	var parts []string
	for _, name := range []string{"manufacturer", "model"} {
		v, ok := details.Get(pseudonym.Digest(name))
		if !ok || v.IsNull() || v.Kind != catalog.KindScalar {
			continue
		}
		parts = append(parts, fmt.Sprint(v.Scalar))
	}
	return strings.Join(parts, " ")
}
