// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/classify"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/engine"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/ocrtext"
)

// MetadataClassifyText describes the classify_text tool.
var MetadataClassifyText = &mcp.Tool{
	Name: "classify_text",
	Description: "Classify OCR text from an equipment nameplate or label. Returns the best matching " +
		"asset/system type with a normalized score (0-100) and, within that type, the best matching " +
		"equipment record with its raw score. Equipment detail field names are replaced by short " +
		"digests; resolve them with lookup_digest using the returned session_id. " +
		"Pass either plain text, or a raw OCR response in content with an optional format hint (text, json).",
}

// InputClassifyText is the input for the ClassifyText tool.
type InputClassifyText struct {
	Text         string   `json:"text,omitempty" jsonschema:"already flattened OCR text"`
	Content      string   `json:"content,omitempty" jsonschema:"raw OCR output, used when text is empty"`
	Format       string   `json:"format,omitempty" jsonschema:"format hint for content: text or json; auto-detected when omitted"`
	SessionID    string   `json:"session_id,omitempty" jsonschema:"session to record digests in; a new session is started when omitted"`
	Threshold    *float64 `json:"threshold,omitempty" jsonschema:"minimum similarity ratio 0-100 (default 60)"`
	IncludeTrace bool     `json:"include_trace,omitempty" jsonschema:"include the per-rule diagnostic trace"`
}

// OutputClassifyText is the output for the ClassifyText tool.
type OutputClassifyText struct {
	SessionID string               `json:"session_id"`
	Threshold float64              `json:"threshold"`
	Tokens    []string             `json:"tokens"`
	Asset     *AssetOutput         `json:"asset,omitempty"`
	Equipment *EquipmentOutput     `json:"equipment,omitempty"`
	Message   string               `json:"message,omitempty"`
	Trace     []classify.RuleTrace `json:"trace,omitempty"`
}

// AssetOutput is the asset classification part of OutputClassifyText.
type AssetOutput struct {
	AssetType  string  `json:"asset_type"`
	SystemType string  `json:"system_type"`
	Score      float64 `json:"score"`
}

// EquipmentOutput is the equipment part of OutputClassifyText.
type EquipmentOutput struct {
	EquipmentID string         `json:"equipment_id"`
	Details     map[string]any `json:"details"`
	Score       float64        `json:"score"`
}

// ClassifyText flattens the input, classifies it and reports the result.
func (s *Server) ClassifyText(ctx context.Context, _ *mcp.CallToolRequest, input InputClassifyText) (*mcp.CallToolResult, OutputClassifyText, error) {
	text := input.Text
	if text == "" {
		if input.Content == "" {
			return nil, OutputClassifyText{}, errors.New("text or content is required")
		}
		flat, err := s.ocr.Flatten(ctx, ocrtext.Source{Content: []byte(input.Content), Format: input.Format, ID: "mcp"})
		if err != nil {
			return nil, OutputClassifyText{}, err
		}
		text = flat.Text
	}

	threshold := s.engine.Threshold()
	if input.Threshold != nil {
		if *input.Threshold < 0 || *input.Threshold > 100 {
			return nil, OutputClassifyText{}, fmt.Errorf("threshold must be between 0 and 100, got %v", *input.Threshold)
		}
		threshold = *input.Threshold
	}

	sessionID, reg, err := s.session(input.SessionID)
	if err != nil {
		return nil, OutputClassifyText{}, err
	}

	res := s.engine.Classify(text, reg, engine.RunWithThreshold(threshold))

	out := OutputClassifyText{
		SessionID: sessionID,
		Threshold: threshold,
		Tokens:    res.Tokens,
		Message:   res.Message,
	}
	if res.Asset != nil {
		out.Asset = &AssetOutput{
			AssetType:  res.Asset.AssetType,
			SystemType: res.Asset.SystemType,
			Score:      res.Asset.Score,
		}
	}
	if res.Equipment != nil {
		details, _ := res.Equipment.Details.Interface().(map[string]any)
		out.Equipment = &EquipmentOutput{
			EquipmentID: res.Equipment.EquipmentID,
			Details:     details,
			Score:       res.Equipment.Score,
		}
	}
	if input.IncludeTrace {
		out.Trace = res.Trace
	}
	return nil, out, nil
}
