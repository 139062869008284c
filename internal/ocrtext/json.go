// SPDX-License-Identifier: Apache-2.0

package ocrtext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ocrResponse covers the response shapes accepted by JSONExtractor: the
// OCR.space parse API, and generic {"text": ...} or {"lines": [...]} bodies.
type ocrResponse struct {
	ParsedResults []struct {
		ParsedText   string `yaml:"ParsedText"`
		ErrorMessage any    `yaml:"ErrorMessage"`
	} `yaml:"ParsedResults"`
	IsErroredOnProcessing bool `yaml:"IsErroredOnProcessing"`
	ErrorMessage          any  `yaml:"ErrorMessage"`

	Text  string `yaml:"text"`
	Lines []struct {
		Text string `yaml:"text"`
	} `yaml:"lines"`
}

// JSONExtractor reads JSON OCR responses.
type JSONExtractor struct{}

// NewJSONExtractor creates a new JSONExtractor.
func NewJSONExtractor() *JSONExtractor {
	return &JSONExtractor{}
}

func (p *JSONExtractor) Name() string {
	return "json"
}

// CanHandle accepts a json hint, or unhinted content that is a well-formed
// JSON object. Plain OCR text that merely starts with a brace is left to the
// next extractor.
func (p *JSONExtractor) CanHandle(source Source) bool {
	switch strings.ToLower(source.Format) {
	case "json", "ocr-json":
		return true
	case "":
		return isJSONObject(source.Content)
	}
	return false
}

// isJSONObject checks strict JSON grammar. YAML flow mappings such as
// "{Smoke Detector}" are not JSON and must not be claimed.
func isJSONObject(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	return bytes.HasPrefix(trimmed, []byte("{")) && json.Valid(trimmed)
}

func (p *JSONExtractor) Extract(_ context.Context, source Source) (string, error) {
	var resp ocrResponse
	if err := yaml.Unmarshal(source.Content, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal OCR response: %w", err)
	}
	if resp.IsErroredOnProcessing {
		return "", fmt.Errorf("%w: %s", ErrOCRFailed, errorText(resp.ErrorMessage))
	}

	var parts []string
	for _, r := range resp.ParsedResults {
		parts = append(parts, r.ParsedText)
	}
	if resp.Text != "" {
		parts = append(parts, resp.Text)
	}
	for _, l := range resp.Lines {
		parts = append(parts, l.Text)
	}
	return joinLines(strings.Join(parts, "\n")), nil
}

// errorText renders an ErrorMessage field, which OCR.space sends either as a
// string or as a list of strings.
func errorText(v any) string {
	switch t := v.(type) {
	case nil:
		return "no error message"
	case string:
		return t
	case []any:
		msgs := make([]string, 0, len(t))
		for _, m := range t {
			msgs = append(msgs, fmt.Sprint(m))
		}
		return strings.Join(msgs, "; ")
	default:
		return fmt.Sprint(t)
	}
}
