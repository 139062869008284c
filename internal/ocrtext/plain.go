// SPDX-License-Identifier: Apache-2.0

package ocrtext

import (
	"context"
	"strings"
)

// PlainExtractor passes plain text through, joining its lines.
type PlainExtractor struct{}

// NewPlainExtractor creates a new PlainExtractor.
func NewPlainExtractor() *PlainExtractor {
	return &PlainExtractor{}
}

func (p *PlainExtractor) Name() string {
	return "text"
}

// CanHandle accepts an explicit text hint or any source without a hint.
func (p *PlainExtractor) CanHandle(source Source) bool {
	switch strings.ToLower(source.Format) {
	case "", "text", "txt", "plain":
		return true
	}
	return false
}

func (p *PlainExtractor) Extract(_ context.Context, source Source) (string, error) {
	return joinLines(string(source.Content)), nil
}

// joinLines trims every line and joins the non-empty ones with spaces.
func joinLines(text string) string {
	lines := strings.Split(text, "\n")
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if trimmed := strings.TrimSpace(l); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
