// SPDX-License-Identifier: Apache-2.0

package ocrtext

import (
	"context"
	"fmt"
	"strings"
)

// Pipeline picks the first registered extractor that can handle a source.
type Pipeline struct {
	extractors []Extractor
}

// NewPipeline creates a Pipeline with the provided extractors, tried in order.
func NewPipeline(extractors ...Extractor) *Pipeline {
	return &Pipeline{extractors: extractors}
}

// DefaultPipeline tries the JSON extractor before falling back to plain text.
func DefaultPipeline() *Pipeline {
	return NewPipeline(NewJSONExtractor(), NewPlainExtractor())
}

// Result is the output of a successful Flatten.
type Result struct {
	Text          string
	ExtractorUsed string
}

// Flatten extracts the text of source.
func (p *Pipeline) Flatten(ctx context.Context, source Source) (Result, error) {
	ex, err := p.selectExtractor(source)
	if err != nil {
		return Result{}, err
	}

	text, err := ex.Extract(ctx, source)
	if err != nil {
		return Result{}, fmt.Errorf("extractor %q failed: %w", ex.Name(), err)
	}
	return Result{Text: text, ExtractorUsed: ex.Name()}, nil
}

func (p *Pipeline) selectExtractor(source Source) (Extractor, error) {
	for _, ex := range p.extractors {
		if ex.CanHandle(source) {
			return ex, nil
		}
	}
	return nil, fmt.Errorf("%w: no extractor for source %q (format hint: %q, extractors: %s)",
		ErrUnsupportedFormat, source.ID, source.Format, strings.Join(p.RegisteredExtractors(), ", "))
}

// RegisteredExtractors returns the names of all registered extractors.
func (p *Pipeline) RegisteredExtractors() []string {
	names := make([]string, len(p.extractors))
	for i, ex := range p.extractors {
		names[i] = ex.Name()
	}
	return names
}
