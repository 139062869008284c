// SPDX-License-Identifier: Apache-2.0

// Package ocrtext flattens OCR service output into the single free-text
// string the classifier consumes.
package ocrtext

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedFormat is returned when no extractor accepts a source.
	ErrUnsupportedFormat = errors.New("unsupported OCR output format")
	// ErrOCRFailed marks a response in which the OCR service itself reported
	// a failure. It is an upstream error, not an absence of matches.
	ErrOCRFailed = errors.New("OCR processing failed")
)

// Source describes raw OCR output.
type Source struct {
	// Content is the raw response body or text.
	Content []byte
	// Format is an optional hint such as "text" or "json".
	Format string
	ID     string
}

// Extractor turns one kind of OCR output into plain text.
type Extractor interface {
	CanHandle(source Source) bool
	Extract(ctx context.Context, source Source) (string, error)
	Name() string
}
