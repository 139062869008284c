// SPDX-License-Identifier: Apache-2.0

package ocrtext_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/ocrtext"
)

// ---------------------------------------------------------------------------
// Pipeline
// ---------------------------------------------------------------------------

func TestPipeline_UnsupportedFormat(t *testing.T) {
	p := ocrtext.NewPipeline() // no extractors registered
	_, err := p.Flatten(context.Background(), ocrtext.Source{
		Content: []byte("anything"),
		Format:  "pdf",
		ID:      "scan.pdf",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ocrtext.ErrUnsupportedFormat)

	_, err = ocrtext.DefaultPipeline().Flatten(context.Background(), ocrtext.Source{Format: "pdf"})
	assert.ErrorIs(t, err, ocrtext.ErrUnsupportedFormat)
	assert.ErrorContains(t, err, "extractors: json, text")
}

func TestPipeline_RegisteredExtractors(t *testing.T) {
	assert.Equal(t, []string{"json", "text"}, ocrtext.DefaultPipeline().RegisteredExtractors())
}

func TestPipeline_Flatten(t *testing.T) {
	tests := []struct {
		name     string
		source   ocrtext.Source
		wantText string
		wantUsed string
	}{
		{
			name:     "plain text lines are joined",
			source:   ocrtext.Source{Content: []byte("ACME SAFETY\n\n  Smoke Detector \nModel X1\n")},
			wantText: "ACME SAFETY Smoke Detector Model X1",
			wantUsed: "text",
		},
		{
			name: "OCR.space response",
			source: ocrtext.Source{Content: []byte(`{
  "ParsedResults": [
    {"ParsedText": "Carrier\r\nAIR HANDLING UNIT\r\n", "ErrorMessage": ""},
    {"ParsedText": "Model 39M", "ErrorMessage": ""}
  ],
  "OCRExitCode": 1,
  "IsErroredOnProcessing": false
}`)},
			wantText: "Carrier AIR HANDLING UNIT Model 39M",
			wantUsed: "json",
		},
		{
			name:     "generic lines response with hint",
			source:   ocrtext.Source{Format: "json", Content: []byte(`{"lines":[{"text":"Water"},{"text":"Heater"}]}`)},
			wantText: "Water Heater",
			wantUsed: "json",
		},
		{
			name:     "generic text response",
			source:   ocrtext.Source{Content: []byte(`{"text": "fire alarm panel"}`)},
			wantText: "fire alarm panel",
			wantUsed: "json",
		},
		{
			name:     "unhinted text starting with a brace falls back to text",
			source:   ocrtext.Source{Content: []byte("{ACME} Smoke Detector\nSD100")},
			wantText: "{ACME} Smoke Detector SD100",
			wantUsed: "text",
		},
		{
			name:     "unhinted truncated JSON falls back to text",
			source:   ocrtext.Source{Content: []byte(`{"text": [unclosed`)},
			wantText: `{"text": [unclosed`,
			wantUsed: "text",
		},
		{
			name:     "explicit text hint keeps braces as text",
			source:   ocrtext.Source{Format: "text", Content: []byte("{not json}")},
			wantText: "{not json}",
			wantUsed: "text",
		},
	}

	p := ocrtext.DefaultPipeline()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Flatten(context.Background(), tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, res.Text)
			assert.Equal(t, tt.wantUsed, res.ExtractorUsed)
		})
	}
}

// ---------------------------------------------------------------------------
// JSONExtractor
// ---------------------------------------------------------------------------

func TestJSONExtractor_CanHandle(t *testing.T) {
	p := ocrtext.NewJSONExtractor()

	assert.True(t, p.CanHandle(ocrtext.Source{Format: "json"}))
	assert.True(t, p.CanHandle(ocrtext.Source{Format: "OCR-JSON"}))
	assert.True(t, p.CanHandle(ocrtext.Source{Content: []byte(`  {"text": "x"}`)}))
	assert.False(t, p.CanHandle(ocrtext.Source{Content: []byte("plain words")}))
	assert.False(t, p.CanHandle(ocrtext.Source{Content: []byte("{Smoke Detector}")}))
	assert.False(t, p.CanHandle(ocrtext.Source{Content: []byte(`["text"]`)}))
	assert.False(t, p.CanHandle(ocrtext.Source{Format: "text", Content: []byte(`{"text": "x"}`)}))
}

func TestJSONExtractor_ErroredResponse(t *testing.T) {
	p := ocrtext.NewJSONExtractor()
	_, err := p.Extract(context.Background(), ocrtext.Source{Content: []byte(
		`{"IsErroredOnProcessing": true, "ErrorMessage": ["File failed validation.", "Image too large"]}`,
	)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ocrtext.ErrOCRFailed)
	assert.Contains(t, err.Error(), "Image too large")
}

func TestJSONExtractor_InvalidJSON(t *testing.T) {
	p := ocrtext.NewJSONExtractor()
	_, err := p.Extract(context.Background(), ocrtext.Source{Content: []byte(`{"text": [unclosed`)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ocrtext.ErrOCRFailed)
}

// ---------------------------------------------------------------------------
// PlainExtractor
// ---------------------------------------------------------------------------

func TestPlainExtractor(t *testing.T) {
	p := ocrtext.NewPlainExtractor()

	assert.True(t, p.CanHandle(ocrtext.Source{}))
	assert.True(t, p.CanHandle(ocrtext.Source{Format: "TXT"}))
	assert.False(t, p.CanHandle(ocrtext.Source{Format: "json"}))

	text, err := p.Extract(context.Background(), ocrtext.Source{Content: []byte("")})
	require.NoError(t, err)
	assert.Empty(t, text)
}
