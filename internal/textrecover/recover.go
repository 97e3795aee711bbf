// Package textrecover turns statement PDFs into usable plain text. It tries
// progressively heavier extraction methods: the embedded text layer first,
// then an alternate decoding of the same layer, then OCR of rasterized pages.
package textrecover

import (
	"context"
	"fmt"
	"log"
	"strings"

	"investco/internal/domain"
)

// MinUsableChars is the gate between stages: output shorter than this after
// trimming is treated as a failed extraction and the next stage runs.
const MinUsableChars = 100

// Stage is a single text extraction method.
type Stage interface {
	Name() string
	Extract(ctx context.Context, pdfPath string) (string, error)
}

// Pipeline tries stages in order and returns the first usable output.
type Pipeline struct {
	stages   []Stage
	minChars int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMinChars overrides the usability gate.
func WithMinChars(n int) Option {
	return func(p *Pipeline) { p.minChars = n }
}

// WithStages replaces the default stage chain. Used by tests and by callers
// that need to disable OCR.
func WithStages(stages ...Stage) Option {
	return func(p *Pipeline) { p.stages = stages }
}

// NewTextLayerStage extracts the embedded text layer row by row.
func NewTextLayerStage() Stage { return &textLayerStage{} }

// NewPlainTextStage extracts the text layer through the plain-text decoder.
func NewPlainTextStage() Stage { return &plainTextStage{} }

// NewOCRStage rasterizes pages and runs OCR on them.
func NewOCRStage() Stage { return &ocrStage{} }

// NewPipeline builds the default chain: text layer by row, plain-text
// decoding, then OCR.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		stages: []Stage{
			&textLayerStage{},
			&plainTextStage{},
			&ocrStage{},
		},
		minChars: MinUsableChars,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Recover extracts text from the PDF at pdfPath. Text-layer output is run
// through reversed-line repair before the gate so mirrored pages count as
// usable.
func (p *Pipeline) Recover(ctx context.Context, pdfPath string) (string, error) {
	var lastErr error
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := stage.Extract(ctx, pdfPath)
		if err != nil {
			log.Printf("textrecover.Pipeline: %s failed: %v", stage.Name(), err)
			lastErr = err
			continue
		}

		text = RepairReversedLines(text)
		if p.usable(text) {
			log.Printf("textrecover.Pipeline: recovered %d chars via %s", len(text), stage.Name())
			return text, nil
		}
		log.Printf("textrecover.Pipeline: %s output too short (%d chars), trying next stage", stage.Name(), len(strings.TrimSpace(text)))
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: all extraction stages failed: %v", domain.ErrExtractionFailed, lastErr)
	}
	return "", fmt.Errorf("%w: no stage produced usable text", domain.ErrExtractionFailed)
}

func (p *Pipeline) usable(text string) bool {
	return len(strings.TrimSpace(text)) >= p.minChars
}
