package textrecover

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investco/internal/domain"
)

type fakeStage struct {
	name string
	text string
	err  error
}

func (f *fakeStage) Name() string { return f.name }

func (f *fakeStage) Extract(context.Context, string) (string, error) {
	return f.text, f.err
}

func longText(prefix string) string {
	return prefix + " " + strings.Repeat("statement balance ", 20)
}

func TestPipelineUsesFirstUsableStage(t *testing.T) {
	p := NewPipeline(WithStages(
		&fakeStage{name: "first", text: longText("first")},
		&fakeStage{name: "second", text: longText("second")},
	))

	text, err := p.Recover(context.Background(), "x.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "first"))
}

func TestPipelineFallsThroughShortOutput(t *testing.T) {
	p := NewPipeline(WithStages(
		&fakeStage{name: "thin", text: "only a little"},
		&fakeStage{name: "ocr", text: longText("ocr")},
	))

	text, err := p.Recover(context.Background(), "x.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "ocr"))
}

func TestPipelineFallsThroughStageError(t *testing.T) {
	p := NewPipeline(WithStages(
		&fakeStage{name: "broken", err: errors.New("boom")},
		&fakeStage{name: "good", text: longText("good")},
	))

	text, err := p.Recover(context.Background(), "x.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "good"))
}

func TestPipelineAllStagesFail(t *testing.T) {
	p := NewPipeline(WithStages(
		&fakeStage{name: "a", err: errors.New("no text layer")},
		&fakeStage{name: "b", text: "tiny"},
	))

	_, err := p.Recover(context.Background(), "x.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestPipelineHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(WithStages(&fakeStage{name: "a", text: longText("a")}))
	_, err := p.Recover(ctx, "x.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineMinCharsOption(t *testing.T) {
	p := NewPipeline(
		WithStages(&fakeStage{name: "a", text: "short but enough"}),
		WithMinChars(5),
	)
	text, err := p.Recover(context.Background(), "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "short but enough", text)
}

func TestRepairReversedLines(t *testing.T) {
	forward := "Beginning Balance $1,000.00\nEnding Balance $1,100.00"
	assert.Equal(t, forward, RepairReversedLines(forward))

	mirrored := reverseAllLines(forward)
	assert.Equal(t, forward, RepairReversedLines(mirrored))
}

func TestRepairReversedLinesLeavesAmbiguousTextAlone(t *testing.T) {
	ambiguous := "12345 67890"
	assert.Equal(t, ambiguous, RepairReversedLines(ambiguous))
	assert.Equal(t, "", RepairReversedLines(""))
}
