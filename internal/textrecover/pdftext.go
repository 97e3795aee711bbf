package textrecover

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// textLayerStage reads the PDF's embedded text layer row by row, preserving
// line structure the way the document lays it out.
type textLayerStage struct{}

func (s *textLayerStage) Name() string { return "text-layer" }

func (s *textLayerStage) Extract(_ context.Context, pdfPath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("textrecover: pdf library panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("textrecover: open pdf: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("textrecover: pdf has no pages")
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

// plainTextStage decodes the same text layer through the library's font-map
// path. Some documents that defeat row extraction decode cleanly here.
type plainTextStage struct{}

func (s *plainTextStage) Name() string { return "plain-text" }

func (s *plainTextStage) Extract(_ context.Context, pdfPath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("textrecover: pdf library panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("textrecover: open pdf: %w", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			font := page.Font(name)
			fonts[name] = &font
		}
		pageText, ptErr := page.GetPlainText(fonts)
		if ptErr != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText != "" {
			pages = append(pages, pageText)
		}
	}
	if len(pages) > 0 {
		return strings.Join(pages, "\n\n"), nil
	}

	// Whole-document decoding as a final text-layer attempt.
	reader, rdErr := r.GetPlainText()
	if rdErr != nil {
		return "", fmt.Errorf("textrecover: plain text decode: %w", rdErr)
	}
	data, rdErr := io.ReadAll(reader)
	if rdErr != nil {
		return "", fmt.Errorf("textrecover: plain text read: %w", rdErr)
	}
	return strings.TrimSpace(string(data)), nil
}
