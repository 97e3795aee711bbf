package textrecover

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ocrStage rasterizes pages with pdftoppm and reads them with tesseract.
// Requires poppler-utils and tesseract-ocr on the host. Scanned statements
// are sometimes rotated a quarter turn, so each page is retried at 90 and
// 270 degrees when the upright pass reads nothing useful.
type ocrStage struct{}

func (s *ocrStage) Name() string { return "ocr" }

// pageRotations is the order of orientations tried per page.
var pageRotations = []int{0, 90, 270}

func (s *ocrStage) Extract(ctx context.Context, pdfPath string) (string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return "", fmt.Errorf("textrecover: pdftoppm not available (install poppler-utils): %w", err)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("textrecover: tesseract not available (install tesseract-ocr): %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return "", fmt.Errorf("textrecover: create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// 300 DPI gives tesseract enough resolution for statement tables.
	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", "300", "-png", pdfPath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("textrecover: pdftoppm: %w (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", fmt.Errorf("textrecover: read temp dir: %w", err)
	}
	var images []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			images = append(images, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(images)
	if len(images) == 0 {
		return "", fmt.Errorf("textrecover: pdftoppm produced no page images")
	}

	var pages []string
	for _, img := range images {
		text, ocrErr := s.readPage(ctx, img)
		if ocrErr != nil {
			log.Printf("textrecover: ocr warning for %s: %v", filepath.Base(img), ocrErr)
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("textrecover: tesseract produced no text from %d page images", len(images))
	}
	return strings.Join(pages, "\n\n"), nil
}

// readPage OCRs one page image, retrying rotated copies until one reads as
// real text. The best-scoring orientation wins when none pass the keyword
// check outright.
func (s *ocrStage) readPage(ctx context.Context, imgPath string) (string, error) {
	var best string
	bestScore := -1
	var lastErr error

	for _, rotation := range pageRotations {
		path := imgPath
		if rotation != 0 {
			rotated, err := rotatePNG(imgPath, rotation)
			if err != nil {
				lastErr = err
				continue
			}
			path = rotated
		}

		text, err := tesseractPage(ctx, path)
		if err != nil {
			lastErr = err
			continue
		}
		score := keywordScore(text)
		if score > 0 && rotation == 0 {
			// Upright and readable, no need to try rotations.
			return text, nil
		}
		if score > bestScore || (score == bestScore && len(text) > len(best)) {
			best, bestScore = text, score
		}
	}

	if bestScore < 0 {
		return "", lastErr
	}
	return best, nil
}

func tesseractPage(ctx context.Context, imgPath string) (string, error) {
	outBase := strings.TrimSuffix(imgPath, ".png") + "-ocr"
	// PSM 4 assumes a single column of variable-size text, which matches
	// statement layouts better than the default.
	cmd := exec.CommandContext(ctx, "tesseract", imgPath, outBase, "-l", "eng", "--psm", "4")
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("tesseract: %w (output: %s)", err, string(out))
	}
	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return "", fmt.Errorf("tesseract output: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
