package textrecover

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
)

// rotatePNG writes a copy of the image rotated clockwise by the given number
// of degrees (90 or 270) and returns the new file's path.
func rotatePNG(path string, degrees int) (string, error) {
	if degrees != 90 && degrees != 270 {
		return "", fmt.Errorf("textrecover: unsupported rotation %d", degrees)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("textrecover: open image: %w", err)
	}
	src, err := png.Decode(f)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("textrecover: decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.At(bounds.Min.X+x, bounds.Min.Y+y)
			if degrees == 90 {
				dst.Set(h-1-y, x, c)
			} else {
				dst.Set(y, w-1-x, c)
			}
		}
	}

	outPath := fmt.Sprintf("%s-rot%d.png", strings.TrimSuffix(path, ".png"), degrees)
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("textrecover: create rotated image: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, dst); err != nil {
		return "", fmt.Errorf("textrecover: encode rotated image: %w", err)
	}
	return outPath, nil
}
