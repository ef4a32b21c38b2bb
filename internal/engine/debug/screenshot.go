// Package debug provides viewer utilities that are not part of rendering.
package debug

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/Faultbox/siliconia/internal/preview"
)

// ScreenshotCapture saves viewer frames as timestamped images.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	ext       string // ".png" or ".bmp"
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler writing files of the given
// format, "png" or "bmp". An empty format means PNG.
func NewScreenshotCapture(outputDir, prefix, format string) (*ScreenshotCapture, error) {
	var ext string
	switch strings.TrimPrefix(format, ".") {
	case "", "png":
		ext = ".png"
	case "bmp":
		ext = ".bmp"
	default:
		return nil, fmt.Errorf("unsupported screenshot format %q", format)
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		ext:       ext,
		now:       time.Now,
	}, nil
}

// CaptureFromPixels saves raw RGBA pixel data of width*height*4 bytes.
// Rows are flipped since OpenGL has its origin at the bottom-left.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return sc.save(img)
}

func (sc *ScreenshotCapture) save(img image.Image) (string, error) {
	filename := sc.GenerateFilename()
	if err := preview.Save(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateFilename returns the name the next capture will use.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s%s", sc.prefix, timestamp, sc.ext)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
