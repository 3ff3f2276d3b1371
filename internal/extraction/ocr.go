package extraction

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes text with the Tesseract OCR engine. A gosseract
// client is not safe for concurrent use, so a fresh one is created per call;
// the heavy language data is cached by Tesseract itself.
type TesseractEngine struct {
	languages []string
}

// NewTesseractEngine creates an OCR engine for the given languages.
// An empty list uses Tesseract's default (English).
func NewTesseractEngine(languages ...string) *TesseractEngine {
	return &TesseractEngine{languages: languages}
}

// Recognize runs OCR over a single raster image and returns the recognized
// text.
func (t *TesseractEngine) Recognize(_ context.Context, image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return "", fmt.Errorf("failed to set OCR languages: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to load image for OCR: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR recognition failed: %w", err)
	}
	return text, nil
}
