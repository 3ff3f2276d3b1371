package extraction

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

// OCREngine recognizes text in a raster image. Implementations must be safe
// for concurrent use.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Rasterizer renders every page of a PDF document to an image, in page order.
type Rasterizer interface {
	Pages(data []byte) ([][]byte, error)
}

// Extractor converts a RawDocument into ordered text lines. All internal
// failures degrade to empty text; the only error it returns is
// ErrUnsupportedFormat, so callers can distinguish "unreadable format" from
// "document contained no text".
type Extractor struct {
	ocr    OCREngine
	raster Rasterizer
}

// New creates an extractor using the given OCR engine and PDF rasterizer.
func New(ocr OCREngine, raster Rasterizer) *Extractor {
	return &Extractor{ocr: ocr, raster: raster}
}

// Extract produces the document's text as a sequence of non-empty trimmed
// lines. A document that yields no text returns an empty slice and a nil
// error.
func (e *Extractor) Extract(ctx context.Context, doc RawDocument) ([]string, error) {
	switch doc.Format {
	case FormatImage:
		return splitLines(e.extractImage(ctx, doc.Data)), nil
	case FormatPDF:
		return splitLines(e.extractPDF(ctx, doc.Data)), nil
	case FormatWord:
		return splitLines(e.extractWord(doc.Data)), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// extractImage runs OCR directly on the image. There is no fallback for
// images; a recognition failure yields empty text.
func (e *Extractor) extractImage(ctx context.Context, data []byte) string {
	text, err := e.ocr.Recognize(ctx, data)
	if err != nil {
		log.Printf("[extract] image OCR failed: %v", err)
		return ""
	}
	return text
}

// extractPDF tries the PDF's text layer first. Only a reader error (corrupt
// layer, encrypted stream) triggers the OCR fallback; a clean extraction
// that happens to be empty does not.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) string {
	text, err := pdfTextLayer(data)
	if err == nil {
		return text
	}
	log.Printf("[extract] pdf text layer failed, falling back to OCR: %v", err)
	return e.ocrPDF(ctx, data)
}

// pdfTextLayer extracts the text layer page by page. The pdf library panics
// on some malformed cross-reference tables, so the panic is converted into
// an error to keep the fallback path reachable.
func pdfTextLayer(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		buf.WriteString(pageText)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// ocrPDF rasterizes every page and recognizes each in order. A total failure
// of this path yields empty text rather than an error.
func (e *Extractor) ocrPDF(ctx context.Context, data []byte) string {
	pages, err := e.raster.Pages(data)
	if err != nil {
		log.Printf("[extract] pdf rasterization failed: %v", err)
		return ""
	}

	var buf strings.Builder
	for i, page := range pages {
		text, err := e.ocr.Recognize(ctx, page)
		if err != nil {
			log.Printf("[extract] OCR failed on pdf page %d: %v", i+1, err)
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	return buf.String()
}

// extractWord extracts paragraph text from a .docx document. There is no OCR
// fallback for word-processor documents; a parse failure yields empty text.
func (e *Extractor) extractWord(data []byte) string {
	res, err := wordText(bytes.NewReader(data))
	if err != nil {
		log.Printf("[extract] docx parse failed: %v", err)
		return ""
	}
	return res
}

func wordText(r io.Reader) (string, error) {
	res, err := docconv.Convert(r, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}

// splitLines breaks raw extracted text into trimmed, non-empty lines.
func splitLines(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
