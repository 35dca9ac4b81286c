package parser

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/okushnir/kopiyka/internal/domain/normalizer"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// OCREngine recognizes text in a raster image. Scanned PDF pages carry no
// text layer, so the parser falls back to page images plus OCR.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// minTextLayerLen decides whether a PDF has a real text layer. Statements
// are dense; a handful of characters means the pages are scans.
const minTextLayerLen = 64

// PDFParser extracts transactions from PDF statements. Text-layer PDFs go
// straight to the line scanner; scanned ones go through image extraction
// and OCR when an engine is available.
type PDFParser struct {
	opts Options
	ocr  OCREngine // nil disables the scanned-page fallback
}

// NewPDFParser returns a parser for PDF payloads.
func NewPDFParser(opts Options, ocr OCREngine) *PDFParser {
	return &PDFParser{opts: opts, ocr: ocr}
}

// Parse extracts the text layer and scans it line by line. When the text
// layer is missing it rasterizes via embedded images and OCRs each one.
func (p *PDFParser) Parse(ctx context.Context, data []byte) (transaction.ExtractResult, error) {
	text, err := extractTextLayer(data)
	if err != nil {
		return transaction.ExtractResult{}, fmt.Errorf("read pdf: %w", err)
	}

	if len(strings.TrimSpace(text)) < minTextLayerLen {
		if p.ocr == nil {
			return transaction.ExtractResult{}, fmt.Errorf("%w: scanned pdf without ocr engine", ErrUnsupportedFormat)
		}
		text, err = p.ocrPages(ctx, data)
		if err != nil {
			return transaction.ExtractResult{}, err
		}
	}

	text = normalizer.Normalize(text)
	return NewTextParser(p.opts).Parse(text), nil
}

// extractTextLayer concatenates the text rows of every page, one row per
// line, so the downstream scanner sees the statement's visual lines.
func extractTextLayer(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(word.S)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// ocrPages extracts the embedded page images with pdfcpu and feeds each
// one to the OCR engine. pdfcpu works on files, so the payload takes a
// round trip through a temp directory.
func (p *PDFParser) ocrPages(ctx context.Context, data []byte) (string, error) {
	tempDir, err := os.MkdirTemp("", "statement_pdf")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, "statement.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return "", fmt.Errorf("write temp pdf: %w", err)
	}

	imageDir := filepath.Join(tempDir, "pages")
	if err := os.Mkdir(imageDir, 0o700); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(pdfPath, imageDir, nil, conf); err != nil {
		return "", fmt.Errorf("extract page images: %w", err)
	}

	entries, err := os.ReadDir(imageDir)
	if err != nil {
		return "", fmt.Errorf("read image dir: %w", err)
	}

	var sb strings.Builder
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		img, err := os.ReadFile(filepath.Join(imageDir, entry.Name()))
		if err != nil {
			continue
		}
		pageText, err := p.ocr.Recognize(ctx, img)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: no recognizable pages", ErrUnsupportedFormat)
	}
	return sb.String(), nil
}
