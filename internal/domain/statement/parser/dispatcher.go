package parser

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/okushnir/kopiyka/internal/domain/normalizer"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// Dispatcher routes a statement payload to the right format parser based
// on the filename extension, falling back to content magic when the
// extension lies or is missing.
type Dispatcher struct {
	csv   *CSVParser
	excel *ExcelParser
	pdf   *PDFParser
	text  *TextParser
}

// NewDispatcher wires the per-format parsers. The OCR engine may be nil;
// scanned PDFs then fail with ErrUnsupportedFormat.
func NewDispatcher(opts Options, ocr OCREngine) *Dispatcher {
	return &Dispatcher{
		csv:   NewCSVParser(opts),
		excel: NewExcelParser(opts),
		pdf:   NewPDFParser(opts, ocr),
		text:  NewTextParser(opts),
	}
}

// Parse extracts transactions from one uploaded statement file and
// deduplicates the result. Unknown formats return ErrUnsupportedFormat.
func (d *Dispatcher) Parse(ctx context.Context, filename string, data []byte) (transaction.ExtractResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return transaction.ExtractResult{}, fmt.Errorf("%w: empty file", ErrUnsupportedFormat)
	}

	result, err := d.route(ctx, filename, data)
	if err != nil {
		return result, err
	}

	result.Records = Dedupe(result.Records)
	return result, nil
}

func (d *Dispatcher) route(ctx context.Context, filename string, data []byte) (transaction.ExtractResult, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv":
		return d.csv.Parse(data)
	case ".xlsx", ".xls":
		// Legacy .xls sometimes is a renamed XLSX; a genuine binary .xls
		// fails in excelize and surfaces as unsupported.
		result, err := d.excel.Parse(data)
		if err != nil {
			return result, fmt.Errorf("%w: %s", ErrUnsupportedFormat, err)
		}
		return result, nil
	case ".pdf":
		return d.pdf.Parse(ctx, data)
	case ".txt":
		return d.text.Parse(decodePlainText(data)), nil
	}

	return d.routeByContent(ctx, data)
}

// routeByContent sniffs magic bytes, then falls back to tabular and
// finally free-text parsing.
func (d *Dispatcher) routeByContent(ctx context.Context, data []byte) (transaction.ExtractResult, error) {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return d.pdf.Parse(ctx, data)
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return d.excel.Parse(data)
	}

	if result, err := d.csv.Parse(data); err == nil && len(result.Records) > 0 {
		return result, nil
	}

	result := d.text.Parse(decodePlainText(data))
	if len(result.Records) == 0 {
		return result, ErrUnsupportedFormat
	}
	return result, nil
}

// Dedupe removes records repeating an already-seen date, amount and
// description, keeping first occurrences in order. Statements exported
// twice into one archive are common enough to guard against.
func Dedupe(records []transaction.Record) []transaction.Record {
	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	for _, rec := range records {
		key := fmt.Sprintf("%s|%d|%s",
			rec.Date.Format("2006-01-02"),
			rec.AmountCents,
			strings.ToLower(strings.TrimSpace(rec.Description)),
		)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// decodePlainText decodes a text payload: UTF-8 when valid, otherwise
// CP1251, the legacy encoding of Ukrainian exports.
func decodePlainText(data []byte) string {
	if utf8.Valid(data) {
		return normalizer.Normalize(string(data))
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return normalizer.Normalize(string(data))
	}
	return normalizer.Normalize(string(decoded))
}
