// Package sniffer detects the shape of bank statement exports: character
// encoding, field delimiter and header row. Banks disagree on all three,
// so detection is brute-force trial rather than configuration.
package sniffer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Statement header keywords, multilingual: Ukrainian, transliterations,
// English, plus the Russian spellings older exports still carry.
var headerKeywords = []string{
	// Ukrainian
	"дата", "сума", "опис", "призначення", "деталі", "категорія", "тип",
	"дебет", "кредит", "баланс", "валюта", "час", "картка", "операц",
	// Russian (legacy exports)
	"сумма", "описание", "назначение",
	// transliterations
	"data", "suma", "opys", "operac",
	// English
	"date", "amount", "description", "details", "category", "type",
	"debit", "credit", "balance", "currency", "time", "card", "merchant",
}

var (
	ErrEmptyFile     = errors.New("file is empty")
	ErrNoTabularData = errors.New("could not detect tabular data")
)

// headerScanRows is how deep the header search looks. Exports put bank
// metadata above the header, but never more than a few lines of it.
const headerScanRows = 5

// minHeaderKeywordHits is the confidence bar: a row with fewer keyword
// matches is metadata, not a header.
const minHeaderKeywordHits = 2

// FileConfig is the detected shape of one CSV/TSV statement.
type FileConfig struct {
	Delimiter rune
	Encoding  string     // "utf-8", "utf-16", "windows-1251", "iso-8859-1"
	HeaderRow int        // index into Rows; -1 when no confident header
	Headers   []string   // nil when HeaderRow is -1
	Rows      [][]string // every parsed row, headers included
}

// DataRows returns the rows after the header, or all rows when no header
// was detected.
func (c *FileConfig) DataRows() [][]string {
	if c.HeaderRow < 0 {
		return c.Rows
	}
	return c.Rows[c.HeaderRow+1:]
}

// Detect decodes and tokenizes a statement export. Encodings are tried in
// fixed priority (UTF-8 when valid, UTF-16 on BOM, then CP1251, then
// Latin-1 — CP1251 first because Cyrillic exports dominate); for each
// decoding, delimiters are scored by occurrence and the first combination
// producing more than one column wins.
func Detect(data []byte) (*FileConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	for _, enc := range candidateEncodings(data) {
		text, err := decode(data, enc)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}

		delimiter := detectDelimiter(text)
		if delimiter == 0 {
			continue
		}

		rows, err := readAll(text, delimiter)
		if err != nil || len(rows) == 0 {
			continue
		}
		if maxColumns(rows) < 2 {
			continue
		}

		config := &FileConfig{
			Delimiter: delimiter,
			Encoding:  enc.name,
			HeaderRow: -1,
			Rows:      rows,
		}
		if idx := findHeaderRow(rows); idx >= 0 {
			config.HeaderRow = idx
			config.Headers = rows[idx]
		}
		return config, nil
	}

	return nil, ErrNoTabularData
}

type namedEncoding struct {
	name    string
	decoder *encoding.Decoder // nil means pass-through UTF-8
}

func candidateEncodings(data []byte) []namedEncoding {
	// UTF-16 BOM takes precedence: a UTF-16LE file is rarely valid UTF-8,
	// but when it is, the BOM is still authoritative.
	if hasUTF16BOM(data) {
		return []namedEncoding{
			{"utf-16", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()},
		}
	}

	candidates := make([]namedEncoding, 0, 3)
	if utf8.Valid(data) {
		candidates = append(candidates, namedEncoding{"utf-8", nil})
	}
	candidates = append(candidates,
		namedEncoding{"windows-1251", charmap.Windows1251.NewDecoder()},
		namedEncoding{"iso-8859-1", charmap.ISO8859_1.NewDecoder()},
	)
	return candidates
}

func decode(data []byte, enc namedEncoding) (string, error) {
	if enc.decoder == nil {
		return string(stripUTF8BOM(data)), nil
	}
	decoded, err := enc.decoder.Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 &&
		((data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF))
}

func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// detectDelimiter picks the candidate with the highest total count in the
// payload. Counting the whole text rather than the first line matters:
// exports open with delimiter-free metadata lines.
func detectDelimiter(text string) rune {
	best := rune(0)
	bestCount := 0
	for _, d := range []rune{';', '\t', ',', '|'} {
		if count := strings.Count(text, string(d)); count > bestCount {
			bestCount = count
			best = d
		}
	}
	return best
}

func readAll(text string, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed lines are skipped, not fatal: exports embed
			// unquoted metadata above and below the table.
			continue
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func maxColumns(rows [][]string) int {
	max := 0
	for _, row := range rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// findHeaderRow scans the first rows for one scoring at least two keyword
// hits. Returns -1 when nothing qualifies; callers then fall back to
// per-row heuristic field scanning.
func findHeaderRow(rows [][]string) int {
	limit := headerScanRows
	if len(rows) < limit {
		limit = len(rows)
	}

	bestIdx := -1
	bestHits := 0
	for i := 0; i < limit; i++ {
		hits := keywordHits(rows[i])
		if hits >= minHeaderKeywordHits && hits > bestHits {
			bestHits = hits
			bestIdx = i
		}
	}
	return bestIdx
}

func keywordHits(row []string) int {
	hits := 0
	for _, cell := range row {
		cell = strings.ToLower(strings.TrimSpace(cell))
		if cell == "" {
			continue
		}
		for _, kw := range headerKeywords {
			if strings.Contains(cell, kw) {
				hits++
				break
			}
		}
	}
	return hits
}
