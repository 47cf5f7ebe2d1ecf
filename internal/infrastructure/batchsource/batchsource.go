// Package batchsource reads tabular import files into header-keyed records.
// The first non-empty row is the header. Header names are folded so
// "Código do Cliente" and "codigo_do_cliente" address the same column.
package batchsource

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/services/sanitize"
)

// Record is one data row. Line is the 1-based line in the source file.
type Record struct {
	Line    int
	Headers []string
	Fields  map[string]string
}

// Value returns the first non-blank value among the given header aliases.
// Aliases are compared after NormalizeHeader. When no alias matches exactly,
// a header containing an alias is accepted.
func (r Record) Value(aliases ...string) string {
	for _, alias := range aliases {
		if v, ok := r.Fields[NormalizeHeader(alias)]; ok && v != "" {
			return v
		}
	}
	for _, alias := range aliases {
		key := NormalizeHeader(alias)
		for _, header := range r.Headers {
			if v := r.Fields[header]; v != "" && strings.Contains(header, key) {
				return v
			}
		}
	}
	return ""
}

// Has reports whether any header matches one of the aliases.
func (r Record) Has(aliases ...string) bool {
	for _, alias := range aliases {
		if _, ok := r.Fields[NormalizeHeader(alias)]; ok {
			return true
		}
	}
	return false
}

// NormalizeHeader folds accents and case and joins words with underscores.
func NormalizeHeader(h string) string {
	folded := sanitize.Fold(h)
	var b strings.Builder
	underscore := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	return Read(filepath.Base(path), f)
}

// Read picks the reader by the extension of name: .csv, .txt, .xlsx or .xlsm.
func Read(name string, r io.Reader) ([]Record, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv", ".txt":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported batch file format %q, use CSV or XLSX", ext)
	}
}

// ReadCSV detects the delimiter (";", "," or tab) from the header line.
func ReadCSV(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var (
		rows  [][]string
		lines []int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}
	return buildRecords(rows, lines)
}

// ReadXLSX reads the active sheet of a workbook.
func ReadXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return buildRecords(rows, nil)
}

func detectDelimiter(data []byte) rune {
	line, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	best, bestCount := ',', 0
	for _, candidate := range []rune{';', ',', '\t'} {
		if n := strings.Count(line, string(candidate)); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

// buildRecords keys each row by the header and drops rows with no value.
// lines holds the source line of each row; nil means row i is on line i+1.
func buildRecords(rows [][]string, lines []int) ([]Record, error) {
	headerIdx := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("batch file is empty")
	}

	headers := make([]string, len(rows[headerIdx]))
	var ordered []string
	for i, h := range rows[headerIdx] {
		headers[i] = NormalizeHeader(h)
		if headers[i] != "" {
			ordered = append(ordered, headers[i])
		}
	}

	var records []Record
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if blankRow(row) {
			continue
		}
		fields := make(map[string]string, len(headers))
		for col, header := range headers {
			if header == "" {
				continue
			}
			if _, seen := fields[header]; seen {
				continue
			}
			value := ""
			if col < len(row) {
				value = strings.TrimSpace(row[col])
			}
			fields[header] = value
		}
		line := i + 1
		if lines != nil {
			line = lines[i]
		}
		records = append(records, Record{Line: line, Headers: ordered, Fields: fields})
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("batch file has no data rows")
	}
	return records, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
