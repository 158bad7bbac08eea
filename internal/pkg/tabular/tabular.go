// Package tabular parses uploaded CSV and XLSX sheets into a uniform table
// of string cells and implements the column heuristics shared by bulk user
// upload, arrear imports and mark sheets: institutional exports never agree
// on header names, so required columns are located by substring match against
// an ordered list of accepted aliases.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("only CSV or Excel (.xlsx) files are supported")

// ColumnNotFoundError reports that no header matched any alias for a
// logical field.
type ColumnNotFoundError struct {
	Field   string
	Aliases []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("could not find %q column in file (accepted headers: %s)",
		e.Field, strings.Join(e.Aliases, ", "))
}

// Table is a parsed sheet: one header row plus data rows. Cell values keep
// their original text; only the headers are normalized for detection.
type Table struct {
	Headers []string
	Rows    [][]string

	normalized []string
}

// Parse reads an uploaded sheet, dispatching on the file extension.
// skipRows banner rows are discarded before the header row (college mark
// sheets carry a four-row letterhead above the real header).
func Parse(filename string, r io.Reader, skipRows int) (*Table, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return parseCSV(r, skipRows)
	case strings.HasSuffix(name, ".xlsx"):
		return parseXLSX(r, skipRows)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func parseCSV(r io.Reader, skipRows int) (*Table, error) {
	// Banner lines are stripped from the raw stream before CSV parsing.
	// csv.Reader silently drops blank lines, so skipping parsed records
	// would eat the header whenever the letterhead contains an empty line.
	br := bufio.NewReader(r)
	for i := 0; i < skipRows; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, errors.New("file has no rows after skipping header banner")
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return newTable(records, 0)
}

func parseXLSX(r io.Reader, skipRows int) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel sheet %q: %w", sheets[0], err)
	}
	return newTable(rows, skipRows)
}

// ParseBytes is Parse over an in-memory copy of the upload. Import flows
// that retain the raw file for a later undo read the bytes once and share
// them between parsing and disk persistence.
func ParseBytes(filename string, data []byte, skipRows int) (*Table, error) {
	return Parse(filename, bytes.NewReader(data), skipRows)
}

func newTable(records [][]string, skipRows int) (*Table, error) {
	if skipRows > 0 {
		if skipRows >= len(records) {
			return nil, errors.New("file has no rows after skipping header banner")
		}
		records = records[skipRows:]
	}
	if len(records) == 0 {
		return nil, errors.New("file is empty")
	}

	t := &Table{Headers: records[0], Rows: records[1:]}
	t.normalized = make([]string, len(t.Headers))
	for i, h := range t.Headers {
		t.normalized[i] = strings.ToUpper(strings.TrimSpace(h))
	}
	return t, nil
}

// Column locates the first header containing any of the given aliases,
// checked in alias order then natural column order. Matching is
// case-insensitive substring containment.
func (t *Table) Column(field string, aliases ...string) (int, error) {
	for _, alias := range aliases {
		want := strings.ToUpper(strings.TrimSpace(alias))
		for i, h := range t.normalized {
			if strings.Contains(h, want) {
				return i, nil
			}
		}
	}
	return -1, &ColumnNotFoundError{Field: field, Aliases: aliases}
}

// OptionalColumn is Column without the error: -1 when nothing matches.
func (t *Table) OptionalColumn(aliases ...string) int {
	idx, err := t.Column("", aliases...)
	if err != nil {
		return -1
	}
	return idx
}

// Cell returns the trimmed cell at idx, tolerating ragged rows.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// CellOr returns Cell or a fallback when the cell is empty.
func CellOr(row []string, idx int, fallback string) string {
	if v := Cell(row, idx); v != "" {
		return v
	}
	return fallback
}
