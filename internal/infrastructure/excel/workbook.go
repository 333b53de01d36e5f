package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one data row of a sheet, keyed by normalized header
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the trimmed value of a column
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// Has reports whether the column was present in the header row
func (r *Row) Has(header string) bool {
	_, ok := r.Data[header]
	return ok
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// Sheet is the parsed first sheet of a workbook
type Sheet struct {
	Name    string
	Headers []string
	Rows    []*Row
}

// HasHeader checks if a header exists
func (s *Sheet) HasHeader(name string) bool {
	for _, h := range s.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// MissingHeaders returns the required headers not present in the sheet
func (s *Sheet) MissingHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !s.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// NormalizeHeader lowercases a header and turns spaces and dashes into underscores
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	return strings.ReplaceAll(h, "-", "_")
}

// ReadFirstSheet parses the first sheet of an xlsx workbook.
// Row 1 is the header; blank rows are skipped; at most maxRows data rows are accepted.
func ReadFirstSheet(r io.Reader, maxRows int) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	name := sheets[0]

	raw, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyWorkbook
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = NormalizeHeader(h)
	}

	sheet := &Sheet{Name: name, Headers: headers, Rows: make([]*Row, 0, len(raw)-1)}
	for i, record := range raw[1:] {
		row := &Row{LineNumber: i + 2, Data: make(map[string]string, len(headers))}
		for col, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if col < len(record) {
				value = strings.TrimSpace(record[col])
			}
			row.Data[header] = value
		}
		if row.IsEmpty() {
			continue
		}
		if maxRows > 0 && len(sheet.Rows) >= maxRows {
			return nil, ErrTooManyRows
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	if len(sheet.Rows) == 0 {
		return nil, ErrNoDataRows
	}
	return sheet, nil
}

// WriteSheet writes a single-sheet workbook with a bold header row
func WriteSheet(w io.Writer, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sheet1"
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCell, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := values
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}
