// Package csvexport writes report tables as CSV downloads.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Encode renders header and rows as CSV. Cells that a spreadsheet would
// evaluate as formulas are prefixed with a quote.
func Encode(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if len(header) > 0 {
		if err := writer.Write(header); err != nil {
			return nil, fmt.Errorf("write csv header: %w", err)
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = neutralize(cell)
		}
		if err := writer.Write(cells); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Write sends the table as an attachment named filename.
func Write(w http.ResponseWriter, filename string, header []string, rows [][]string) error {
	data, err := Encode(header, rows)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, safeName(filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

func neutralize(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '=', '+', '-', '@', '\t', '\r':
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			return cell
		}
		return "'" + cell
	}
	return cell
}

// safeName keeps filename to characters that need no header quoting.
func safeName(filename string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(filename) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "export.csv"
	}
	return b.String()
}
