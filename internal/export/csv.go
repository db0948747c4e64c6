// Package export writes the spreadsheet-friendly CSV files offered by the
// list and report views.
//
// A string containing a comma is wrapped in double quotes and nothing else is
// escaped. Files start with a UTF-8 BOM.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// BOM is the UTF-8 byte order mark written before the header.
const BOM = "\ufeff"

// Field is one named cell.
type Field struct {
	Name  string
	Value any
}

// Row is an ordered record. The first row's field names become the header.
type Row []Field

// Get returns the value of the named field and whether it was present.
func (r Row) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Headers returns the field names of the first row.
func Headers(rows []Row) []string {
	if len(rows) == 0 {
		return nil
	}
	headers := make([]string, len(rows[0]))
	for i, f := range rows[0] {
		headers[i] = f.Name
	}
	return headers
}

// Encode renders rows as CSV text without the BOM.
func Encode(rows []Row) string {
	headers := Headers(rows)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			v, _ := row.Get(h)
			cells[i] = formatCell(v)
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		if strings.Contains(v, ",") {
			return `"` + v + `"`
		}
		return v
	case decimal.Decimal:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Write writes the BOM and the encoded rows to w. It writes nothing and
// reports false when rows is empty.
func Write(w io.Writer, rows []Row) (bool, error) {
	if len(rows) == 0 {
		return false, nil
	}
	var buf bytes.Buffer
	buf.WriteString(BOM)
	buf.WriteString(Encode(rows))
	if _, err := w.Write(buf.Bytes()); err != nil {
		return false, fmt.Errorf("writing csv: %w", err)
	}
	return true, nil
}

// WriteFile writes rows to <dir>/<name>.csv and returns the path. An empty
// row set creates no file and reports false.
func WriteFile(dir, name string, rows []Row) (string, bool, error) {
	if len(rows) == 0 {
		return "", false, nil
	}
	path := filepath.Join(dir, name+".csv")
	content := BOM + Encode(rows)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", false, fmt.Errorf("error creating %s: %w", path, err)
	}
	return path, true, nil
}
