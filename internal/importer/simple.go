package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/financehub-dev/financehub/internal/model"
)

// SimpleParser reads the minimal "date,description,amount" layout with ISO
// dates. Amounts may use a decimal comma ("1234,56") when they contain no dot.
type SimpleParser struct{}

// Format returns the parser name.
func (p *SimpleParser) Format() string { return "simple" }

// Parse reads the CSV, skipping the header row.
func (p *SimpleParser) Parse(r io.Reader) ([]Line, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	lines := make([]Line, 0, len(records)-1)
	for i, rec := range records[1:] {
		d, err := model.ParseDate(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[0], err)
		}
		raw := rec[2]
		if !strings.Contains(raw, ".") {
			raw = strings.Replace(raw, ",", ".", 1)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[2], err)
		}
		lines = append(lines, Line{
			Date:        d,
			Description: strings.TrimSpace(rec[1]),
			Amount:      amount,
		})
	}
	return lines, nil
}
