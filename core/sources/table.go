package sources

import (
	"fmt"
	"strings"

	"stocktake/core/records"
	"stocktake/core/utils"
)

// RowError reports a cell that could not be read.
type RowError struct {
	// Line is the 1-based spreadsheet row.
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// parseTable turns a header row plus data rows into records.Rows.
func parseTable(table [][]any, cfg Config) ([]records.Row, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("source has no header row")
	}

	materialCol := -1
	for i, cell := range table[0] {
		if strings.EqualFold(strings.TrimSpace(utils.ToString(cell)), cfg.MaterialHeader) {
			materialCol = i
			break
		}
	}
	if materialCol < 0 {
		return nil, fmt.Errorf("header %q not found", cfg.MaterialHeader)
	}

	rows := make([]records.Row, 0, len(table)-1)
	for i, cells := range table[1:] {
		line := i + 2
		barcode := strings.TrimSpace(utils.ToString(cell(cells, cfg.BarcodeColumn)))
		if barcode == "" {
			continue
		}
		width, err := utils.ParseInt(cell(cells, cfg.WidthColumn))
		if err != nil {
			return nil, &RowError{Line: line, Column: "width", Err: err}
		}
		weight, err := utils.ParseInt(cell(cells, cfg.WeightColumn))
		if err != nil {
			return nil, &RowError{Line: line, Column: "weight", Err: err}
		}
		rows = append(rows, records.Row{
			Barcode:  barcode,
			Width:    width,
			Weight:   weight,
			Material: strings.TrimSpace(utils.ToString(cell(cells, materialCol))),
		})
	}
	return rows, nil
}

// cell returns nil for columns past the end of a short row.
func cell(cells []any, i int) any {
	if i < 0 || i >= len(cells) {
		return nil
	}
	return cells[i]
}
