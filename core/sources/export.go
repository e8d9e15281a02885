package sources

import (
	"fmt"

	"stocktake/core/records"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	missingSheet = "Missing"
	unknownSheet = "Unknown"
)

// WriteReport writes a stocktake report workbook with a summary sheet and one
// sheet each for missing and unknown records.
func WriteReport(path string, report records.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return err
	}
	summary := [][]any{
		{"Found", report.FoundCount},
		{"Missing", report.MissingCount},
		{"Unknown", report.UnknownFoundCount},
	}
	for i, row := range summary {
		if err := f.SetSheetRow(summarySheet, cellName(1, i+1), &row); err != nil {
			return err
		}
	}

	if err := writeRecords(f, missingSheet, report.MissingRecords); err != nil {
		return err
	}
	if err := writeRecords(f, unknownSheet, report.UnknownRecords); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

func writeRecords(f *excelize.File, sheet string, recs []records.Record) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := make([]any, len(records.RowHeader))
	for i, h := range records.RowHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range recs {
		cells := r.Strings()
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		if err := f.SetSheetRow(sheet, cellName(1, i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
