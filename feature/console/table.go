package console

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"stocktake/core/archive"
	"stocktake/core/records"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// recordAligns matches records.RowHeader.
var recordAligns = []columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignRight}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func recordRows(recs []records.Record) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, r.Strings())
	}
	return rows
}

// RenderReport writes the stocktake summary followed by the missing and
// unknown records.
func RenderReport(w io.Writer, report records.Report) {
	summary := [][]string{
		{"Found", strconv.Itoa(report.FoundCount)},
		{"Missing", strconv.Itoa(report.MissingCount)},
		{"Unknown", strconv.Itoa(report.UnknownFoundCount)},
	}
	fmt.Fprintln(w, renderTable([]string{"Status", "Count"}, summary, []columnAlignment{alignLeft, alignRight}))

	if len(report.MissingRecords) > 0 {
		fmt.Fprintln(w, "Missing reels:")
		fmt.Fprintln(w, renderTable(records.RowHeader, recordRows(report.MissingRecords), recordAligns))
	}
	if len(report.UnknownRecords) > 0 {
		fmt.Fprintln(w, "Unknown reels:")
		fmt.Fprintln(w, renderTable(records.RowHeader, recordRows(report.UnknownRecords), recordAligns))
	}
}

// RenderGroups writes one table per display group.
func RenderGroups(w io.Writer, groups [][]records.Record) {
	for i, group := range groups {
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "Group %d: %s, width %s (%d)\n", i+1,
			valueOrNone(group[0].Material), intOrNone(group[0].Width), len(group))
		fmt.Fprintln(w, renderTable(records.RowHeader, recordRows(group), recordAligns))
	}
}

// RenderRows writes display rows; the first row is the header.
func RenderRows(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, renderTable(rows[0], rows[1:], recordAligns))
}

// RenderArchive writes archived save files, newest first as listed.
func RenderArchive(w io.Writer, objects []archive.Object) {
	rows := make([][]string, 0, len(objects))
	for _, obj := range objects {
		rows = append(rows, []string{
			obj.Name,
			strconv.FormatInt(obj.Size, 10),
			obj.LastModified.Local().Format(time.DateTime),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"Name", "Size", "Modified"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
}

func valueOrNone(v *string) string {
	if v == nil {
		return "None"
	}
	return *v
}

func intOrNone(v *int) string {
	if v == nil {
		return "None"
	}
	return strconv.Itoa(*v)
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
