// Package sources reads expected inventory rows from spreadsheets and writes
// stocktake reports back out.
//
// Two kinds of source are supported. Local .xlsx workbooks are read with
// excelize. Google Sheets are addressed as sheets://<spreadsheet id>[/<range>]
// and read through the Sheets API. Both share one column layout: barcode,
// width and weight by zero-based column index, and material by header name.
// Rows without a barcode are dropped.
package sources
