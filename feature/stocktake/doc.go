// Package stocktake exposes the stocktake session over HTTP.
//
// A scanner device (or a small client in front of one) posts every decoded
// barcode to /stocktake/scans; the operator drives loads, saves and the
// hide/show toggle through the remaining endpoints. All calls go through one
// Service, which serializes them so a scan is fully processed, autosave
// included, before the next one is looked at.
//
// # HTTP Endpoints
//
//   - POST /stocktake/scans : Handle one scan (?confirm=true accepts short barcodes).
//   - POST /stocktake/scans/simulate : Scan a random barcode (when enabled).
//   - GET /stocktake/scans/recent : Latest entries of the scan log.
//   - GET /stocktake/state : Session state.
//   - GET /stocktake/report : Found, missing and unknown summary.
//   - GET /stocktake/groups : Display groups (supports ?hide_found=true).
//   - GET /stocktake/records : Display rows (supports ?hide_found=true).
//   - GET /stocktake/records/:barcode : One record.
//   - PUT /stocktake/records/:barcode/found : Toggle a known record.
//   - DELETE /stocktake/records/:barcode : Delete an unknown record.
//   - GET, POST /stocktake/sources : List or load source files.
//   - POST /stocktake/save : Save now.
//   - GET /stocktake/snapshots : List save files.
//   - POST /stocktake/snapshots/load : Continue a saved stocktake.
//   - POST /stocktake/hide, /stocktake/show : Hide or show found records.
//   - POST /stocktake/reset : Start a new stocktake.
package stocktake
