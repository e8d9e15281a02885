// Package session drives a stocktake: it turns scanned barcodes into
// classified outcomes, loads source files and saved snapshots, and applies the
// autosave and retention policy.
//
// # Collaborators
//
// The session talks to the outside world only through small interfaces so the
// terminal, HTTP and test adapters stay swappable:
//   - SourceLoader: reads rows from a source file (spreadsheet, Google Sheet).
//   - SaveStore: writes, reads, rotates and prunes snapshot files.
//   - ScanLog: append-only log of every raw scan, used for recovery.
//   - Notifier: receives semantic feedback events (duplicate, knownFound, ...).
//   - View: displays records, highlights found barcodes, shows messages.
//   - Prompter: asks the operator to confirm short barcodes, choose between
//     append and overwrite, or start over after a corrupt snapshot.
//   - Archiver: optional off-site copy of rotated save files.
//
// # Scan handling
//
// HandleScan checks the barcode shape, logs the raw scan, and classifies it
// as NoDataLoaded, Duplicate or NewlyFound (known or unknown). Barcodes in the
// hidden set still update the store but are not highlighted. Every processed
// scan advances the scan counter which drives autosave: every AutosaveCount
// scans the active file is rewritten, every AutosaveCountNewFile scans a new
// file is started and old ones pruned. Save failures are reported and never
// stop scanning.
//
// A Session is not safe for concurrent use. Adapters that accept input from
// several goroutines must serialize calls.
package session
