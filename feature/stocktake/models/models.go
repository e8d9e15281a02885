package models

import (
	"time"

	"stocktake/core/records"
	"stocktake/core/session"
)

// Message is an operator message raised while handling a request.
type Message struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ScanRequest is the body of a scan call.
type ScanRequest struct {
	Barcode string `json:"barcode"`
}

// ScanResponse is the result of one scan.
type ScanResponse struct {
	session.ScanOutcome
	// Reason explains a rejected scan.
	Reason string `json:"reason,omitempty"`
	// SaveError is set when the autosave after the scan failed.
	SaveError string    `json:"save_error,omitempty"`
	Messages  []Message `json:"messages"`
}

// LoadRequest asks to load a source file.
type LoadRequest struct {
	Path string `json:"path"`
	// Mode is append, overwrite or cancel. Empty uses the configured default
	// when data is loaded already.
	Mode string `json:"mode,omitempty"`
}

// LoadResponse describes a finished load.
type LoadResponse struct {
	SourceID int       `json:"source_id"`
	Inserted int       `json:"inserted"`
	Rejected []string  `json:"rejected"`
	Messages []Message `json:"messages"`
}

// SnapshotLoadRequest names a save file in the save directory.
type SnapshotLoadRequest struct {
	Name string `json:"name"`
}

// SnapshotFile is one save file.
type SnapshotFile struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	Active  bool      `json:"active"`
}

// SaveResponse describes a save.
type SaveResponse struct {
	Path    string   `json:"path"`
	Rotated bool     `json:"rotated"`
	Pruned  []string `json:"pruned,omitempty"`
	// ArchiveError is set when the off-site copy failed.
	ArchiveError string `json:"archive_error,omitempty"`
}

// FoundRequest toggles the found flag of a known record.
type FoundRequest struct {
	Found bool `json:"found"`
}

// GroupsResponse holds the display groups.
type GroupsResponse struct {
	Groups [][]records.Record `json:"groups"`
}

// RowsResponse holds the display rows, header first.
type RowsResponse struct {
	Rows [][]string `json:"rows"`
}

// ScanEvent is one scan log entry.
type ScanEvent struct {
	Barcode   string    `json:"barcode"`
	Accepted  bool      `json:"accepted"`
	SaveFile  string    `json:"save_file"`
	ScannedAt time.Time `json:"scanned_at"`
}
