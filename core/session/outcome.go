package session

// Result classifies a scan.
type Result string

const (
	// ResultRejected means the barcode shape was refused.
	ResultRejected Result = "rejected"
	// ResultNoDataLoaded means nothing was loaded to scan against.
	ResultNoDataLoaded Result = "no_data_loaded"
	// ResultDuplicate means the record was already found before this scan.
	ResultDuplicate Result = "duplicate"
	// ResultNewlyFound means this scan found the record.
	ResultNewlyFound Result = "newly_found"
)

// RecordKind tells known records from unknown ones.
type RecordKind string

const (
	KindKnown   RecordKind = "known"
	KindUnknown RecordKind = "unknown"
)

// ScanOutcome is the result of handling one scan.
type ScanOutcome struct {
	Barcode string `json:"barcode"`
	Result  Result `json:"result"`
	// Kind is set for duplicate and newly found scans.
	Kind RecordKind `json:"kind,omitempty"`
	// Suppressed is true when the barcode is hidden and was not highlighted.
	Suppressed bool `json:"suppressed"`
	// ScanCount is the session scan counter after this scan.
	ScanCount int `json:"scan_count"`
	// Reason explains a rejected scan.
	Reason error `json:"-"`
	// Save describes the autosave triggered by this scan, if any.
	Save *SaveReport `json:"save,omitempty"`
}

// SaveReport describes one save attempt.
type SaveReport struct {
	Path    string   `json:"path"`
	Rotated bool     `json:"rotated"`
	Pruned  []string `json:"pruned,omitempty"`
	// Err is the save failure; the scan itself still succeeded.
	Err error `json:"-"`
	// ArchiveErr is set when the off-site copy of a rotated file failed.
	ArchiveErr error `json:"-"`
}
