// Package records holds the in-memory record set of a stocktake.
//
// A Store owns every Record of the current stocktake together with the
// source registry that maps integer source ids to the files the records were
// loaded from. Barcodes are unique across the store at all times.
//
// # Lifecycle
//
// Records enter the store in two ways:
//   - Load: bulk insertion of rows read from a source file. Rows whose barcode
//     is already present are rejected and reported together once the batch is
//     done; every other row of the batch stays inserted.
//   - InsertUnknown: a barcode that was scanned but never loaded. Such records
//     are created already found.
//
// Records are then toggled found/not found by scans, and unknown records may be
// deleted. Reset drops records and registry together.
//
// # Snapshots
//
// Snapshot and Restore convert the store to and from the JSON save format:
//
//	{
//	  "reelData": [{"barcode": "...", "weight": 1, "width": 2, "material": "...",
//	                "found": false, "unknownRecord": false, "fileID": 0}],
//	  "fileID": {"0": "path/to/file.xlsx"}
//	}
//
// Restore is atomic: the whole document is validated before any state changes.
package records
