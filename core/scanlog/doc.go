// Package scanlog keeps an append-only record of every raw scan.
//
// Each scan is stored as a row in the scan_events table, valid or not, with
// the time it was received. The log is independent of the JSON snapshots:
// when a stocktake is restored from a snapshot, the scans recorded after the
// snapshot was written can be replayed on top of it. Every row carries the
// base name of the save file the session was writing to, so a replay only
// picks up scans that belong to the restored stocktake.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	log, err := scanlog.New(db, logger)
//	err = log.Append(ctx, session.ScanEntry{Barcode: "ABC1234567", Accepted: true, ScannedAt: time.Now()})
//	entries, err := log.Since(ctx, filepath.Base(snapshotPath), snapshotModTime)
package scanlog
