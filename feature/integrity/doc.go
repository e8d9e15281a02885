// Package integrity checks the infrastructure a stocktake depends on.
//
// # Checks Provided
//
//   - SaveDir: The local save directory exists, is writable and holds only save files that restore cleanly.
//   - Schema: The scan log tables match the GORM models (columns, types).
//   - Structure: The archive bucket and its prefix folder exist in object storage.
//
// Every check can fix what it finds: the save directory is created and corrupt
// files are renamed with a .corrupt suffix, the schema is migrated, and the
// bucket and folder are created.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks (supports ?fix=true).
//   - GET /integrity/savedir : Runs the save directory check (supports ?fix=true).
//   - GET /integrity/schema : Runs the scan log schema check (supports ?fix=true).
//   - GET /integrity/structure : Runs the archive structure check (supports ?fix=true).
package integrity
