// Package database opens the scan log database and inspects its schema.
//
// It wraps GORM so the rest of the application only deals with a configured
// *gorm.DB. SQLite is the default for a single operator workstation; MySQL is
// supported when scans should land on a shared server.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for both dialects. The
// integrity check uses it to verify the scan log table before a stocktake
// relies on it for recovery.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Scan log unavailable", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "scan_events")
package database
