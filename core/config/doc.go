// Package config loads the stocktake configuration.
//
// Values come from environment variables, optionally seeded from a .env file
// in the working directory. Every field declares its key with a mapstructure
// tag and its fallback with a default tag, so the full set of keys is known to
// Viper before the environment is read.
//
// # Sections
//
//   - Stocktake: save directory, autosave and retention counts, barcode length
//   - Sources: spreadsheet column layout and Google Sheets credentials
//   - Server: HTTP port and API key
//   - Storage: S3/MinIO archive bucket
//   - Scheduler: archive schedule
//   - Database: scan log connection
//   - Log: logging level and format
//
// LoadConfig validates the sections with rules of their own (stocktake,
// scheduler, database) and reports every problem at once.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Stocktake.SaveDir)
package config
