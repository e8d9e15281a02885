// Package loader registers and loads HTTP features.
//
// A feature is a self-contained slice of the API: it owns its service, its
// handler and its routes, and reports through IsEnabled whether its
// collaborators are configured. The start command registers every feature
// with a Manager; LoadAll then mounts the enabled ones in registration order
// and skips the rest with a log line.
//
//	m := loader.NewManager(logger)
//	m.Register(stocktake.NewFeature(svc))
//	m.Register(integrity.NewFeature(client, cfg.Storage, db, saveDir, logger))
//	if err := m.LoadAll(app); err != nil { ... }
package loader
