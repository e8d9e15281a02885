// Package logger builds the zap logger used across the application.
//
// Debug level selects zap's development configuration (ISO8601 timestamps,
// stack traces on warnings); other levels use the production configuration.
// Format picks the json or colored console encoder. Output goes to stderr and,
// when File is set, to that file as well.
//
// WithRayID attaches the request's ray id to a logger inside Fiber handlers,
// so every line of one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Scan failed", zap.Error(err))
package logger
