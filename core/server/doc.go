// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app itself; this package only defines
// the settings it reads: listen port, API key and shutdown bound.
package server
