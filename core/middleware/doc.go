// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation for the scanner and operator endpoints.
//   - rayid: a unique request id (RayID) per request, stored in the context
//     and echoed in the X-Ray-ID response header for tracing.
//
// RayID must be registered first so every later log line carries the id.
package middleware
