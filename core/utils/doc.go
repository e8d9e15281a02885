// Package utils converts loosely typed values (spreadsheet cells, query
// parameters) into Go types.
package utils
