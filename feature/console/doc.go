// Package console runs a stocktake at a terminal.
//
// A keyboard-wedge scanner types each barcode followed by Enter, so every
// input line is a scan. Lines starting with ':' are operator commands
// (:load, :save, :hide, :report, ...; see :help). Prompts such as "accept
// this short barcode?" read the next line from the same input.
package console
