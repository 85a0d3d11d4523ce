// Package parsers provides parsers for importing campaign elements from
// external files.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawElement represents a campaign element parsed from an external source
// before validation.
type RawElement struct {
	ID    string `json:"id,omitempty"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	// LineNum is the line number in the source file (set by the parser).
	LineNum int `json:"-"`
}

// Parser defines the interface for parsing elements from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawElement, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
