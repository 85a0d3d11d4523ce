package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses campaign elements from a JSON array.
type JSONParser struct{}

// Parse reads a JSON array of elements from the reader.
func (p *JSONParser) Parse(r io.Reader) ([]RawElement, error) {
	var elements []RawElement
	if err := json.NewDecoder(r).Decode(&elements); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return elements, nil
}
