package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVParser parses campaign elements from CSV with a header row.
// Required columns: kind, name. Optional: id, title.
type CSVParser struct{}

// Parse reads CSV rows from the reader.
func (p *CSVParser) Parse(r io.Reader) ([]RawElement, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty CSV file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"kind", "name"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required CSV column: %s", required)
		}
	}

	var elements []RawElement
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		elements = append(elements, RawElement{
			ID:      field(record, columns, "id"),
			Kind:    field(record, columns, "kind"),
			Name:    field(record, columns, "name"),
			Title:   field(record, columns, "title"),
			LineNum: line,
		})
	}

	return elements, nil
}

// field returns the named column's value, or "" when absent.
func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
