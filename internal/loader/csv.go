package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goliatone/go-invoicegen/pkg/records"
)

// parseCSV turns a delimited-text payload into records: the first row is
// the header, each following row becomes one Record with header names as
// field names. Cell scalars keep their inferred type so totals and ids
// survive stringification the way the source wrote them.
func parseCSV(location string, data []byte) ([]*records.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loader: read csv header %q: %w", location, err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	var recs []*records.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loader: read csv row %q: %w", location, err)
		}

		rec := records.NewRecord()
		for i, name := range header {
			if i >= len(row) {
				break
			}
			rec.Set(name, inferScalar(row[i]))
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// inferScalar parses a cell into int64, float64, or bool when the text is
// unambiguous, otherwise keeps the raw string. Empty cells stay empty
// strings so substitution degrades to blank output.
func inferScalar(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return ""
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}
	return trimmed
}
