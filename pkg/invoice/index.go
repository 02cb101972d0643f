// Package invoice groups records by their inferred identifier field and
// models batch selection. Identifier discovery is an intentionally loose
// heuristic: the first record containing any candidate name decides the
// literal key for the whole batch, and the candidate list carries no
// priority between its entries. That ambiguity is isolated here behind a
// single pure function so it stays testable.
package invoice

import (
	"errors"
	"strings"

	"github.com/goliatone/go-invoicegen/pkg/records"
)

// ErrNoIdentifier reports that no record in the batch contains any
// candidate identifier field. It aborts the run before any rendering.
var ErrNoIdentifier = errors.New("invoice: no identifier field found in records")

// candidateKeys are matched case-insensitively against record field names.
var candidateKeys = []string{"invoice_id", "invoiceid", "invoice", "id"}

// FindIdentifierKey scans records in input order and returns the literal
// field name of the first candidate match. The returned key keeps the
// record's own casing; subsequent lookups use it verbatim.
func FindIdentifierKey(recs []*records.Record) (string, bool) {
	for _, rec := range recs {
		for _, key := range rec.Keys() {
			lowered := strings.ToLower(key)
			for _, candidate := range candidateKeys {
				if lowered == candidate {
					return key, true
				}
			}
		}
	}
	return "", false
}

// Index maps stringified identifier values to their owning records,
// preserving first-seen order. Identifier collisions are last-write-wins:
// the later record replaces the value while the id keeps its original
// position.
type Index struct {
	key  string
	ids  []string
	byID map[string]*records.Record
}

// BuildIndex discovers the identifier key and indexes the batch. Records
// lacking the chosen key are silently excluded; that is a data condition,
// not an error. ErrNoIdentifier is returned when no record carries any
// candidate field.
func BuildIndex(recs []*records.Record) (*Index, error) {
	key, ok := FindIdentifierKey(recs)
	if !ok {
		return nil, ErrNoIdentifier
	}

	ix := &Index{key: key, byID: make(map[string]*records.Record)}
	for _, rec := range recs {
		value, ok := rec.Get(key)
		if !ok {
			continue
		}
		id := records.FormatValue(value)
		if _, seen := ix.byID[id]; !seen {
			ix.ids = append(ix.ids, id)
		}
		ix.byID[id] = rec
	}
	return ix, nil
}

// Key returns the literal identifier field name chosen for the batch.
func (ix *Index) Key() string {
	return ix.key
}

// IDs returns the stringified identifier values in first-seen order.
func (ix *Index) IDs() []string {
	return append([]string(nil), ix.ids...)
}

// Lookup returns the record owning the identifier value.
func (ix *Index) Lookup(id string) (*records.Record, bool) {
	rec, ok := ix.byID[id]
	return rec, ok
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.ids)
}
