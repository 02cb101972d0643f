package invoice

import (
	"fmt"

	"github.com/goliatone/go-invoicegen/pkg/records"
)

// NotFoundError reports that a selected identifier is absent from the
// batch index.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("invoice: %q not found in batch", e.ID)
}

// Selection names which invoices a run should render: the whole batch or a
// single identifier.
type Selection struct {
	all bool
	id  string
}

// SelectAll renders every indexed invoice in first-seen order.
func SelectAll() Selection {
	return Selection{all: true}
}

// SelectOne renders exactly one invoice by its stringified identifier.
func SelectOne(id string) Selection {
	return Selection{id: id}
}

// All reports whether the selection covers the whole batch.
func (s Selection) All() bool {
	return s.all
}

// ID returns the selected identifier; empty for batch selections.
func (s Selection) ID() string {
	return s.id
}

// Resolve expands the selection against an index. Batch selections yield
// every record in index order; single selections yield one record or a
// NotFoundError.
func (s Selection) Resolve(ix *Index) ([]*records.Record, error) {
	if s.all {
		recs := make([]*records.Record, 0, ix.Len())
		for _, id := range ix.IDs() {
			rec, _ := ix.Lookup(id)
			recs = append(recs, rec)
		}
		return recs, nil
	}

	rec, ok := ix.Lookup(s.id)
	if !ok {
		return nil, &NotFoundError{ID: s.id}
	}
	return []*records.Record{rec}, nil
}
