package invoice

import "github.com/goliatone/go-invoicegen/pkg/records"

// CustomerName returns the customer display name for a record, checking
// `customer_name` then `customer` and defaulting to empty. Used both for
// the scannable-code payload and for interactive invoice listings.
func CustomerName(rec *records.Record) string {
	if name := rec.StringField("customer_name"); name != "" {
		return name
	}
	return rec.StringField("customer")
}
