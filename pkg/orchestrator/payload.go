package orchestrator

import (
	"fmt"

	"github.com/goliatone/go-invoicegen/pkg/invoice"
	"github.com/goliatone/go-invoicegen/pkg/records"
)

// CodePayload builds the scannable-code payload for one record from the
// identifier value, the total, and the customer name. Missing fields render
// empty; the payload shape is stable so downstream scanners can parse it.
func CodePayload(rec *records.Record, identifierKey string) string {
	return fmt.Sprintf("invoice:%s;total:%s;customer:%s",
		rec.StringField(identifierKey),
		rec.StringField("total"),
		invoice.CustomerName(rec),
	)
}
