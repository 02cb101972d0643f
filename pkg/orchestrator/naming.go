package orchestrator

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-invoicegen/pkg/invoice"
)

// BatchOutputName is the fixed artifact name for whole-batch runs.
const BatchOutputName = "invoice_all.pdf"

// \w would be ASCII-only here; identifiers can be Cyrillic, so the safe
// class is spelled out with Unicode categories.
var unsafeNameRuns = regexp.MustCompile(`[^\p{L}\p{N}_.\-]+`)

// SanitizeName collapses every run of characters outside word, dot, and
// hyphen into a single underscore so identifier values become safe file
// name components. An identifier that sanitizes to nothing falls back to
// "invoice".
func SanitizeName(value string) string {
	clean := unsafeNameRuns.ReplaceAllString(strings.TrimSpace(value), "_")
	clean = strings.Trim(clean, "_")
	if clean == "" {
		return "invoice"
	}
	return clean
}

// OutputName derives the artifact file name for a selection.
func OutputName(sel invoice.Selection) string {
	if sel.All() {
		return BatchOutputName
	}
	return "invoice_" + SanitizeName(sel.ID()) + ".pdf"
}
