package invoicegen

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// EmbeddedTemplates exposes the built-in invoice template so callers can
// render without providing their own markup.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// DefaultTemplate returns the built-in invoice template text.
func DefaultTemplate() (string, error) {
	data, err := fs.ReadFile(EmbeddedTemplates(), "invoice.html")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
