package render

import "context"

// Document carries everything a renderer needs to produce the output
// artifact. The core assembles it and does not inspect the result.
type Document struct {
	// Markup is the combined rendered fragments, page-break markers
	// included.
	Markup string

	// Stylesheet is auxiliary style text applied alongside the markup.
	Stylesheet string

	// BaseDir resolves relative asset references inside the markup,
	// typically the template's directory.
	BaseDir string

	// OutputPath is where the artifact should be written.
	OutputPath string
}

// DocumentRenderer converts combined markup into a document artifact on
// disk. Implementations are blocking calls with no timeout of their own;
// cancellation arrives through the context.
type DocumentRenderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc Document) error
}

// ImageEncoder turns an arbitrary string payload into an embeddable image
// reference, e.g. an inline-encoded PNG data URI. Treated as a pure
// function with no side effects.
type ImageEncoder interface {
	Encode(payload string) (string, error)
}

// PageBreak is the in-markup directive instructing the renderer to start a
// new page. It is appended after every fragment except the last.
const PageBreak = `<div style="page-break-after: always;"></div>`
