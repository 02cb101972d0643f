// Package invoicegen renders business records (invoices) into paginated
// PDF documents by substituting record fields into an HTML template. The
// root package exposes convenience entry points; the pipeline stages live
// under pkg/ and accept dependency injection for advanced callers.
package invoicegen

import (
	"context"

	internalLoader "github.com/goliatone/go-invoicegen/internal/loader"
	"github.com/goliatone/go-invoicegen/pkg/invoice"
	"github.com/goliatone/go-invoicegen/pkg/orchestrator"
	"github.com/goliatone/go-invoicegen/pkg/records"
)

// Request describes one generation run; alias exported via the root package
// for convenience.
type Request = orchestrator.Request

// Assembly is the combined markup plus rendering metadata for a selection.
type Assembly = orchestrator.Assembly

// Selection names which invoices a run should render.
type Selection = invoice.Selection

// SelectAll renders every invoice in the batch.
func SelectAll() Selection {
	return invoice.SelectAll()
}

// SelectOne renders a single invoice by identifier.
func SelectOne(id string) Selection {
	return invoice.SelectOne(id)
}

// NewLoader constructs a record loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options records.LoaderOptions) records.Loader {
	return internalLoader.New(options)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module for callers that want a single import.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GeneratePDF loads the data source, assembles the selected invoices
// against the template, and renders the combined markup with the default
// chrome renderer. It returns the artifact's output path and is the
// simplest entry point for callers that just want a PDF.
func GeneratePDF(ctx context.Context, req Request, options ...orchestrator.Option) (string, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, req)
}

// AssembleMarkup runs the pipeline up to (and excluding) document
// rendering, returning the combined markup for callers that rasterize
// elsewhere.
func AssembleMarkup(ctx context.Context, req Request, options ...orchestrator.Option) (Assembly, error) {
	gen := orchestrator.New(options...)
	return gen.Assemble(ctx, req)
}
