package orchestrator_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-invoicegen/pkg/invoice"
	"github.com/goliatone/go-invoicegen/pkg/orchestrator"
	"github.com/goliatone/go-invoicegen/pkg/records"
	"github.com/goliatone/go-invoicegen/pkg/render"
	"github.com/goliatone/go-invoicegen/pkg/testsupport"
)

// stubEncoder returns a deterministic reference per payload so tests can
// assert each fragment received its own code image.
type stubEncoder struct {
	payloads []string
}

func (s *stubEncoder) Encode(payload string) (string, error) {
	s.payloads = append(s.payloads, payload)
	return fmt.Sprintf("ref-%d", len(s.payloads)), nil
}

type captureRenderer struct {
	doc render.Document
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "application/pdf" }
func (c *captureRenderer) Render(_ context.Context, doc render.Document) error {
	c.doc = doc
	return nil
}

func batchDataset(t *testing.T) *records.Dataset {
	t.Helper()

	ds := records.MustNewDataset(records.SourceFromFileWithFormat("test.json", records.FormatJSON), []*records.Record{
		testsupport.RecordFromPairs(t, "invoice_id", "A1", "total", int64(10), "customer_name", "X"),
		testsupport.RecordFromPairs(t, "invoice_id", "A2", "total", int64(20), "customer", "Y"),
	})
	return &ds
}

func TestAssembleAllPaginatesFragments(t *testing.T) {
	encoder := &stubEncoder{}
	gen := orchestrator.New(orchestrator.WithImageEncoder(encoder))

	assembly, err := gen.Assemble(testsupport.Context(), orchestrator.Request{
		Dataset:   batchDataset(t),
		Template:  "{{invoice_id}} {{total}} {{qr_src}}",
		Selection: invoice.SelectAll(),
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	want := "A1 10 ref-1\n" + render.PageBreak + "\nA2 20 ref-2"
	if assembly.Markup != want {
		t.Fatalf("markup mismatch:\ngot:  %q\nwant: %q", assembly.Markup, want)
	}

	wantPayloads := []string{
		"invoice:A1;total:10;customer:X",
		"invoice:A2;total:20;customer:Y",
	}
	if diff := cmp.Diff(wantPayloads, encoder.payloads); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	if assembly.OutputName != orchestrator.BatchOutputName {
		t.Fatalf("output name = %q, want %q", assembly.OutputName, orchestrator.BatchOutputName)
	}
}

func TestAssembleSingleSelectionHasNoPageBreak(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithImageEncoder(&stubEncoder{}))

	assembly, err := gen.Assemble(testsupport.Context(), orchestrator.Request{
		Dataset:   batchDataset(t),
		Template:  "{{invoice_id}}",
		Selection: invoice.SelectOne("A2"),
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if strings.Contains(assembly.Markup, render.PageBreak) {
		t.Fatalf("single fragment contains a page break:\n%s", assembly.Markup)
	}
	if assembly.Markup != "A2" {
		t.Fatalf("markup = %q, want A2", assembly.Markup)
	}
	if assembly.OutputName != "invoice_A2.pdf" {
		t.Fatalf("output name = %q, want invoice_A2.pdf", assembly.OutputName)
	}
}

func TestAssembleMissingSelection(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithImageEncoder(&stubEncoder{}))

	_, err := gen.Assemble(testsupport.Context(), orchestrator.Request{
		Dataset:   batchDataset(t),
		Template:  "{{invoice_id}}",
		Selection: invoice.SelectOne("nope"),
	})
	var notFound *invoice.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestAssembleNoIdentifierAborts(t *testing.T) {
	ds := records.MustNewDataset(records.SourceFromFileWithFormat("test.json", records.FormatJSON), []*records.Record{
		testsupport.RecordFromPairs(t, "customer", "X"),
	})
	encoder := &stubEncoder{}
	gen := orchestrator.New(orchestrator.WithImageEncoder(encoder))

	_, err := gen.Assemble(testsupport.Context(), orchestrator.Request{
		Dataset:   &ds,
		Template:  "{{customer}}",
		Selection: invoice.SelectAll(),
	})
	if !errors.Is(err, invoice.ErrNoIdentifier) {
		t.Fatalf("err = %v, want ErrNoIdentifier", err)
	}
	if len(encoder.payloads) != 0 {
		t.Fatal("encoder was invoked before identifier resolution failed")
	}
}

func TestAssembleSanitizesValues(t *testing.T) {
	ds := records.MustNewDataset(records.SourceFromFileWithFormat("test.json", records.FormatJSON), []*records.Record{
		testsupport.RecordFromPairs(t, "invoice_id", "A1", "customer_name", `<script>alert(1)</script>X`),
	})
	gen := orchestrator.New(
		orchestrator.WithImageEncoder(&stubEncoder{}),
		orchestrator.WithSanitizer(bluemonday.StrictPolicy()),
	)

	assembly, err := gen.Assemble(testsupport.Context(), orchestrator.Request{
		Dataset:   &ds,
		Template:  "{{customer_name}}",
		Selection: invoice.SelectAll(),
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if strings.Contains(assembly.Markup, "<script>") {
		t.Fatalf("markup kept script markup: %q", assembly.Markup)
	}
	if !strings.Contains(assembly.Markup, "X") {
		t.Fatalf("markup lost the text content: %q", assembly.Markup)
	}
}

func TestGenerateHandsDocumentToRenderer(t *testing.T) {
	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	gen := orchestrator.New(
		orchestrator.WithImageEncoder(&stubEncoder{}),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("capture"),
		orchestrator.WithStylesheet("body { color: red; }"),
	)

	outputPath, err := gen.Generate(testsupport.Context(), orchestrator.Request{
		Dataset:   batchDataset(t),
		Template:  "{{invoice_id}}",
		Selection: invoice.SelectOne("A1"),
		OutputDir: "out",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasSuffix(outputPath, "invoice_A1.pdf") {
		t.Fatalf("output path = %q, want invoice_A1.pdf suffix", outputPath)
	}
	if capture.doc.OutputPath != outputPath {
		t.Fatalf("renderer output path = %q, want %q", capture.doc.OutputPath, outputPath)
	}
	if capture.doc.Stylesheet != "body { color: red; }" {
		t.Fatalf("stylesheet not forwarded: %q", capture.doc.Stylesheet)
	}
	if capture.doc.Markup != "A1" {
		t.Fatalf("markup = %q, want A1", capture.doc.Markup)
	}
}

func TestGenerateUnknownRenderer(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithImageEncoder(&stubEncoder{}))

	_, err := gen.Generate(testsupport.Context(), orchestrator.Request{
		Dataset:   batchDataset(t),
		Template:  "{{invoice_id}}",
		Selection: invoice.SelectAll(),
		Renderer:  "missing",
	})
	if err == nil || !strings.Contains(err.Error(), `renderer "missing"`) {
		t.Fatalf("err = %v, want unknown renderer error", err)
	}
}

func TestAssembleRequiresTemplate(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithImageEncoder(&stubEncoder{}))

	_, err := gen.Assemble(testsupport.Context(), orchestrator.Request{
		Dataset:   batchDataset(t),
		Selection: invoice.SelectAll(),
	})
	if err == nil || !strings.Contains(err.Error(), "template") {
		t.Fatalf("err = %v, want template requirement error", err)
	}
}

func TestAssembleReadsTemplateFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFixture(t, dir, "invoice.html", "id={{invoice_id}}")

	gen := orchestrator.New(orchestrator.WithImageEncoder(&stubEncoder{}))
	assembly, err := gen.Assemble(testsupport.Context(), orchestrator.Request{
		Dataset:      batchDataset(t),
		TemplatePath: path,
		Selection:    invoice.SelectOne("A1"),
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if assembly.Markup != "id=A1" {
		t.Fatalf("markup = %q, want id=A1", assembly.Markup)
	}
	if assembly.BaseDir != dir {
		t.Fatalf("base dir = %q, want %q", assembly.BaseDir, dir)
	}
}
