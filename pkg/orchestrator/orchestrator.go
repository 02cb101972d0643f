package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	internalLoader "github.com/goliatone/go-invoicegen/internal/loader"
	"github.com/goliatone/go-invoicegen/pkg/encoders/qr"
	"github.com/goliatone/go-invoicegen/pkg/invoice"
	"github.com/goliatone/go-invoicegen/pkg/records"
	"github.com/goliatone/go-invoicegen/pkg/render"
	"github.com/goliatone/go-invoicegen/pkg/renderers/chrome"
)

const defaultRendererName = "chrome"

// QRSourceKey is the reserved render-context key the generated scannable
// code reference is injected under before template substitution.
const QRSourceKey = "qr_src"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom record loader.
func WithLoader(loader records.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithImageEncoder injects the scannable-code image collaborator.
func WithImageEncoder(encoder render.ImageEncoder) Option {
	return func(o *Orchestrator) {
		o.encoder = encoder
	}
}

// WithEngine injects a custom template engine.
func WithEngine(engine *render.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithStylesheet supplies pre-built auxiliary style text handed to the
// document renderer verbatim.
func WithStylesheet(stylesheet string) Option {
	return func(o *Orchestrator) {
		o.stylesheet = stylesheet
		o.stylesheetSet = true
	}
}

// WithFontPath builds the stylesheet around an embedded font file. Pass an
// empty path to emit only the fallback family chain.
func WithFontPath(path string) Option {
	return func(o *Orchestrator) {
		o.stylesheet = render.Stylesheet(path)
		o.stylesheetSet = true
	}
}

// WithSanitizer scrubs string field values through a bluemonday policy
// before they enter the render context. Record data is substituted straight
// into HTML markup, so callers handling untrusted input can strip markup
// from values without touching the template itself.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *Orchestrator) {
		o.sanitizer = policy
	}
}

// Orchestrator coordinates the full pipeline from data source to rendered
// artifact. It applies sensible defaults (chrome renderer, QR image
// encoder, fallback stylesheet) while remaining open to dependency
// injection for advanced callers.
type Orchestrator struct {
	loader          records.Loader
	registry        *render.Registry
	defaultRenderer string
	encoder         render.ImageEncoder
	engine          *render.Engine
	sanitizer       *bluemonday.Policy
	stylesheet      string
	stylesheetSet   bool
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render invoices from a data and
// template pair.
type Request struct {
	// Source identifies where the record data lives. Optional when Dataset
	// is supplied.
	Source records.Source

	// Dataset allows callers to bypass the loader when they already have
	// parsed records.
	Dataset *records.Dataset

	// Template is the literal template text. Optional when TemplatePath is
	// supplied.
	Template string

	// TemplatePath reads the template from disk; its directory becomes the
	// base path for relative-asset resolution.
	TemplatePath string

	// Selection names which invoices to render. The zero value selects a
	// single empty identifier, so callers should use invoice.SelectAll or
	// invoice.SelectOne explicitly.
	Selection invoice.Selection

	// Renderer names the document renderer to use. If empty, the
	// orchestrator falls back to the configured default renderer.
	Renderer string

	// OutputDir is where the artifact is written under the selection's
	// derived file name. Ignored when OutputPath is set.
	OutputDir string

	// OutputPath overrides the derived output location entirely.
	OutputPath string
}

// Assembly is the combined markup for a selection, plus the metadata the
// rendering stage needs.
type Assembly struct {
	// Markup is the concatenated rendered fragments with page-break
	// markers between them.
	Markup string

	// Index is the batch index the selection resolved against.
	Index *invoice.Index

	// BaseDir resolves relative assets inside the markup; the template's
	// directory when the template came from disk.
	BaseDir string

	// OutputName is the artifact file name derived from the selection.
	OutputName string
}

// Assemble executes the loader → index → selection → template sequence and
// returns the combined markup without invoking the document renderer.
func (o *Orchestrator) Assemble(ctx context.Context, req Request) (Assembly, error) {
	if ctx == nil {
		return Assembly{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Assembly{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Assembly{}, err
	}

	dataset, err := o.resolveDataset(ctx, req)
	if err != nil {
		return Assembly{}, err
	}

	index, err := invoice.BuildIndex(dataset.Records())
	if err != nil {
		return Assembly{}, err
	}

	selected, err := req.Selection.Resolve(index)
	if err != nil {
		return Assembly{}, err
	}

	template, baseDir, err := o.resolveTemplate(req)
	if err != nil {
		return Assembly{}, err
	}

	fragments := make([]string, 0, len(selected))
	for i, rec := range selected {
		fragment, err := o.renderFragment(template, rec, index.Key())
		if err != nil {
			return Assembly{}, err
		}
		if i < len(selected)-1 {
			fragment += "\n" + render.PageBreak
		}
		fragments = append(fragments, fragment)
	}

	return Assembly{
		Markup:     strings.Join(fragments, "\n"),
		Index:      index,
		BaseDir:    baseDir,
		OutputName: OutputName(req.Selection),
	}, nil
}

// Generate assembles the selection and hands the result to the requested
// document renderer. It returns the artifact's output path.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (string, error) {
	assembly, err := o.Assemble(ctx, req)
	if err != nil {
		return "", err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return "", err
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(req.OutputDir, assembly.OutputName)
	}

	doc := render.Document{
		Markup:     assembly.Markup,
		Stylesheet: o.stylesheet,
		BaseDir:    assembly.BaseDir,
		OutputPath: outputPath,
	}
	if err := renderer.Render(ctx, doc); err != nil {
		return "", fmt.Errorf("orchestrator: render document: %w", err)
	}
	return outputPath, nil
}

// renderFragment builds the render context for one record, injects the
// scannable-code reference, and substitutes the template.
func (o *Orchestrator) renderFragment(template string, rec *records.Record, identifierKey string) (string, error) {
	renderCtx := render.ContextFromRecord(rec)
	if o.sanitizer != nil {
		for key, value := range renderCtx {
			if text, ok := value.(string); ok {
				renderCtx[key] = o.sanitizer.Sanitize(text)
			}
		}
	}

	reference, err := o.encoder.Encode(CodePayload(rec, identifierKey))
	if err != nil {
		return "", fmt.Errorf("orchestrator: encode code image: %w", err)
	}
	renderCtx[QRSourceKey] = reference

	return o.engine.Render(template, renderCtx), nil
}

func (o *Orchestrator) resolveDataset(ctx context.Context, req Request) (records.Dataset, error) {
	if req.Dataset != nil {
		return *req.Dataset, nil
	}
	if req.Source == nil {
		return records.Dataset{}, errors.New("orchestrator: source or dataset is required")
	}
	dataset, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return records.Dataset{}, fmt.Errorf("orchestrator: load dataset: %w", err)
	}
	return dataset, nil
}

func (o *Orchestrator) resolveTemplate(req Request) (string, string, error) {
	if req.Template != "" {
		return req.Template, "", nil
	}
	if req.TemplatePath == "" {
		return "", "", errors.New("orchestrator: template or template path is required")
	}
	data, err := os.ReadFile(req.TemplatePath)
	if err != nil {
		return "", "", fmt.Errorf("orchestrator: read template: %w", err)
	}
	return string(data), filepath.Dir(req.TemplatePath), nil
}

func (o *Orchestrator) rendererFor(name string) (render.DocumentRenderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(records.NewLoaderOptions())
	}
	if o.engine == nil {
		o.engine = render.NewEngine()
	}
	if o.encoder == nil {
		o.encoder = qr.New()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := chrome.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if !o.stylesheetSet {
		o.stylesheet = render.Stylesheet("")
	}

	o.defaultsApplied = true
}
