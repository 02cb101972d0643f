// Package chrome implements the render.DocumentRenderer contract with a
// headless Chrome instance driven over the DevTools protocol. The combined
// markup is staged as an HTML file next to the template assets so relative
// references resolve, printed to PDF, and written atomically to the output
// path.
package chrome

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/natefinch/atomic"

	"github.com/goliatone/go-invoicegen/pkg/render"
)

const rendererName = "chrome"

// Option configures the renderer before construction.
type Option func(*Renderer)

// WithExecPath points chromedp at a specific Chrome/Chromium binary instead
// of discovering one on PATH.
func WithExecPath(path string) Option {
	return func(r *Renderer) {
		r.execPath = strings.TrimSpace(path)
	}
}

// WithTimeout bounds a single Render call. Zero disables the bound and the
// caller's context governs alone.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = timeout
	}
}

// WithPrintBackground toggles rendering of CSS backgrounds in the PDF.
func WithPrintBackground(enabled bool) Option {
	return func(r *Renderer) {
		r.printBackground = enabled
	}
}

// Renderer prints HTML markup to PDF through headless Chrome.
type Renderer struct {
	execPath        string
	timeout         time.Duration
	printBackground bool
}

// Ensure the implementation satisfies the public interface.
var _ render.DocumentRenderer = (*Renderer)(nil)

// New constructs a Renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{printBackground: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Name identifies the renderer inside a registry.
func (r *Renderer) Name() string {
	return rendererName
}

// ContentType describes the produced artifact.
func (r *Renderer) ContentType() string {
	return "application/pdf"
}

// Render stages the markup on disk, prints it to PDF, and writes the
// artifact to doc.OutputPath. The staged file is removed on every path.
func (r *Renderer) Render(ctx context.Context, doc render.Document) error {
	if doc.Markup == "" {
		return errors.New("chrome: markup is empty")
	}
	if doc.OutputPath == "" {
		return errors.New("chrome: output path is required")
	}

	stagePath, cleanup, err := stageMarkup(doc)
	if err != nil {
		return err
	}
	defer cleanup()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	allocOpts := chromedp.DefaultExecAllocatorOptions[:]
	if r.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.execPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var pdf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate(fileURL(stagePath)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(r.printBackground).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("chrome: print to pdf: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(doc.OutputPath), 0o755); err != nil {
		return fmt.Errorf("chrome: create output dir: %w", err)
	}
	if err := atomic.WriteFile(doc.OutputPath, strings.NewReader(string(pdf))); err != nil {
		return fmt.Errorf("chrome: write artifact: %w", err)
	}
	return nil
}

// stageMarkup writes the markup (stylesheet injected) into the document's
// base dir so relative asset references keep working, falling back to a
// temp dir when no base dir is supplied.
func stageMarkup(doc render.Document) (string, func(), error) {
	dir := doc.BaseDir
	if dir == "" {
		dir = os.TempDir()
	}

	file, err := os.CreateTemp(dir, "invoicegen-*.html")
	if err != nil {
		return "", nil, fmt.Errorf("chrome: stage markup: %w", err)
	}
	path := file.Name()
	cleanup := func() { _ = os.Remove(path) }

	_, writeErr := file.WriteString(injectStylesheet(doc.Markup, doc.Stylesheet))
	closeErr := file.Close()
	if writeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("chrome: stage markup: %w", writeErr)
	}
	if closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("chrome: stage markup: %w", closeErr)
	}
	return path, cleanup, nil
}

// injectStylesheet places the style text into the markup's head when one
// exists, otherwise prepends a style block.
func injectStylesheet(markup, stylesheet string) string {
	if stylesheet == "" {
		return markup
	}
	block := "<style>\n" + stylesheet + "\n</style>"
	if idx := strings.Index(strings.ToLower(markup), "</head>"); idx >= 0 {
		return markup[:idx] + block + markup[idx:]
	}
	return block + "\n" + markup
}

func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}
