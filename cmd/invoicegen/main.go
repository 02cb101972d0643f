// Command invoicegen is the interactive front-end: it walks the user
// through picking a data file, a template, and an invoice, then renders the
// selection to PDF and optionally opens the artifact.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"runtime"

	invoicegen "github.com/goliatone/go-invoicegen"
	"github.com/goliatone/go-invoicegen/internal/tui"
	"github.com/goliatone/go-invoicegen/internal/workspace"
	"github.com/goliatone/go-invoicegen/pkg/invoice"
	"github.com/goliatone/go-invoicegen/pkg/orchestrator"
	"github.com/goliatone/go-invoicegen/pkg/records"
)

func main() {
	baseDir := flag.String("base-dir", ".", "workspace root holding data/, templates/, output/, fonts/")
	flag.Parse()

	ctx := context.Background()
	driver := tui.NewDriver()

	if err := run(ctx, driver, *baseDir); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return
		}
		log.Fatalf("invoicegen: %v", err)
	}
}

func run(ctx context.Context, driver tui.PromptDriver, baseDir string) error {
	layout := workspace.Resolve(baseDir)
	if err := layout.Ensure(); err != nil {
		return err
	}

	fontPath, err := workspace.NewFontFetcher(nil).Ensure(ctx, layout.FontDir)
	if err != nil {
		log.Printf("font unavailable, falling back to system fonts: %v", err)
		fontPath = ""
	}

	dataPath, err := chooseDataFile(ctx, driver, layout)
	if err != nil {
		return err
	}

	loader := invoicegen.NewLoader(records.NewLoaderOptions())
	dataset, err := loader.Load(ctx, records.SourceFromFile(dataPath))
	if err != nil {
		return err
	}

	index, err := invoice.BuildIndex(dataset.Records())
	if err != nil {
		if errors.Is(err, invoice.ErrNoIdentifier) {
			return fmt.Errorf("no invoice id field found in %s", dataPath)
		}
		return err
	}

	templatePath, templateText, err := chooseTemplate(ctx, driver, layout)
	if err != nil {
		return err
	}

	selection, err := chooseSelection(ctx, driver, index)
	if err != nil {
		return err
	}

	gen := invoicegen.NewOrchestrator(orchestrator.WithFontPath(fontPath))
	outputPath, err := gen.Generate(ctx, invoicegen.Request{
		Dataset:      &dataset,
		Template:     templateText,
		TemplatePath: templatePath,
		Selection:    selection,
		OutputDir:    layout.OutputDir,
	})
	if err != nil {
		return err
	}

	if err := driver.Info(ctx, "PDF saved: "+outputPath); err != nil {
		return err
	}

	open, err := driver.Confirm(ctx, tui.ConfirmConfig{Message: "Open the PDF now?", Default: true})
	if err != nil {
		return err
	}
	if open {
		if err := openArtifact(outputPath); err != nil {
			log.Printf("could not open the file automatically: %v", err)
		}
	}
	return nil
}

func chooseDataFile(ctx context.Context, driver tui.PromptDriver, layout workspace.Layout) (string, error) {
	files, err := layout.DataFiles()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no data files found; add CSV/JSON/YAML to %s", layout.DataDir)
	}

	options := make([]string, len(files))
	for i, file := range files {
		options[i] = filepath.Base(file)
	}
	idx, err := driver.Select(ctx, tui.SelectConfig{Message: "Data file:", Options: options})
	if err != nil {
		return "", err
	}
	return files[idx], nil
}

// chooseTemplate returns either a disk template path or, when the template
// directory is empty, the embedded default as literal text.
func chooseTemplate(ctx context.Context, driver tui.PromptDriver, layout workspace.Layout) (string, string, error) {
	files, err := layout.TemplateFiles()
	if err != nil {
		return "", "", err
	}
	if len(files) == 0 {
		useBuiltin, err := driver.Confirm(ctx, tui.ConfirmConfig{
			Message: "No templates found. Use the built-in invoice template?",
			Default: true,
		})
		if err != nil {
			return "", "", err
		}
		if !useBuiltin {
			return "", "", fmt.Errorf("no templates found; add .html files to %s", layout.TemplateDir)
		}
		text, err := invoicegen.DefaultTemplate()
		if err != nil {
			return "", "", err
		}
		return "", text, nil
	}

	options := make([]string, len(files))
	for i, file := range files {
		options[i] = filepath.Base(file)
	}
	idx, err := driver.Select(ctx, tui.SelectConfig{Message: "Template:", Options: options})
	if err != nil {
		return "", "", err
	}
	return files[idx], "", nil
}

func chooseSelection(ctx context.Context, driver tui.PromptDriver, index *invoice.Index) (invoicegen.Selection, error) {
	ids := index.IDs()
	options := make([]string, 0, len(ids)+1)
	options = append(options, "All")
	for _, id := range ids {
		label := id
		if rec, ok := index.Lookup(id); ok {
			if name := invoice.CustomerName(rec); name != "" {
				label = id + " - " + name
			}
		}
		options = append(options, label)
	}

	idx, err := driver.Select(ctx, tui.SelectConfig{Message: "Invoice:", Options: options, PageSize: 12})
	if err != nil {
		return invoicegen.Selection{}, err
	}
	if idx == 0 {
		return invoicegen.SelectAll(), nil
	}
	return invoicegen.SelectOne(ids[idx-1]), nil
}

// openArtifact asks the OS to open the generated file. Best effort; the
// artifact is already on disk when this runs.
func openArtifact(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
