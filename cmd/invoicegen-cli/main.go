// Command invoicegen-cli is the non-interactive front-end for scripting:
// every input is a flag and the run fails loudly instead of prompting.
package main

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"

	invoicegen "github.com/goliatone/go-invoicegen"
	"github.com/goliatone/go-invoicegen/internal/workspace"
	"github.com/goliatone/go-invoicegen/pkg/orchestrator"
	"github.com/goliatone/go-invoicegen/pkg/records"
)

func main() {
	var (
		dataFlag     = flag.String("data", "", "path to the CSV/JSON/YAML data file (required)")
		templateFlag = flag.String("template", "", "path to the HTML template (embedded default when empty)")
		invoiceFlag  = flag.String("invoice", "", "invoice id to render (all invoices when empty)")
		outputFlag   = flag.String("output-dir", "output", "directory the PDF is written to")
		rendererFlag = flag.String("renderer", "", "document renderer name (registry default when empty)")
		fontFlag     = flag.String("font-dir", "", "directory holding DejaVuSans.ttf; font download is attempted when set")
		openFlag     = flag.Bool("open", false, "open the PDF after generation")
		timeoutFlag  = flag.Duration("timeout", 2*time.Minute, "generation timeout")
	)
	flag.Parse()

	if *dataFlag == "" {
		log.Fatal("--data is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	fontPath := ""
	if *fontFlag != "" {
		path, err := workspace.NewFontFetcher(nil).Ensure(ctx, *fontFlag)
		if err != nil {
			log.Printf("font unavailable, falling back to system fonts: %v", err)
		} else {
			fontPath = path
		}
	}

	selection := invoicegen.SelectAll()
	if *invoiceFlag != "" {
		selection = invoicegen.SelectOne(*invoiceFlag)
	}

	req := invoicegen.Request{
		Source:       records.SourceFromFile(*dataFlag),
		TemplatePath: *templateFlag,
		Selection:    selection,
		Renderer:     *rendererFlag,
		OutputDir:    *outputFlag,
	}
	if *templateFlag == "" {
		text, err := invoicegen.DefaultTemplate()
		if err != nil {
			log.Fatalf("load embedded template: %v", err)
		}
		req.Template = text
	}

	outputPath, err := invoicegen.GeneratePDF(ctx, req, orchestrator.WithFontPath(fontPath))
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	fmt.Println("PDF saved:", outputPath)

	if *openFlag {
		if err := openArtifact(outputPath); err != nil {
			log.Printf("could not open the file automatically: %v", err)
		}
	}
}

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
