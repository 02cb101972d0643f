// Package workspace handles the one-time process setup outside the core
// pipeline: the directory layout, data/template discovery, and optional
// font provisioning. The core receives already-resolved paths and never
// performs this setup itself.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Layout names the directories a run works with, all rooted at BaseDir.
type Layout struct {
	BaseDir     string
	DataDir     string
	TemplateDir string
	OutputDir   string
	FontDir     string
}

// Resolve derives the standard layout under a base directory.
func Resolve(baseDir string) Layout {
	return Layout{
		BaseDir:     baseDir,
		DataDir:     filepath.Join(baseDir, "data"),
		TemplateDir: filepath.Join(baseDir, "templates"),
		OutputDir:   filepath.Join(baseDir, "output"),
		FontDir:     filepath.Join(baseDir, "fonts"),
	}
}

// Ensure creates every layout directory that does not exist yet.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.DataDir, l.TemplateDir, l.OutputDir, l.FontDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("workspace: create %s: %w", dir, err)
		}
	}
	return nil
}

var dataPatterns = []string{"*.csv", "*.json", "*.yaml", "*.yml"}

// DataFiles lists the data files under DataDir, sorted per pattern the way
// they are presented for selection.
func (l Layout) DataFiles() ([]string, error) {
	var files []string
	for _, pattern := range dataPatterns {
		matches, err := filepath.Glob(filepath.Join(l.DataDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("workspace: list data files: %w", err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}

// TemplateFiles lists the HTML templates under TemplateDir, sorted.
func (l Layout) TemplateFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(l.TemplateDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("workspace: list templates: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}
