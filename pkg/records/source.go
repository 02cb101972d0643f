package records

import (
	"path/filepath"
	"strings"
)

// Source identifies where a data file originated so the loader can operate
// on disk paths or fs.FS entries without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
	Format() Format
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

// Format names the input file format the loader should parse.
type Format string

const (
	// FormatCSV is the tabular kind: header row plus one Record per row.
	FormatCSV Format = "csv"
	// FormatJSON is the structured-object kind.
	FormatJSON Format = "json"
	// FormatYAML is the structured-object kind with YAML syntax.
	FormatYAML Format = "yaml"
	// FormatUnknown means the format could not be inferred; loading fails.
	FormatUnknown Format = ""
)

// DetectFormat infers the format from a path's extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

type fileSource struct {
	path   string
	format Format
}

func (s fileSource) Kind() SourceKind { return SourceKindFile }
func (s fileSource) Location() string { return s.path }
func (s fileSource) Format() Format   { return s.format }

// SourceFromFile returns a Source pointing to a file path, inferring the
// format from the extension.
func SourceFromFile(path string) Source {
	clean := filepath.Clean(path)
	return fileSource{path: clean, format: DetectFormat(clean)}
}

// SourceFromFileWithFormat returns a file Source with an explicit format,
// for inputs whose extension does not match their contents.
func SourceFromFileWithFormat(path string, format Format) Source {
	return fileSource{path: filepath.Clean(path), format: format}
}

type fsSource struct {
	name   string
	format Format
}

func (s fsSource) Kind() SourceKind { return SourceKindFS }
func (s fsSource) Location() string { return s.name }
func (s fsSource) Format() Format   { return s.format }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name, format: DetectFormat(name)}
}
