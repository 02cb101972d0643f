package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-invoicegen/pkg/records"
)

// Loader implements records.Loader for file and fs.FS sources across the
// supported formats. Construction helpers live in the root package.
type Loader struct {
	fs fs.FS
}

// Ensure the implementation satisfies the public interface.
var _ records.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options records.LoaderOptions) records.Loader {
	return &Loader{fs: options.FileSystem}
}

// Load reads the source and parses it into an ordered Dataset.
func (l *Loader) Load(ctx context.Context, src records.Source) (records.Dataset, error) {
	if src == nil {
		return records.Dataset{}, errors.New("loader: source is nil")
	}

	data, err := l.read(ctx, src)
	if err != nil {
		return records.Dataset{}, err
	}

	var recs []*records.Record
	switch src.Format() {
	case records.FormatCSV:
		recs, err = parseCSV(src.Location(), data)
	case records.FormatJSON:
		recs, err = parseJSON(src.Location(), data)
	case records.FormatYAML:
		recs, err = parseYAML(src.Location(), data)
	default:
		err = fmt.Errorf("loader: cannot determine format for %q", src.Location())
	}
	if err != nil {
		return records.Dataset{}, err
	}

	return records.NewDataset(src, recs)
}

func (l *Loader) read(ctx context.Context, src records.Source) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	switch src.Kind() {
	case records.SourceKindFile:
		abs, err := filepath.Abs(src.Location())
		if err != nil {
			return nil, err
		}
		return os.ReadFile(abs)
	case records.SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("loader: fs source requires a configured filesystem")
		}
		return fs.ReadFile(l.fs, src.Location())
	default:
		return nil, errors.New("loader: unsupported source kind")
	}
}
