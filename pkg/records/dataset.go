package records

import (
	"context"
	"errors"
	"io/fs"
)

// Dataset wraps the ordered record sequence parsed from one source. The
// slice order is the input row/element order, which identifier discovery
// and batch rendering both depend on.
type Dataset struct {
	source  Source
	records []*Record
}

// NewDataset constructs a Dataset wrapper while validating the inputs. An
// empty record sequence is allowed; a nil source is not.
func NewDataset(src Source, recs []*Record) (Dataset, error) {
	if src == nil {
		return Dataset{}, errors.New("records: source is required")
	}
	clone := append([]*Record(nil), recs...)
	return Dataset{source: src, records: clone}, nil
}

// MustNewDataset panics if the dataset cannot be created. Useful for tests.
func MustNewDataset(src Source, recs []*Record) Dataset {
	ds, err := NewDataset(src, recs)
	if err != nil {
		panic(err)
	}
	return ds
}

// Source returns the origin metadata for the dataset.
func (d Dataset) Source() Source {
	return d.source
}

// Records returns the ordered record sequence. The slice is a copy; the
// records themselves are shared and treated as immutable.
func (d Dataset) Records() []*Record {
	return append([]*Record(nil), d.records...)
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.records)
}

// Location returns the string identifier for the origin.
func (d Dataset) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Loader parses a data source into a Dataset. Implementations live under
// internal/loader; construction helpers are exposed from the root package.
type Loader interface {
	Load(ctx context.Context, src Source) (Dataset, error)
}

// LoaderOptions carries pre-resolved loader configuration.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS sources. Optional.
	FileSystem fs.FS
}

// NewLoaderOptions returns the default loader configuration.
func NewLoaderOptions() LoaderOptions {
	return LoaderOptions{}
}
