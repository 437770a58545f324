package propsource

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/byte4ever/layout_designer/properties"
)

// ErrDataSourceMissing is returned by Read when the property file does
// not exist.
var ErrDataSourceMissing = errors.New("property source missing")

// Format identifies a property file encoding.
type Format string

// Supported formats.
const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatStamps Format = "stamps"
)

// FormatOf picks the format from the file extension. Unknown extensions
// are read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt", ".status":
		return FormatStamps
	default:
		return FormatJSON
	}
}

// Read returns the entries of the property file at path in file order.
func Read(path string) ([]properties.Entry, error) {
	const errCtx = "reading properties"

	if path == "" {
		return nil, fmt.Errorf(
			"%s: %w: no path given", errCtx, ErrDataSourceMissing,
		)
	}

	content, err := os.ReadFile(path) //nolint:gosec // path is caller-provided by design
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrDataSourceMissing, err,
		)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	entries, err := Decode(content, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return entries, nil
}

// Decode parses content in the given format.
func Decode(content []byte, format Format) ([]properties.Entry, error) {
	if format == FormatStamps {
		return decodeStamps(content), nil
	}

	if format == FormatYAML {
		return decodeDocument(content)
	}

	return decodeJSON(content)
}

// LoadInto replaces the content of st with the properties read from
// path. A missing file leaves st untouched and is not an error.
func LoadInto(st *properties.Store, path string) error {
	const errCtx = "loading properties"

	entries, err := Read(path)
	if errors.Is(err, ErrDataSourceMissing) {
		slog.Debug(
			"no property source, keeping current properties",
			"path", path,
		)

		return nil
	}

	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	st.Load(entries)

	slog.Debug(
		"properties loaded",
		"path", path,
		"count", st.Len(),
	)

	return nil
}

// Open returns a new store loaded from path. A missing file yields an
// empty store.
func Open(path string) (*properties.Store, error) {
	st := &properties.Store{}

	if err := LoadInto(st, path); err != nil {
		return nil, err
	}

	return st, nil
}
