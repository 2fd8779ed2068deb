// Package loader produces the ordered station records for a run, either from
// the remote feed or from a local XML, JSON or CSV file.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/youbike-osm/youbike-osm/feed"
	"github.com/youbike-osm/youbike-osm/internal/logging"
	"github.com/youbike-osm/youbike-osm/station"
)

// Mode selects where records come from.
type Mode int

const (
	// ModeFetch reads the remote feed.
	ModeFetch Mode = iota + 1
	// ModeConvert reads a local file.
	ModeConvert
)

func (m Mode) String() string {
	switch m {
	case ModeFetch:
		return "fetch"
	case ModeConvert:
		return "convert"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

var (
	// ErrMissingInput is returned when convert mode has no input path.
	ErrMissingInput = errors.New("missing input path")
	// ErrUnreadableInput wraps failures to open the convert mode input.
	ErrUnreadableInput = errors.New("unreadable input")
)

// UnsupportedFormatError is returned for input files whose extension maps to
// no decoder.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("cannot tell input format of %s: no file extension", e.Path)
	}
	return fmt.Sprintf("unsupported input format %q for %s", e.Ext, e.Path)
}

// Fetcher is the part of feed.Client the loader needs.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// Request describes one load.
type Request struct {
	Mode    Mode
	Version station.Version
	// FeedURL is used in fetch mode.
	FeedURL string
	// Input is the local file used in convert mode.
	Input string
}

// Loader turns a Request into records.
type Loader struct {
	fetcher Fetcher
}

// New returns a Loader that fetches through f.
func New(f Fetcher) *Loader {
	return &Loader{fetcher: f}
}

// Load returns the records described by req in the order the source defines.
func (l *Loader) Load(ctx context.Context, req Request) ([]station.Record, error) {
	if !req.Version.Valid() {
		return nil, fmt.Errorf("%w: %d", station.ErrUnknownVersion, int(req.Version))
	}
	logger := logging.FromContext(ctx)

	var (
		records []station.Record
		err     error
	)
	switch req.Mode {
	case ModeFetch:
		records, err = l.fetch(ctx, req)
	case ModeConvert:
		records, err = FromFile(req.Input, req.Version)
	default:
		return nil, fmt.Errorf("unknown load mode %s", req.Mode)
	}
	if err != nil {
		return nil, err
	}

	logging.LogOperation(logger, "records_loaded",
		slog.String("mode", req.Mode.String()),
		slog.String("schema", req.Version.String()),
		slog.Int("count", len(records)))
	return records, nil
}

func (l *Loader) fetch(ctx context.Context, req Request) ([]station.Record, error) {
	if l.fetcher == nil {
		return nil, errors.New("loader has no feed client")
	}
	body, err := l.fetcher.Fetch(ctx, req.FeedURL)
	if err != nil {
		return nil, err
	}
	return feed.Parse(req.Version, body)
}

// FromFile decodes the local file at path according to its extension:
// .xml/.osm, .json or .csv.
func FromFile(path string, v station.Version) ([]station.Record, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrMissingInput
	}
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, &UnsupportedFormatError{Path: path, Ext: ext}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableInput, err)
	}
	defer func() { _ = f.Close() }()

	data, err := feed.DecodeUTF8(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	records, err := decode(data, v)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

type decodeFunc func(data []byte, v station.Version) ([]station.Record, error)

var decoders = map[string]decodeFunc{
	".xml":  decodeXML,
	".osm":  decodeXML,
	".json": decodeJSON,
	".csv":  decodeCSV,
}

func decodeJSON(data []byte, v station.Version) ([]station.Record, error) {
	return station.DecodeJSONArray(v, data)
}
