// Package youbikeosm runs one export: load the YouBike station records from
// the feed or a local file and write them as OSM XML, JSON or CSV.
package youbikeosm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/youbike-osm/youbike-osm/config"
	"github.com/youbike-osm/youbike-osm/feed"
	"github.com/youbike-osm/youbike-osm/formatter"
	"github.com/youbike-osm/youbike-osm/internal/logging"
	"github.com/youbike-osm/youbike-osm/loader"
	"github.com/youbike-osm/youbike-osm/station"
)

// ConfigError marks a run that failed because of its arguments or
// configuration rather than the network, the input data or the disk.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err was caused by bad arguments or
// configuration.
func IsConfigError(err error) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return true
	}
	var ue *loader.UnsupportedFormatError
	return errors.Is(err, loader.ErrMissingInput) ||
		errors.Is(err, loader.ErrUnreadableInput) ||
		errors.Is(err, station.ErrUnknownVersion) ||
		errors.As(err, &ue)
}

// Options are the per-run overrides, typically command line flags. Empty
// fields keep the configured value.
type Options struct {
	Mode      loader.Mode
	Schema    string
	Format    string
	NameStyle string
	FeedURL   string
	Input     string
	Output    string
}

// Exporter runs the load and write pipeline.
type Exporter struct {
	cfg     config.AppConfig
	fetcher loader.Fetcher
	now     func() time.Time
}

// NewExporter returns an Exporter that fetches with a feed.Client built from
// cfg.
func NewExporter(cfg config.AppConfig) *Exporter {
	return &Exporter{
		cfg:     cfg,
		fetcher: feed.NewClient(cfg.Timeout()),
		now:     time.Now,
	}
}

// WithFetcher replaces the feed client.
func (e *Exporter) WithFetcher(f loader.Fetcher) *Exporter {
	e.fetcher = f
	return e
}

// WithClock replaces the time source used for default output names.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

type plan struct {
	req    loader.Request
	format formatter.Format
	opts   formatter.Options
	output string
}

func (e *Exporter) resolve(o Options) (plan, error) {
	schema := e.cfg.Feed.Schema
	if o.Schema != "" {
		schema = o.Schema
	}
	v, err := station.ParseVersion(schema)
	if err != nil {
		return plan{}, &ConfigError{Err: err}
	}

	styleName := e.cfg.Export.NameStyle
	if o.NameStyle != "" {
		styleName = o.NameStyle
	}
	style, err := formatter.ParseNameStyle(styleName)
	if err != nil {
		return plan{}, &ConfigError{Err: err}
	}

	formatName := e.cfg.Export.Format
	if o.Format != "" {
		formatName = o.Format
	}
	f := formatter.ParseFormat(formatName)

	req := loader.Request{Mode: o.Mode, Version: v, Input: o.Input}
	switch o.Mode {
	case loader.ModeFetch:
		req.FeedURL = e.cfg.FeedURL(v)
		if o.FeedURL != "" {
			req.FeedURL = o.FeedURL
		}
	case loader.ModeConvert:
		if o.Input == "" {
			return plan{}, loader.ErrMissingInput
		}
	default:
		return plan{}, &ConfigError{Err: fmt.Errorf("unknown mode %s", o.Mode)}
	}

	output := o.Output
	if output == "" {
		output = formatter.DefaultOutputPath(e.cfg.Export.OutputDir, f, e.now())
	}

	return plan{
		req:    req,
		format: f,
		opts:   formatter.Options{Version: v, NameStyle: style},
		output: output,
	}, nil
}

// Run loads the records described by o and writes them to the output file,
// returning its path. Arguments are validated before any I/O, so a
// misconfigured run never creates a file.
func (e *Exporter) Run(ctx context.Context, o Options) (string, error) {
	p, err := e.resolve(o)
	if err != nil {
		return "", err
	}
	logger := logging.FromContext(ctx)
	start := e.now()

	records, err := loader.New(e.fetcher).Load(ctx, p.req)
	if err != nil {
		return "", err
	}

	if err := formatter.NewBuilder(p.opts).WriteFile(p.output, p.format, records); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}

	logging.LogOperation(logger, "export_written",
		slog.String("path", p.output),
		slog.String("format", string(p.format)),
		slog.String("schema", p.req.Version.String()),
		slog.Int("records", len(records)),
		slog.Duration("duration", e.now().Sub(start)))
	return p.output, nil
}
