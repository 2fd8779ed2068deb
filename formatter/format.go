package formatter

import (
	"fmt"
	"strings"

	"github.com/youbike-osm/youbike-osm/station"
)

// Format is an output serialization.
type Format string

const (
	FormatOSM  Format = "osm"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat maps s to a Format. Anything unrecognized is OSM.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON
	case FormatCSV:
		return FormatCSV
	}
	return FormatOSM
}

// Ext returns the file extension used for f, without the dot.
func (f Format) Ext() string {
	return string(ParseFormat(string(f)))
}

// NameStyle decides how the OSM "name" tag is composed.
type NameStyle string

const (
	// NameBilingual joins the Chinese and English names with a space.
	NameBilingual NameStyle = "bilingual"
	// NameChinese uses the Chinese name only.
	NameChinese NameStyle = "zh"
)

// ParseNameStyle maps s to a NameStyle. An empty string yields "" so the
// caller can fall back to the schema default.
func ParseNameStyle(s string) (NameStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case string(NameBilingual):
		return NameBilingual, nil
	case string(NameChinese):
		return NameChinese, nil
	}
	return "", fmt.Errorf("unknown name style %q (want bilingual or zh)", s)
}

// DefaultNameStyle is the style each feed generation was published with.
func DefaultNameStyle(v station.Version) NameStyle {
	if v == station.Current {
		return NameChinese
	}
	return NameBilingual
}

// Options configure a Builder.
type Options struct {
	Version   station.Version
	NameStyle NameStyle
}

// Builder serializes records for one schema version.
type Builder struct {
	opts Options
}

// NewBuilder returns a Builder. An empty name style is replaced by the
// default for the version.
func NewBuilder(opts Options) *Builder {
	if opts.NameStyle == "" {
		opts.NameStyle = DefaultNameStyle(opts.Version)
	}
	return &Builder{opts: opts}
}

// Build serializes records in format f.
func (b *Builder) Build(f Format, records []station.Record) ([]byte, error) {
	switch ParseFormat(string(f)) {
	case FormatCSV:
		return b.BuildCSV(records)
	case FormatJSON:
		return b.BuildJSON(records)
	}
	return b.BuildOSM(records), nil
}
