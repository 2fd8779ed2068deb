package station

import (
	"errors"
	"fmt"
	"strings"
)

// Version identifies the column set in effect for a run.
type Version int

const (
	// Legacy is the pipe/underscore delimited feed with 11 positional fields.
	Legacy Version = iota + 1
	// Current is the JSON feed with 20 named fields.
	Current
)

// ErrUnknownVersion is returned by ParseVersion for unrecognized names.
var ErrUnknownVersion = errors.New("unknown schema version")

var legacyColumns = []string{
	"sno", "sna", "tot", "sbi", "sarea", "lat", "lng", "ar", "sareaen", "snaen", "aren",
}

var currentColumns = []string{
	"_id", "sno", "sna", "tot", "sbi", "sarea", "mday", "lat", "lng", "ar",
	"sareaen", "snaen", "aren", "bemp", "act", "srcUpdateTime", "updateTime",
	"infoTime", "infoDate", "sv",
}

// Column names shared by both versions.
const (
	ColCode      = "sno"
	ColNameZH    = "sna"
	ColNameEN    = "snaen"
	ColCapacity  = "tot"
	ColLatitude  = "lat"
	ColLongitude = "lng"
)

// ParseVersion maps "legacy" or "current" (any case) to a Version.
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy":
		return Legacy, nil
	case "current":
		return Current, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
}

func (v Version) String() string {
	switch v {
	case Legacy:
		return "legacy"
	case Current:
		return "current"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// Valid reports whether v is one of the known versions.
func (v Version) Valid() bool {
	return v == Legacy || v == Current
}

// Columns returns a copy of the ordered column names for v.
func Columns(v Version) []string {
	cols := columns(v)
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// Has reports whether col belongs to v.
func (v Version) Has(col string) bool {
	return v.index(col) >= 0
}

func (v Version) index(col string) int {
	for i, c := range columns(v) {
		if c == col {
			return i
		}
	}
	return -1
}

func columns(v Version) []string {
	switch v {
	case Legacy:
		return legacyColumns
	case Current:
		return currentColumns
	}
	return nil
}
