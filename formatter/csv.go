package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/youbike-osm/youbike-osm/station"
)

// BuildCSV writes the schema columns as header followed by one row per
// record. Null values are written as empty cells.
func (b *Builder) BuildCSV(records []station.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(station.Columns(b.opts.Version)); err != nil {
		return nil, err
	}
	for i, r := range records {
		if r.Version() != b.opts.Version {
			return nil, fmt.Errorf("record %d has %s schema, want %s", i, r.Version(), b.opts.Version)
		}
		if err := w.Write(r.Strings()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
