package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"github.com/youbike-osm/youbike-osm/station"
)

// decodeCSV reads a header row and maps every following row onto it.
// Header names outside the schema are ignored; cells missing from a short
// row leave their column null.
func decodeCSV(data []byte, v station.Version) ([]station.Record, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []station.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	var records []station.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		m := make(map[string]*string, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			cell := row[i]
			m[name] = &cell
		}
		records = append(records, station.FromMap(v, m))
	}
	return records, nil
}
