package formatter

import (
	"encoding/json"

	"github.com/youbike-osm/youbike-osm/station"
)

// BuildJSON serializes records as one JSON array. Zero records give "[]".
func (b *Builder) BuildJSON(records []station.Record) ([]byte, error) {
	if records == nil {
		records = []station.Record{}
	}
	return json.Marshal(records)
}
