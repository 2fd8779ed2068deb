package loader

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/youbike-osm/youbike-osm/station"
)

type osmTag struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

type osmNode struct {
	Lat  *string  `xml:"lat,attr"`
	Lon  *string  `xml:"lon,attr"`
	Tags []osmTag `xml:"tag"`
}

// tag key → column filled from it
var tagColumns = []struct {
	key string
	col string
}{
	{"ref", station.ColCode},
	{"name:zh", station.ColNameZH},
	{"name:en", station.ColNameEN},
	{"capacity", station.ColCapacity},
}

// decodeXML turns every <node> element, at any depth, into a record.
// Coordinates come from attributes and stay null when missing; the tag
// sourced columns become "" when their tag is missing.
func decodeXML(data []byte, v station.Version) ([]station.Record, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	// input has already been decoded to UTF-8
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	var records []station.Record
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "node" {
			continue
		}
		var n osmNode
		if err := dec.DecodeElement(&n, &se); err != nil {
			return nil, err
		}
		r, err := n.record(v)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (n osmNode) record(v station.Version) (station.Record, error) {
	r := station.NewRecord(v)
	if err := r.Set(station.ColLatitude, n.Lat); err != nil {
		return station.Record{}, err
	}
	if err := r.Set(station.ColLongitude, n.Lon); err != nil {
		return station.Record{}, err
	}
	for _, tc := range tagColumns {
		val := n.tag(tc.key)
		if err := r.Set(tc.col, &val); err != nil {
			return station.Record{}, err
		}
	}
	return r, nil
}

func (n osmNode) tag(key string) string {
	for _, t := range n.Tags {
		if t.K == key {
			return t.V
		}
	}
	return ""
}
