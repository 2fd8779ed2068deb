package station

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one station in canonical form: an ordered mapping from the
// columns of its Version to nullable string values.
type Record struct {
	version Version
	values  []*string
}

// NewRecord returns a record for v with every column null.
func NewRecord(v Version) Record {
	return Record{version: v, values: make([]*string, len(columns(v)))}
}

// Str returns a pointer to s, for building non-null values.
func Str(s string) *string {
	return &s
}

// Version returns the schema version the record was built for.
func (r Record) Version() Version {
	return r.version
}

// Set assigns the value of col. A nil value marks the column null.
func (r *Record) Set(col string, val *string) error {
	i := r.version.index(col)
	if i < 0 {
		return fmt.Errorf("column %q not in %s schema", col, r.version)
	}
	if val != nil {
		v := *val
		val = &v
	}
	r.values[i] = val
	return nil
}

// Value returns the raw nullable value of col, nil when null or unknown.
func (r Record) Value(col string) *string {
	i := r.version.index(col)
	if i < 0 || r.values[i] == nil {
		return nil
	}
	v := *r.values[i]
	return &v
}

// Get returns the value of col and whether it is non-null.
func (r Record) Get(col string) (string, bool) {
	if v := r.Value(col); v != nil {
		return *v, true
	}
	return "", false
}

// String returns the value of col, or "" when null.
func (r Record) String(col string) string {
	s, _ := r.Get(col)
	return s
}

// Strings returns the values in column order with nulls rendered as "".
func (r Record) Strings() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}

// Map returns the record as a column → value map, nulls kept as nil.
func (r Record) Map() map[string]*string {
	cols := columns(r.version)
	out := make(map[string]*string, len(cols))
	for i, c := range cols {
		out[c] = nil
		if r.values[i] != nil {
			v := *r.values[i]
			out[c] = &v
		}
	}
	return out
}

// MarshalJSON encodes the record as a JSON object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range columns(r.version) {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if r.values[i] == nil {
			buf.WriteString("null")
			continue
		}
		v, err := json.Marshal(*r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FromMap builds a record for v from an arbitrary field mapping. Keys outside
// the schema are dropped and schema columns missing from m stay null.
func FromMap(v Version, m map[string]*string) Record {
	r := NewRecord(v)
	for i, c := range columns(v) {
		if val, ok := m[c]; ok && val != nil {
			s := *val
			r.values[i] = &s
		}
	}
	return r
}

// FromFields zips positional fields onto the columns of v. Missing trailing
// fields stay null and surplus fields are ignored.
func FromFields(v Version, fields []string) Record {
	r := NewRecord(v)
	for i := range r.values {
		if i >= len(fields) {
			break
		}
		s := fields[i]
		r.values[i] = &s
	}
	return r
}
