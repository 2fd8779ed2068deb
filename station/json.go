package station

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeJSONArray decodes a JSON array of flat objects into records of v.
// Records keep the array order. Anything other than an array of objects is
// an error.
func DecodeJSONArray(v Version, data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("expected a JSON array, got %s", truncate(trimmed))
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(elems))
	for i, raw := range elems {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '{' {
			return nil, fmt.Errorf("element %d: expected an object, got %s", i, truncate(raw))
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		r, err := FromJSONObject(v, obj)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// FromJSONObject builds a record from one flat JSON object. Strings are taken
// as is, numbers keep their literal text, booleans become "true"/"false" and
// null stays null. Nested objects or arrays are rejected.
func FromJSONObject(v Version, obj map[string]json.RawMessage) (Record, error) {
	m := make(map[string]*string, len(obj))
	for k, raw := range obj {
		if !v.Has(k) {
			continue
		}
		s, err := scalarString(raw)
		if err != nil {
			return Record{}, fmt.Errorf("field %q: %w", k, err)
		}
		m[k] = s
	}
	return FromMap(v, m), nil
}

func scalarString(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	switch raw[0] {
	case 'n':
		return nil, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case '{', '[':
		return nil, fmt.Errorf("nested value %s not allowed", truncate(raw))
	}
	// numbers and booleans keep their literal text
	s := string(raw)
	return &s, nil
}

func truncate(b []byte) string {
	const limit = 32
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
