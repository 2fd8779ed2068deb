package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/youbike-osm/youbike-osm/station"
)

const (
	recordSeparator = "|"
	fieldSeparator  = "_"
)

// ParseError reports a feed body that could not be turned into records.
type ParseError struct {
	Version station.Version
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s feed: %v", e.Version, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse turns a feed body into records using the layout of v.
func Parse(v station.Version, body []byte) ([]station.Record, error) {
	switch v {
	case station.Legacy:
		return ParseLegacy(body), nil
	case station.Current:
		return ParseCurrent(body)
	}
	return nil, fmt.Errorf("%w: %d", station.ErrUnknownVersion, int(v))
}

// ParseLegacy splits the pipe delimited feed into records. Tokens are sorted
// on their raw text before being split into fields, which orders stations by
// code. Trailing empty fields are dropped and so end up null.
func ParseLegacy(body []byte) []station.Record {
	text := strings.TrimSpace(string(body))
	var tokens []string
	for _, tok := range strings.Split(text, recordSeparator) {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	sort.Strings(tokens)

	records := make([]station.Record, 0, len(tokens))
	for _, tok := range tokens {
		records = append(records, station.FromFields(station.Legacy, splitFields(tok)))
	}
	return records
}

func splitFields(tok string) []string {
	fields := strings.Split(tok, fieldSeparator)
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// currentDocument covers both published shapes of the JSON feed: "result"
// holding the array directly, or an object with a "results" array.
type currentDocument struct {
	Result json.RawMessage `json:"result"`
}

type resultPage struct {
	Results json.RawMessage `json:"results"`
}

// ParseCurrent decodes the JSON feed. Elements are kept in feed order.
// A bare top-level array is accepted as well.
func ParseCurrent(body []byte) ([]station.Record, error) {
	arr, err := resultArray(bytes.TrimSpace(body))
	if err != nil {
		return nil, &ParseError{Version: station.Current, Err: err}
	}
	records, err := station.DecodeJSONArray(station.Current, arr)
	if err != nil {
		return nil, &ParseError{Version: station.Current, Err: err}
	}
	return records, nil
}

func resultArray(body []byte) ([]byte, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	if body[0] == '[' {
		return body, nil
	}

	var doc currentDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	result := bytes.TrimSpace(doc.Result)
	if len(result) == 0 {
		return nil, fmt.Errorf("missing result member")
	}
	if result[0] == '[' {
		return result, nil
	}

	var page resultPage
	if err := json.Unmarshal(result, &page); err != nil {
		return nil, fmt.Errorf("result: %w", err)
	}
	results := bytes.TrimSpace(page.Results)
	if len(results) == 0 || results[0] != '[' {
		return nil, fmt.Errorf("result has no results array")
	}
	return results, nil
}
