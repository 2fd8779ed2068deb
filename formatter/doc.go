// Package formatter serializes station records to CSV, JSON or OSM XML and
// writes the result to disk.
//
// This package is organized into:
//   - format.go: output formats, name styles and builder options
//   - csv.go: CSV serialization (header + one row per record)
//   - json.go: JSON serialization (array of ordered objects)
//   - osm.go: OSM/JOSM XML serialization with fixed network/operator tags
//   - writer.go: atomic file output and default file names
//
// XML is written by hand, like the JSON wrapper around records, so the exact
// layout of the document stays under our control.
package formatter
