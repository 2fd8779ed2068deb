// Package station defines the canonical YouBike station record shared by
// every loader and exporter.
//
// A run works with exactly one schema Version. The legacy feed publishes
// eleven positional fields per station, the current JSON feed twenty named
// fields. Every Record built during a run carries the full column set of its
// Version, in column order, whatever the source format provided.
//
// Values are nullable strings. A nil value means the field was absent at the
// source; an empty string means it was present but empty. Decoders keep the
// two apart, and encoders decide how each one is rendered.
package station
