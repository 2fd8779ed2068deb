package formatter

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/youbike-osm/youbike-osm/station"
)

// Static network and operator tag values attached to every node.
const (
	NetworkName    = "YouBike 微笑單車"
	NetworkNameEN  = "YouBike"
	NetworkNameZH  = "微笑單車"
	OperatorName   = "臺北市政府 Taipei City Government"
	OperatorNameEN = "Taipei City Government"
	OperatorNameZH = "臺北市政府"
)

const (
	osmVersion   = "0.6"
	osmGenerator = "youbike-osm"
	amenity      = "bicycle_rental"
)

// BuildOSM serializes records as an OSM 0.6 document. Node ids are negative
// and sequential, -1 for the first record, marking them as not yet uploaded.
func (b *Builder) BuildOSM(records []station.Record) []byte {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString("\n")
	sb.WriteString(`<osm version="` + osmVersion + `" generator="` + osmGenerator + `"`)
	if len(records) == 0 {
		sb.WriteString("/>\n")
		return []byte(sb.String())
	}
	sb.WriteString(">\n")
	for i, r := range records {
		b.writeNode(&sb, i, r)
	}
	sb.WriteString("</osm>\n")
	return []byte(sb.String())
}

func (b *Builder) writeNode(sb *strings.Builder, index int, r station.Record) {
	sb.WriteString(`  <node id="`)
	sb.WriteString(strconv.Itoa(-(index + 1)))
	sb.WriteString(`" visible="true"`)
	// missing coordinates are left out rather than written empty
	if lat, ok := r.Get(station.ColLatitude); ok {
		writeAttr(sb, "lat", lat)
	}
	if lon, ok := r.Get(station.ColLongitude); ok {
		writeAttr(sb, "lon", lon)
	}
	sb.WriteString(">\n")

	nameZH := r.String(station.ColNameZH)
	nameEN := r.String(station.ColNameEN)
	for _, t := range [][2]string{
		{"amenity", amenity},
		{"name", b.name(nameZH, nameEN)},
		{"name:en", nameEN},
		{"name:zh", nameZH},
		{"ref", r.String(station.ColCode)},
		{"capacity", r.String(station.ColCapacity)},
		{"network", NetworkName},
		{"network:en", NetworkNameEN},
		{"network:zh", NetworkNameZH},
		{"operator", OperatorName},
		{"operator:en", OperatorNameEN},
		{"operator:zh", OperatorNameZH},
	} {
		writeTag(sb, t[0], t[1])
	}
	sb.WriteString("  </node>\n")
}

func (b *Builder) name(zh, en string) string {
	if b.opts.NameStyle == NameChinese {
		return zh
	}
	return strings.TrimSpace(zh + " " + en)
}

func writeAttr(sb *strings.Builder, key, value string) {
	sb.WriteString(" ")
	sb.WriteString(key)
	sb.WriteString(`="`)
	sb.WriteString(xmlEscape(value))
	sb.WriteString(`"`)
}

func writeTag(sb *strings.Builder, k, v string) {
	sb.WriteString("    <tag")
	writeAttr(sb, "k", k)
	writeAttr(sb, "v", v)
	sb.WriteString("/>\n")
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
	"\n", "&#xA;",
	"\r", "&#xD;",
	"\t", "&#x9;",
)

// xmlEscape escapes s for use in an attribute value. Characters outside
// the XML 1.0 Char production are replaced with U+FFFD.
func xmlEscape(s string) string {
	return xmlReplacer.Replace(strings.Map(xmlChar, s))
}

func xmlChar(r rune) rune {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D,
		r >= 0x20 && r <= 0xD7FF,
		r >= 0xE000 && r <= 0xFFFD,
		r >= 0x10000 && r <= 0x10FFFF:
		return r
	}
	return utf8.RuneError
}
