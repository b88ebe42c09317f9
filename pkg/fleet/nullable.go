package fleet

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// The game writes absent values as explicit xsi:nil elements rather than
// omitting them; these wrappers keep that distinction across a round trip.

type NullableString struct {
	Value string
	Valid bool
}

func String(s string) NullableString {
	return NullableString{Value: s, Valid: true}
}

func (n *NullableString) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if isNilElement(start.Attr) {
		*n = NullableString{}
		return d.Skip()
	}
	var v string
	if err := d.DecodeElement(&v, &start); err != nil {
		return err
	}
	*n = NullableString{Value: v, Valid: true}
	return nil
}

func (n NullableString) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if !n.Valid {
		return encodeNilElement(e, start)
	}
	return e.EncodeElement(n.Value, start)
}

type NullableInt struct {
	Value int
	Valid bool
}

func Int(v int) NullableInt {
	return NullableInt{Value: v, Valid: true}
}

func (n *NullableInt) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if isNilElement(start.Attr) {
		*n = NullableInt{}
		return d.Skip()
	}
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*n = NullableInt{}
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	*n = NullableInt{Value: v, Valid: true}
	return nil
}

func (n NullableInt) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if !n.Valid {
		return encodeNilElement(e, start)
	}
	return e.EncodeElement(n.Value, start)
}

func isNilElement(attrs []xml.Attr) bool {
	for _, a := range attrs {
		if a.Name.Local == "nil" && a.Value == "true" {
			return true
		}
	}
	return false
}

func encodeNilElement(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xsi:nil"}, Value: "true"})
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}
