package fleet

import (
	"encoding/xml"
	"strings"
)

// Component data variants the game writes with an xsi:type discriminator.
const (
	TypeBulkMagazine          = "BulkMagazineData"
	TypeCellLauncher          = "CellLauncherData"
	TypeResizableCellLauncher = "ResizableCellLauncherData"
	TypeMissileEngineSettings = "MissileEngineSettings"
)

// ComponentData is the polymorphic payload of a hull socket. The known
// magazine-bearing variants are decoded into Load/MissileLoad; anything else
// is preserved verbatim in Raw so a round trip does not lose data.
type ComponentData struct {
	Type           string
	Load           []MagSaveData // BulkMagazineData
	MissileLoad    []MagSaveData // CellLauncherData, ResizableCellLauncherData
	ConfiguredSize int           // ResizableCellLauncherData only
	Raw            string
}

// Rows returns whichever magazine rows the variant carries.
func (c *ComponentData) Rows() []MagSaveData {
	if len(c.Load) > 0 {
		return c.Load
	}
	return c.MissileLoad
}

func xsiTypeAttr(attrs []xml.Attr) string {
	for _, a := range attrs {
		if a.Name.Local == "type" {
			return a.Value
		}
	}
	return ""
}

func (c *ComponentData) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	c.Type = xsiTypeAttr(start.Attr)

	var body struct {
		Load           []MagSaveData `xml:"Load>MagSaveData"`
		MissileLoad    []MagSaveData `xml:"MissileLoad>MagSaveData"`
		ConfiguredSize int           `xml:"ConfiguredSize"`
		Raw            string        `xml:",innerxml"`
	}
	if err := d.DecodeElement(&body, &start); err != nil {
		return err
	}

	c.Load = body.Load
	c.MissileLoad = body.MissileLoad
	c.ConfiguredSize = body.ConfiguredSize
	c.Raw = body.Raw
	return nil
}

type magRows struct {
	Rows []MagSaveData `xml:"MagSaveData"`
}

func (c ComponentData) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if c.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xsi:type"}, Value: c.Type})
	}

	switch c.Type {
	case TypeBulkMagazine:
		return e.EncodeElement(struct {
			Load magRows `xml:"Load"`
		}{Load: magRows{Rows: c.Load}}, start)
	case TypeCellLauncher:
		return e.EncodeElement(struct {
			MissileLoad magRows `xml:"MissileLoad"`
		}{MissileLoad: magRows{Rows: c.MissileLoad}}, start)
	case TypeResizableCellLauncher:
		return e.EncodeElement(struct {
			ConfiguredSize int     `xml:"ConfiguredSize"`
			MissileLoad    magRows `xml:"MissileLoad"`
		}{ConfiguredSize: c.ConfiguredSize, MissileLoad: magRows{Rows: c.MissileLoad}}, start)
	default:
		return e.EncodeElement(struct {
			Raw string `xml:",innerxml"`
		}{Raw: c.Raw}, start)
	}
}

// PolymorphicBlob carries an xsi:type element we have no structured model
// for (hull configurations and the like), verbatim.
type PolymorphicBlob struct {
	Type string
	Raw  string
}

func (b *PolymorphicBlob) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	b.Type = xsiTypeAttr(start.Attr)

	var body struct {
		Raw string `xml:",innerxml"`
	}
	if err := d.DecodeElement(&body, &start); err != nil {
		return err
	}
	b.Raw = body.Raw
	return nil
}

func (b PolymorphicBlob) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if b.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xsi:type"}, Value: b.Type})
	}
	return e.EncodeElement(struct {
		Raw string `xml:",innerxml"`
	}{Raw: b.Raw}, start)
}

// MissileComponent is one installed missile-socket component (seeker,
// guidance, warhead, engine). Settings bodies vary per type and are kept
// verbatim; the component name is lifted out for summaries and validation.
type MissileComponent struct {
	Type          string
	ComponentName NullableString
	Raw           string
}

func (c *MissileComponent) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	c.Type = xsiTypeAttr(start.Attr)

	var body struct {
		ComponentName NullableString `xml:"AssociatedComponentName"`
		Raw           string         `xml:",innerxml"`
	}
	if err := d.DecodeElement(&body, &start); err != nil {
		return err
	}
	c.ComponentName = body.ComponentName
	c.Raw = body.Raw
	return nil
}

func (c MissileComponent) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if c.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xsi:type"}, Value: c.Type})
	}
	if c.Raw != "" {
		return e.EncodeElement(struct {
			Raw string `xml:",innerxml"`
		}{Raw: c.Raw}, start)
	}
	return e.EncodeElement(struct {
		ComponentName NullableString `xml:"AssociatedComponentName"`
	}{ComponentName: c.ComponentName}, start)
}

// EngineBalance is the thrust/maneuver/burn split of a missile engine.
// The three values are authored to sum to one.
type EngineBalance struct {
	Thrust   float64
	Maneuver float64
	BurnTime float64
}

// EngineBalance parses the balance values out of a MissileEngineSettings
// component. The second return is false for any other component type.
func (c *MissileComponent) EngineBalance() (EngineBalance, bool) {
	if c.Type != TypeMissileEngineSettings {
		return EngineBalance{}, false
	}

	var body struct {
		Balance struct {
			A float64 `xml:"A"`
			B float64 `xml:"B"`
			C float64 `xml:"C"`
		} `xml:"BalanceValues"`
	}
	wrapped := "<c>" + strings.TrimSpace(c.Raw) + "</c>"
	if err := xml.Unmarshal([]byte(wrapped), &body); err != nil {
		return EngineBalance{}, false
	}
	return EngineBalance{
		Thrust:   body.Balance.A,
		Maneuver: body.Balance.B,
		BurnTime: body.Balance.C,
	}, true
}
