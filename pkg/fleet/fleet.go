package fleet

import "encoding/xml"

// Fleet is one saved fleet as the game client writes it: ships with their
// socket loadouts plus any custom missile templates the fleet references.
type Fleet struct {
	XMLName           xml.Name          `xml:"Fleet"`
	XmlnsXSD          string            `xml:"xmlns:xsd,attr,omitempty"`
	XmlnsXSI          string            `xml:"xmlns:xsi,attr,omitempty"`
	Name              string            `xml:"Name"`
	Version           int               `xml:"Version"`
	TotalPoints       int               `xml:"TotalPoints"`
	FactionKey        string            `xml:"FactionKey"`
	Description       string            `xml:"Description,omitempty"`
	SortOverrideOrder NullableInt       `xml:"SortOverrideOrder"`
	Ships             []Ship            `xml:"Ships>Ship"`
	MissileTypes      []MissileTemplate `xml:"MissileTypes>MissileTemplate"`
}

type Ship struct {
	SaveID               NullableString    `xml:"SaveID"`
	Key                  string            `xml:"Key"`
	Name                 string            `xml:"Name"`
	Cost                 int               `xml:"Cost"`
	Callsign             string            `xml:"Callsign"`
	Number               int               `xml:"Number"`
	SymbolOption         int               `xml:"SymbolOption"`
	HullType             string            `xml:"HullType"`
	HullConfig           *PolymorphicBlob  `xml:"HullConfig,omitempty"`
	SocketMap            []HullSocket      `xml:"SocketMap>HullSocket"`
	WeaponGroups         []WepGroup        `xml:"WeaponGroups>WepGroup"`
	InitialFormation     *InitialFormation `xml:"InitialFormation,omitempty"`
	TemplateMissileTypes []string          `xml:"TemplateMissileTypes>string"`
}

// HullSocket is one attachment point on a hull. ComponentData is only
// present for components that carry extra state (magazines, launcher cells).
type HullSocket struct {
	Key           string         `xml:"Key"`
	ComponentName string         `xml:"ComponentName"`
	ComponentData *ComponentData `xml:"ComponentData,omitempty"`
}

// MagSaveData is one magazine row: which munition and how many rounds.
type MagSaveData struct {
	MagazineKey string `xml:"MagazineKey"`
	MunitionKey string `xml:"MunitionKey"`
	Quantity    int    `xml:"Quantity"`
}

// WepGroup is a named set of sockets that fire together under one order.
// MemberKeys reference HullSocket keys on the owning ship.
type WepGroup struct {
	Name       string   `xml:"Name,attr"`
	MemberKeys []string `xml:"MemberKeys>string"`
}

// InitialFormation anchors a ship to a guide ship at deploy time.
type InitialFormation struct {
	GuideKey string `xml:"GuideKey,attr"`
}

// MissileTemplate is a reusable missile design built from sized sockets.
type MissileTemplate struct {
	AssociatedTemplateName NullableString  `xml:"AssociatedTemplateName"`
	Designation            string          `xml:"Designation"`
	Nickname               string          `xml:"Nickname"`
	Description            string          `xml:"Description,omitempty"`
	LongDescription        string          `xml:"LongDescription,omitempty"`
	Cost                   int             `xml:"Cost"`
	BodyKey                string          `xml:"BodyKey"`
	TemplateKey            string          `xml:"TemplateKey"`
	BaseColor              *Color          `xml:"BaseColor,omitempty"`
	StripeColor            *Color          `xml:"StripeColor,omitempty"`
	Sockets                []MissileSocket `xml:"Sockets>MissileSocket"`
}

type MissileSocket struct {
	Size               int               `xml:"Size"`
	InstalledComponent *MissileComponent `xml:"InstalledComponent,omitempty"`
}

type Color struct {
	R float64 `xml:"r"`
	G float64 `xml:"g"`
	B float64 `xml:"b"`
	A float64 `xml:"a"`
}

// MunitionName is the key missile templates are referenced by from magazine
// loads and from a ship's TemplateMissileTypes list.
func (t *MissileTemplate) MunitionName() string {
	return ModularMissilePrefix + t.Designation + " " + t.Nickname
}

// ModularMissilePrefix marks munition keys that resolve to a fleet's own
// missile templates rather than to stock game content.
const ModularMissilePrefix = "$MODMIS$/"
