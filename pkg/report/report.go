// Package report reads the after-action XML the NEBULOUS dedicated server
// drops into Saves/SkirmishReports after each skirmish.
package report

import "time"

// Faction labels derived from the hulls a player fielded.
const (
	FactionANS     = "ANS"
	FactionOSP     = "OSP"
	FactionUnknown = ""
)

// Player is one participant in a match.
type Player struct {
	ID        string
	SteamName string
	Faction   string
	HullKeys  []string
}

// Team is one side of a match.
type Team struct {
	ID      string
	Players []Player
}

// Match is one parsed skirmish report. Invalid matches keep their timestamp
// so the pipeline can log and skip them in order.
type Match struct {
	Valid       bool
	Time        time.Time
	Teams       []Team
	WinningTeam string
}

// Team returns the team with the given id, or nil.
func (m *Match) Team(id string) *Team {
	for i := range m.Teams {
		if m.Teams[i].ID == id {
			return &m.Teams[i]
		}
	}
	return nil
}

// battleReport mirrors the server's XML. The root element name is not
// pinned and team/player container children match any element name, since
// the serializer encodes generic list types under varying names.
type battleReport struct {
	GameStartTimestamp int64   `xml:"GameStartTimestamp"`
	GameDuration       float64 `xml:"GameDuration"`
	GameFinished       bool    `xml:"GameFinished"`
	WinningTeam        string  `xml:"WinningTeam"`
	Teams              struct {
		Entries []teamReport `xml:",any"`
	} `xml:"Teams"`
}

type teamReport struct {
	TeamID  string `xml:"TeamID"`
	Players struct {
		Entries []playerReport `xml:",any"`
	} `xml:"Players"`
}

type playerReport struct {
	PlayerName string `xml:"PlayerName"`
	AccountID  struct {
		Value string `xml:"Value"`
	} `xml:"AccountId"`
	Ships struct {
		Reports []shipBattleReport `xml:"ShipBattleReport"`
	} `xml:"Ships"`
}

type shipBattleReport struct {
	HullKey string `xml:"HullKey"`
}
