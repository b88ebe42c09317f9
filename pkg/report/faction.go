package report

import "github.com/pkg/errors"

var stockANSHulls = []string{
	"Stock/Sprinter Corvette",
	"Stock/Raines Frigate",
	"Stock/Keystone Destroyer",
	"Stock/Vauxhall Light Cruiser",
	"Stock/Axford Heavy Cruiser",
	"Stock/Solomon Battleship",
	"Stock/Levy Escort Carrier",
}

var stockOSPHulls = []string{
	"Stock/Shuttle",
	"Stock/Tugboat",
	"Stock/Journeyman",
	"Stock/Bulk Feeder",
	"Stock/Ore Carrier",
	"Stock/Ocello Cruiser",
	"Stock/Bulk Hauler",
	"Stock/Container Hauler",
	"Stock/Container Hauler Refit",
}

var ErrUnknownFaction = errors.New("could not determine team faction")

// FactionClassifier maps hull keys to factions.
type FactionClassifier struct {
	ans map[string]struct{}
	osp map[string]struct{}
}

// NewClassifier builds a classifier from explicit hull tables, for configs
// that add modded hulls.
func NewClassifier(ansHulls, ospHulls []string) *FactionClassifier {
	c := &FactionClassifier{
		ans: make(map[string]struct{}, len(ansHulls)),
		osp: make(map[string]struct{}, len(ospHulls)),
	}
	for _, h := range ansHulls {
		c.ans[h] = struct{}{}
	}
	for _, h := range ospHulls {
		c.osp[h] = struct{}{}
	}
	return c
}

// StockClassifier covers the base game's hull list.
func StockClassifier() *FactionClassifier {
	return NewClassifier(stockANSHulls, stockOSPHulls)
}

// classify returns the faction for one player's hulls. A player with no
// surviving ship records classifies as unknown and inherits the team
// faction later.
func (c *FactionClassifier) classify(hullKeys []string) string {
	if len(hullKeys) == 0 {
		return FactionUnknown
	}

	allANS, allOSP := true, true
	for _, h := range hullKeys {
		if _, ok := c.ans[h]; !ok {
			allANS = false
		}
		if _, ok := c.osp[h]; !ok {
			allOSP = false
		}
	}

	switch {
	case allANS:
		return FactionANS
	case allOSP:
		return FactionOSP
	default:
		return FactionUnknown
	}
}

// ClassifyTeam assigns one faction to every player on the team. Players who
// disconnected and lost all ships report no hulls, so the team consensus is
// applied after all players are seen.
func (c *FactionClassifier) ClassifyTeam(team *Team) error {
	faction := FactionUnknown
	for i := range team.Players {
		switch c.classify(team.Players[i].HullKeys) {
		case FactionANS:
			if faction != FactionOSP {
				faction = FactionANS
			}
		case FactionOSP:
			if faction != FactionANS {
				faction = FactionOSP
			}
		}
	}

	if faction == FactionUnknown {
		return ErrUnknownFaction
	}

	for i := range team.Players {
		team.Players[i].Faction = faction
	}
	return nil
}
