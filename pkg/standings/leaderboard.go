package standings

import (
	"sort"

	"github.com/gonum/stat"
)

// Leaderboard returns players ordered by DLO descending.
func (db *Database) Leaderboard() []*Player {
	players := make([]*Player, 0, len(db.Players))
	for _, p := range db.Players {
		players = append(players, p)
	}

	sort.Slice(players, func(i, j int) bool {
		oi, oj := players[i].Rating.Ordinal(), players[j].Rating.Ordinal()
		if oi != oj {
			return oi > oj
		}
		return players[i].ID < players[j].ID
	})

	return players
}

// Teammate is one row of a player's top-teammates table.
type Teammate struct {
	ID        string
	SteamName string
	Games     int
	Wins      int
	WinRate   float64
}

// BestTeammates returns a player's top teammates by shared wins, then win
// rate. Teammates with no shared wins are skipped.
func (db *Database) BestTeammates(p *Player, limit int) []Teammate {
	mates := make([]Teammate, 0, len(p.Teammates))
	for id, rec := range p.Teammates {
		if rec.Wins == 0 {
			continue
		}
		other, ok := db.Players[id]
		if !ok {
			continue
		}
		mates = append(mates, Teammate{
			ID:        id,
			SteamName: other.SteamName,
			Games:     rec.Games,
			Wins:      rec.Wins,
			WinRate:   float64(rec.Wins) / float64(rec.Games),
		})
	}

	sort.Slice(mates, func(i, j int) bool {
		if mates[i].Wins != mates[j].Wins {
			return mates[i].Wins > mates[j].Wins
		}
		if mates[i].WinRate != mates[j].WinRate {
			return mates[i].WinRate > mates[j].WinRate
		}
		return mates[i].ID < mates[j].ID
	})

	if len(mates) > limit {
		mates = mates[:limit]
	}
	return mates
}

// DistributionBin is one bar of the rank histogram.
type DistributionBin struct {
	Low   float64
	High  float64
	Count int
}

// Distribution summarizes the spread of player DLO values.
type Distribution struct {
	Players int
	Mean    float64
	Median  float64
	StdDev  float64
	Bins    []DistributionBin
}

// Distribution computes the ladder's rank distribution over nBins equal
// buckets between the lowest and highest ordinal.
func (db *Database) Distribution(nBins int) Distribution {
	ordinals := make([]float64, 0, len(db.Players))
	for _, p := range db.Players {
		ordinals = append(ordinals, p.Rating.Ordinal())
	}
	if len(ordinals) == 0 {
		return Distribution{}
	}
	sort.Float64s(ordinals)

	d := Distribution{
		Players: len(ordinals),
		Mean:    stat.Mean(ordinals, nil),
		Median:  stat.Quantile(0.5, stat.Empirical, ordinals, nil),
	}
	if len(ordinals) > 1 {
		d.StdDev = stat.StdDev(ordinals, nil)
	}

	if nBins < 1 {
		return d
	}

	low, high := ordinals[0], ordinals[len(ordinals)-1]
	if low == high {
		d.Bins = []DistributionBin{{Low: low, High: high, Count: len(ordinals)}}
		return d
	}

	dividers := make([]float64, nBins+1)
	width := (high - low) / float64(nBins)
	for i := range dividers {
		dividers[i] = low + float64(i)*width
	}
	// keep the max inside the last bucket
	dividers[nBins] = high + 1e-9

	counts := stat.Histogram(nil, dividers, ordinals, nil)
	for i, c := range counts {
		d.Bins = append(d.Bins, DistributionBin{
			Low:   dividers[i],
			High:  dividers[i+1],
			Count: int(c + 0.5),
		})
	}

	return d
}
