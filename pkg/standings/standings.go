// Package standings keeps the ladder state: one record per player, updated
// match by match, plus the processed match history.
package standings

import (
	"time"

	"github.com/DukeofStars/dlo/pkg/rating"
)

// RatingPoint is one sample in a player's rating history.
type RatingPoint struct {
	Time    time.Time
	Ordinal float64
}

// TeammateRecord tracks shared games with one other player.
type TeammateRecord struct {
	Games int
	Wins  int
}

// Player is one account's full ladder record.
type Player struct {
	ID        string
	SteamName string
	Rating    rating.Rating

	GamesPlayed int
	Wins        int
	ANSGames    int
	ANSWins     int
	OSPGames    int
	OSPWins     int

	History   []RatingPoint
	Teammates map[string]*TeammateRecord
}

// Losses is the player's total losses.
func (p *Player) Losses() int {
	return p.GamesPlayed - p.Wins
}

// WinRate is wins over games played, zero for a fresh player.
func (p *Player) WinRate() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.GamesPlayed)
}

// MatchPlayer is one participant as stored in the match history.
type MatchPlayer struct {
	ID        string
	SteamName string
	Faction   string
	Won       bool
}

// MatchRecord is one processed match.
type MatchRecord struct {
	Time         time.Time
	WinningTeam  string
	AvgDLO       float64
	MatchQuality float64
	Players      []MatchPlayer
}

// Database is the in-memory ladder, rebuilt from the full report history on
// every pipeline run.
type Database struct {
	Players map[string]*Player
	Matches []MatchRecord
}

func NewDatabase() *Database {
	return &Database{Players: map[string]*Player{}}
}

func (db *Database) player(id, steamName string) *Player {
	p, ok := db.Players[id]
	if !ok {
		p = &Player{
			ID:        id,
			SteamName: steamName,
			Rating:    rating.New(),
			Teammates: map[string]*TeammateRecord{},
		}
		db.Players[id] = p
	}
	if steamName != "" {
		p.SteamName = steamName
	}
	return p
}
