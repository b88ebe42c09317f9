package standings

import (
	"time"

	"github.com/gonum/stat/combin"
	"github.com/pkg/errors"

	"github.com/DukeofStars/dlo/pkg/rating"
	"github.com/DukeofStars/dlo/pkg/report"
)

var (
	ErrInvalidMatch  = errors.New("match report is not valid")
	ErrUnknownWinner = errors.New("winning team is not in the report")
	ErrTeamCount     = errors.New("expected exactly two teams")
)

// ProcessMatch folds one match into the ladder: tallies, teammate records,
// history, and the rating update. Matches must arrive in timestamp order.
func (db *Database) ProcessMatch(m *report.Match) error {
	if !m.Valid {
		return ErrInvalidMatch
	}
	if m.Team(m.WinningTeam) == nil {
		return errors.Wrapf(ErrUnknownWinner, "team %q", m.WinningTeam)
	}
	if len(m.Teams) != 2 {
		return errors.Wrapf(ErrTeamCount, "got %d", len(m.Teams))
	}

	rec := MatchRecord{
		Time:        m.Time,
		WinningTeam: m.WinningTeam,
	}

	var winnerTeam, loserTeam []*Player
	for _, team := range m.Teams {
		won := team.ID == m.WinningTeam

		members := make([]*Player, len(team.Players))
		for i, rp := range team.Players {
			p := db.player(rp.ID, rp.SteamName)
			members[i] = p

			p.GamesPlayed++
			if won {
				p.Wins++
			}

			switch rp.Faction {
			case report.FactionANS:
				p.ANSGames++
				if won {
					p.ANSWins++
				}
			case report.FactionOSP:
				p.OSPGames++
				if won {
					p.OSPWins++
				}
			}

			p.History = append(p.History, RatingPoint{Time: m.Time, Ordinal: p.Rating.Ordinal()})

			rec.Players = append(rec.Players, MatchPlayer{
				ID:        rp.ID,
				SteamName: rp.SteamName,
				Faction:   rp.Faction,
				Won:       won,
			})
		}

		// teammate tallies over every pair on the team
		if len(members) >= 2 {
			for _, pair := range combin.Combinations(len(members), 2) {
				recordTeammates(members[pair[0]], members[pair[1]], won)
			}
		}

		if won {
			winnerTeam = members
		} else {
			loserTeam = members
		}
	}

	winner := ratingsOf(winnerTeam)
	loser := ratingsOf(loserTeam)

	size := len(winner)
	if len(loser) > size {
		size = len(loser)
	}
	winner = rating.FillTeam(winner, size)
	loser = rating.FillTeam(loser, size)

	// match metrics use the pre-update ratings, synthetic players included
	rec.AvgDLO = averageDLO(winner, loser)
	rec.MatchQuality = rating.PredictDraw([][]rating.Rating{winner, loser})

	rated := rating.Rate([][]rating.Rating{winner, loser})
	applyRatings(winnerTeam, rated[0], m.Time)
	applyRatings(loserTeam, rated[1], m.Time)

	db.Matches = append(db.Matches, rec)
	return nil
}

func recordTeammates(a, b *Player, won bool) {
	for _, pair := range [][2]*Player{{a, b}, {b, a}} {
		rec, ok := pair[0].Teammates[pair[1].ID]
		if !ok {
			rec = &TeammateRecord{}
			pair[0].Teammates[pair[1].ID] = rec
		}
		rec.Games++
		if won {
			rec.Wins++
		}
	}
}

func ratingsOf(players []*Player) []rating.Rating {
	rs := make([]rating.Rating, len(players))
	for i, p := range players {
		rs[i] = p.Rating
	}
	return rs
}

// applyRatings writes updated ratings back, skipping the synthetic tail,
// and rewrites the history sample appended before the update.
func applyRatings(players []*Player, rated []rating.Rating, t time.Time) {
	for i, p := range players {
		p.Rating = rated[i]
		p.History[len(p.History)-1] = RatingPoint{Time: t, Ordinal: p.Rating.Ordinal()}
	}
}

func averageDLO(teams ...[]rating.Rating) float64 {
	muSum, sigmaSum := 0.0, 0.0
	n := 0
	for _, team := range teams {
		for _, r := range team {
			muSum += r.Mu
			sigmaSum += r.Sigma
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return muSum/float64(n) - rating.Z*sigmaSum/float64(n)
}
