package standings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeofStars/dlo/pkg/rating"
	"github.com/DukeofStars/dlo/pkg/report"
)

func testMatch(t time.Time, winner string, teamA, teamB []report.Player) *report.Match {
	return &report.Match{
		Valid:       true,
		Time:        t,
		WinningTeam: winner,
		Teams: []report.Team{
			{ID: "TeamA", Players: teamA},
			{ID: "TeamB", Players: teamB},
		},
	}
}

func ansPlayer(id, name string) report.Player {
	return report.Player{ID: id, SteamName: name, Faction: report.FactionANS}
}

func ospPlayer(id, name string) report.Player {
	return report.Player{ID: id, SteamName: name, Faction: report.FactionOSP}
}

func TestProcessMatch(t *testing.T) {
	db := NewDatabase()
	when := time.Date(2025, time.April, 14, 22, 30, 1, 0, time.UTC)

	m := testMatch(when, "TeamA",
		[]report.Player{ansPlayer("a1", "Hawthorne"), ansPlayer("a2", "Quill")},
		[]report.Player{ospPlayer("b1", "Mossback"), ospPlayer("b2", "Tarn")},
	)
	require.NoError(t, db.ProcessMatch(m))

	require.Len(t, db.Players, 4)
	require.Len(t, db.Matches, 1)

	t.Run("tallies", func(t *testing.T) {
		a1 := db.Players["a1"]
		assert.Equal(t, 1, a1.GamesPlayed)
		assert.Equal(t, 1, a1.Wins)
		assert.Equal(t, 1, a1.ANSGames)
		assert.Equal(t, 1, a1.ANSWins)
		assert.Equal(t, 0, a1.OSPGames)

		b1 := db.Players["b1"]
		assert.Equal(t, 1, b1.GamesPlayed)
		assert.Equal(t, 0, b1.Wins)
		assert.Equal(t, 1, b1.OSPGames)
		assert.Equal(t, 0, b1.OSPWins)
	})

	t.Run("ratings moved", func(t *testing.T) {
		assert.Greater(t, db.Players["a1"].Rating.Mu, rating.DefaultMu)
		assert.Less(t, db.Players["b1"].Rating.Mu, rating.DefaultMu)
	})

	t.Run("teammates", func(t *testing.T) {
		a1 := db.Players["a1"]
		require.Contains(t, a1.Teammates, "a2")
		assert.Equal(t, &TeammateRecord{Games: 1, Wins: 1}, a1.Teammates["a2"])
		assert.NotContains(t, a1.Teammates, "b1")

		b1 := db.Players["b1"]
		assert.Equal(t, &TeammateRecord{Games: 1, Wins: 0}, b1.Teammates["b2"])
	})

	t.Run("history tracks the post-update ordinal", func(t *testing.T) {
		a1 := db.Players["a1"]
		require.Len(t, a1.History, 1)
		assert.Equal(t, when, a1.History[0].Time)
		assert.InDelta(t, a1.Rating.Ordinal(), a1.History[0].Ordinal, 1e-9)
	})

	t.Run("match record", func(t *testing.T) {
		rec := db.Matches[0]
		assert.Equal(t, "TeamA", rec.WinningTeam)
		assert.Len(t, rec.Players, 4)
		assert.Greater(t, rec.MatchQuality, 0.0)
		// fresh lobby: avg DLO is the default ordinal
		assert.InDelta(t, 0.0, rec.AvgDLO, 1e-9)
	})
}

func TestProcessMatchUnevenTeams(t *testing.T) {
	db := NewDatabase()
	when := time.Now()

	m := testMatch(when, "TeamB",
		[]report.Player{ansPlayer("a1", "Hawthorne")},
		[]report.Player{ospPlayer("b1", "Mossback"), ospPlayer("b2", "Tarn")},
	)
	require.NoError(t, db.ProcessMatch(m))

	// synthetic fill players never land in the database
	assert.Len(t, db.Players, 3)
	assert.Less(t, db.Players["a1"].Rating.Mu, rating.DefaultMu)
	assert.Greater(t, db.Players["b1"].Rating.Mu, rating.DefaultMu)
}

func TestProcessMatchRejects(t *testing.T) {
	db := NewDatabase()

	t.Run("invalid report", func(t *testing.T) {
		err := db.ProcessMatch(&report.Match{Valid: false})
		assert.ErrorIs(t, err, ErrInvalidMatch)
	})

	t.Run("unknown winner", func(t *testing.T) {
		m := testMatch(time.Now(), "TeamC",
			[]report.Player{ansPlayer("a1", "x")},
			[]report.Player{ospPlayer("b1", "y")},
		)
		assert.ErrorIs(t, db.ProcessMatch(m), ErrUnknownWinner)
	})

	t.Run("state untouched", func(t *testing.T) {
		assert.Empty(t, db.Players)
		assert.Empty(t, db.Matches)
	})
}

func TestLeaderboard(t *testing.T) {
	db := NewDatabase()
	when := time.Now()

	// a1 wins twice against b1
	for i := 0; i < 2; i++ {
		m := testMatch(when.Add(time.Duration(i)*time.Hour), "TeamA",
			[]report.Player{ansPlayer("a1", "Hawthorne")},
			[]report.Player{ospPlayer("b1", "Mossback")},
		)
		require.NoError(t, db.ProcessMatch(m))
	}

	board := db.Leaderboard()
	require.Len(t, board, 2)
	assert.Equal(t, "a1", board[0].ID)
	assert.Equal(t, "b1", board[1].ID)
	assert.Greater(t, board[0].Rating.Ordinal(), board[1].Rating.Ordinal())

	assert.InDelta(t, 1.0, board[0].WinRate(), 1e-9)
	assert.Equal(t, 2, board[1].Losses())
}

func TestBestTeammates(t *testing.T) {
	db := NewDatabase()
	when := time.Now()

	// a1 wins with a2 twice, with a3 once, and loses with a4
	games := []struct {
		mates  []report.Player
		winner string
	}{
		{[]report.Player{ansPlayer("a1", "A1"), ansPlayer("a2", "A2")}, "TeamA"},
		{[]report.Player{ansPlayer("a1", "A1"), ansPlayer("a2", "A2")}, "TeamA"},
		{[]report.Player{ansPlayer("a1", "A1"), ansPlayer("a3", "A3")}, "TeamA"},
		{[]report.Player{ansPlayer("a1", "A1"), ansPlayer("a4", "A4")}, "TeamB"},
	}
	for i, g := range games {
		m := testMatch(when.Add(time.Duration(i)*time.Hour), g.winner,
			g.mates,
			[]report.Player{ospPlayer("b1", "B1"), ospPlayer("b2", "B2")},
		)
		require.NoError(t, db.ProcessMatch(m))
	}

	mates := db.BestTeammates(db.Players["a1"], 3)
	require.Len(t, mates, 2) // a4 never won together
	assert.Equal(t, "a2", mates[0].ID)
	assert.Equal(t, 2, mates[0].Wins)
	assert.Equal(t, "a3", mates[1].ID)

	limited := db.BestTeammates(db.Players["a1"], 1)
	assert.Len(t, limited, 1)
}

func TestDistribution(t *testing.T) {
	db := NewDatabase()
	for i, mu := range []float64{10, 20, 30, 40} {
		db.Players[string(rune('a'+i))] = &Player{
			ID:     string(rune('a' + i)),
			Rating: rating.Rating{Mu: mu, Sigma: 1},
		}
	}

	d := db.Distribution(3)
	assert.Equal(t, 4, d.Players)
	assert.InDelta(t, 22.0, d.Mean, 1e-9) // ordinals 7,17,27,37
	require.Len(t, d.Bins, 3)

	total := 0
	for _, b := range d.Bins {
		total += b.Count
	}
	assert.Equal(t, 4, total)

	t.Run("empty database", func(t *testing.T) {
		empty := NewDatabase()
		assert.Equal(t, Distribution{}, empty.Distribution(5))
	})
}

func TestAdjustments(t *testing.T) {
	db := NewDatabase()
	db.Players["a1"] = &Player{ID: "a1", SteamName: "Hawthorne", Rating: rating.New()}

	adjustments := []Adjustment{
		{SteamID: "a1", SteamName: "Hawthorne", MuAdjustment: -5, Reason: "season reset"},
		{SteamID: "zz", SteamName: "Ghost", MuAdjustment: 2, Reason: "typo"},
	}

	missing := db.ApplyAdjustments(adjustments)
	require.Len(t, missing, 1)
	assert.Equal(t, "zz", missing[0].SteamID)
	assert.InDelta(t, rating.DefaultMu-5, db.Players["a1"].Rating.Mu, 1e-9)
	assert.InDelta(t, rating.DefaultSigma, db.Players["a1"].Rating.Sigma, 1e-9)

	t.Run("load from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rank_adjustments.json")
		data, err := json.Marshal(adjustments)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		loaded, err := LoadAdjustments(path)
		require.NoError(t, err)
		assert.Equal(t, adjustments, loaded)
	})

	t.Run("missing file", func(t *testing.T) {
		loaded, err := LoadAdjustments(filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})
}
