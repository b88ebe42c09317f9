package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeofStars/dlo/pkg/report"
	"github.com/DukeofStars/dlo/pkg/standings"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "dlo.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func snapshotFixture(t *testing.T) *standings.Database {
	t.Helper()

	db := standings.NewDatabase()
	base := time.Date(2025, time.April, 14, 22, 30, 1, 0, time.UTC)

	for i := 0; i < 2; i++ {
		m := &report.Match{
			Valid:       true,
			Time:        base.Add(time.Duration(i) * time.Hour),
			WinningTeam: "TeamA",
			Teams: []report.Team{
				{ID: "TeamA", Players: []report.Player{{ID: "a1", SteamName: "Hawthorne", Faction: report.FactionANS}}},
				{ID: "TeamB", Players: []report.Player{{ID: "b1", SteamName: "Mossback", Faction: report.FactionOSP}}},
			},
		}
		require.NoError(t, db.ProcessMatch(m))
	}
	return db
}

func TestSnapshotAndQueries(t *testing.T) {
	s := openTestStore(t)
	db := snapshotFixture(t)
	ctx := context.Background()

	require.NoError(t, s.Snapshot(ctx, db))

	t.Run("leaderboard", func(t *testing.T) {
		board, err := s.Leaderboard(ctx)
		require.NoError(t, err)
		require.Len(t, board, 2)

		assert.Equal(t, "a1", board[0].ID)
		assert.Equal(t, "Hawthorne", board[0].SteamName)
		assert.Equal(t, 2, board[0].GamesPlayed)
		assert.Equal(t, 2, board[0].Wins)
		assert.Greater(t, board[0].DLO, board[1].DLO)
	})

	t.Run("player detail", func(t *testing.T) {
		p, err := s.Player(ctx, "b1")
		require.NoError(t, err)

		assert.Equal(t, "Mossback", p.SteamName)
		assert.Equal(t, 2, p.OSPGames)
		assert.Equal(t, 0, p.OSPWins)
		require.Len(t, p.History, 2)
		assert.True(t, p.History[0].Time.Before(p.History[1].Time))
	})

	t.Run("missing player", func(t *testing.T) {
		_, err := s.Player(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("matches", func(t *testing.T) {
		matches, err := s.Matches(ctx)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		// newest first
		assert.True(t, matches[0].Time.After(matches[1].Time))
		assert.Equal(t, "TeamA", matches[0].WinningTeam)
	})
}

func TestSnapshotReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Snapshot(ctx, snapshotFixture(t)))
	require.NoError(t, s.Snapshot(ctx, standings.NewDatabase()))

	board, err := s.Leaderboard(ctx)
	require.NoError(t, err)
	assert.Empty(t, board)

	matches, err := s.Matches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
