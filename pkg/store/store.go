// Package store persists a processed ladder snapshot to SQLite so the HTTP
// server can answer queries without replaying the report history.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/DukeofStars/dlo/pkg/rating"
	"github.com/DukeofStars/dlo/pkg/standings"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id TEXT PRIMARY KEY,
	steam_name TEXT NOT NULL,
	mu REAL NOT NULL,
	sigma REAL NOT NULL,
	games_played INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	ans_games INTEGER NOT NULL,
	ans_wins INTEGER NOT NULL,
	osp_games INTEGER NOT NULL,
	osp_wins INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS matches (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	played_at TIMESTAMP NOT NULL,
	winning_team TEXT NOT NULL,
	avg_dlo REAL NOT NULL,
	match_quality REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS match_players (
	match_id INTEGER NOT NULL REFERENCES matches(id),
	player_id TEXT NOT NULL,
	steam_name TEXT NOT NULL,
	faction TEXT NOT NULL,
	won INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS rating_history (
	player_id TEXT NOT NULL,
	sampled_at TIMESTAMP NOT NULL,
	ordinal REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_match_players_match ON match_players(match_id);
CREATE INDEX IF NOT EXISTS idx_rating_history_player ON rating_history(player_id);
`

// Store wraps the snapshot database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open database")
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "could not apply schema")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot replaces the stored state with the given ladder.
func (s *Store) Snapshot(ctx context.Context, db *standings.Database) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "could not begin snapshot")
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"match_players", "matches", "rating_history", "players"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "could not clear %s", table)
		}
	}

	for _, p := range db.Players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO players (id, steam_name, mu, sigma, games_played, wins, ans_games, ans_wins, osp_games, osp_wins)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.SteamName, p.Rating.Mu, p.Rating.Sigma,
			p.GamesPlayed, p.Wins, p.ANSGames, p.ANSWins, p.OSPGames, p.OSPWins,
		); err != nil {
			return errors.Wrapf(err, "could not insert player %s", p.ID)
		}

		for _, pt := range p.History {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO rating_history (player_id, sampled_at, ordinal) VALUES (?, ?, ?)`,
				p.ID, pt.Time, pt.Ordinal,
			); err != nil {
				return errors.Wrapf(err, "could not insert history for %s", p.ID)
			}
		}
	}

	for i := range db.Matches {
		m := &db.Matches[i]
		res, err := tx.ExecContext(ctx,
			`INSERT INTO matches (played_at, winning_team, avg_dlo, match_quality) VALUES (?, ?, ?, ?)`,
			m.Time, m.WinningTeam, m.AvgDLO, m.MatchQuality,
		)
		if err != nil {
			return errors.Wrap(err, "could not insert match")
		}
		matchID, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "could not get match id")
		}

		for _, mp := range m.Players {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO match_players (match_id, player_id, steam_name, faction, won) VALUES (?, ?, ?, ?, ?)`,
				matchID, mp.ID, mp.SteamName, mp.Faction, mp.Won,
			); err != nil {
				return errors.Wrap(err, "could not insert match player")
			}
		}
	}

	return errors.Wrap(tx.Commit(), "could not commit snapshot")
}

// LeaderboardRow is one stored player ordered for display.
type LeaderboardRow struct {
	ID          string  `json:"id"`
	SteamName   string  `json:"steam_name"`
	DLO         float64 `json:"dlo"`
	Mu          float64 `json:"mu"`
	Sigma       float64 `json:"sigma"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
}

// Leaderboard returns stored players by DLO descending.
func (s *Store) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, steam_name, mu, sigma, games_played, wins
		 FROM players ORDER BY (mu - ? * sigma) DESC, id ASC`, rating.Z)
	if err != nil {
		return nil, errors.Wrap(err, "could not query players")
	}
	defer func() { _ = rows.Close() }()

	var board []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.ID, &r.SteamName, &r.Mu, &r.Sigma, &r.GamesPlayed, &r.Wins); err != nil {
			return nil, errors.Wrap(err, "could not scan player")
		}
		r.DLO = r.Mu - rating.Z*r.Sigma
		board = append(board, r)
	}

	return board, errors.Wrap(rows.Err(), "could not iterate players")
}

// PlayerDetail is one stored player plus their rating history.
type PlayerDetail struct {
	LeaderboardRow
	ANSGames int             `json:"ans_games"`
	ANSWins  int             `json:"ans_wins"`
	OSPGames int             `json:"osp_games"`
	OSPWins  int             `json:"osp_wins"`
	History  []HistorySample `json:"history"`
}

type HistorySample struct {
	Time    time.Time `json:"time"`
	Ordinal float64   `json:"ordinal"`
}

var ErrNotFound = errors.New("not found")

// Player returns one stored player by id.
func (s *Store) Player(ctx context.Context, id string) (*PlayerDetail, error) {
	var d PlayerDetail
	err := s.db.QueryRowContext(ctx,
		`SELECT id, steam_name, mu, sigma, games_played, wins, ans_games, ans_wins, osp_games, osp_wins
		 FROM players WHERE id = ?`, id,
	).Scan(&d.ID, &d.SteamName, &d.Mu, &d.Sigma, &d.GamesPlayed, &d.Wins,
		&d.ANSGames, &d.ANSWins, &d.OSPGames, &d.OSPWins)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "player %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not query player")
	}
	d.DLO = d.Mu - rating.Z*d.Sigma

	rows, err := s.db.QueryContext(ctx,
		`SELECT sampled_at, ordinal FROM rating_history WHERE player_id = ? ORDER BY sampled_at ASC`, id)
	if err != nil {
		return nil, errors.Wrap(err, "could not query history")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var h HistorySample
		if err := rows.Scan(&h.Time, &h.Ordinal); err != nil {
			return nil, errors.Wrap(err, "could not scan history")
		}
		d.History = append(d.History, h)
	}

	return &d, errors.Wrap(rows.Err(), "could not iterate history")
}

// MatchRow is one stored match.
type MatchRow struct {
	Time         time.Time `json:"time"`
	WinningTeam  string    `json:"winning_team"`
	AvgDLO       float64   `json:"avg_dlo"`
	MatchQuality float64   `json:"match_quality"`
}

// Matches returns stored matches, newest first.
func (s *Store) Matches(ctx context.Context) ([]MatchRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT played_at, winning_team, avg_dlo, match_quality FROM matches ORDER BY played_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "could not query matches")
	}
	defer func() { _ = rows.Close() }()

	var matches []MatchRow
	for rows.Next() {
		var m MatchRow
		if err := rows.Scan(&m.Time, &m.WinningTeam, &m.AvgDLO, &m.MatchQuality); err != nil {
			return nil, errors.Wrap(err, "could not scan match")
		}
		matches = append(matches, m)
	}

	return matches, errors.Wrap(rows.Err(), "could not iterate matches")
}
