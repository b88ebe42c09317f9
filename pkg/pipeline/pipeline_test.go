package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeofStars/dlo/pkg/store"
)

const reportTemplate = `<FullAfterActionReport>
  <GameStartTimestamp>1</GameStartTimestamp>
  <GameDuration>1800</GameDuration>
  <GameFinished>true</GameFinished>
  <WinningTeam>%s</WinningTeam>
  <Teams>
    <Team>
      <TeamID>TeamA</TeamID>
      <Players>
        <Player>
          <PlayerName>Hawthorne</PlayerName>
          <AccountId><Value>76561198000000001</Value></AccountId>
          <Ships><ShipBattleReport><HullKey>Stock/Raines Frigate</HullKey></ShipBattleReport></Ships>
        </Player>
      </Players>
    </Team>
    <Team>
      <TeamID>TeamB</TeamID>
      <Players>
        <Player>
          <PlayerName>Mossback</PlayerName>
          <AccountId><Value>76561198000000002</Value></AccountId>
          <Ships><ShipBattleReport><HullKey>Stock/Ocello Cruiser</HullKey></ShipBattleReport></Ships>
        </Player>
      </Players>
    </Team>
  </Teams>
</FullAfterActionReport>`

func writeTestConfigDirs(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()

	cfg := Config{
		FleetsDir:       filepath.Join(root, "Fleets"),
		ReportsDir:      filepath.Join(root, "SkirmishReports"),
		DocsDir:         filepath.Join(root, "docs"),
		WhitelistFile:   filepath.Join(root, "fleet_dlo_whitelist.txt"),
		AdjustmentsFile: filepath.Join(root, "rank_adjustments.json"),
		DatabaseFile:    filepath.Join(root, "dlo.sqlite"),
		Workers:         4,
	}
	require.NoError(t, os.MkdirAll(cfg.FleetsDir, 0o755))
	require.NoError(t, os.MkdirAll(cfg.ReportsDir, 0o755))

	require.NoError(t, os.WriteFile(cfg.WhitelistFile, []byte("76561198000000001\nnot-an-id\n\n"), 0o644))

	// two reports, winner differing, timestamps an hour apart
	for i, winner := range []string{"TeamA", "TeamB"} {
		name := fmt.Sprintf("Skirmish Report - 14-Apr-2025 %02d-30-01.xml", 20+i)
		body := fmt.Sprintf(reportTemplate, winner)
		require.NoError(t, os.WriteFile(filepath.Join(cfg.ReportsDir, name), []byte(body), 0o644))
	}

	// one whitelisted fleet, one not
	require.NoError(t, os.WriteFile(filepath.Join(cfg.FleetsDir, "76561198000000001 Oak.fleet"), []byte("<Fleet />"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.FleetsDir, "76561198000000099 Elm.fleet"), []byte("<Fleet />"), 0o644))

	return cfg
}

func TestRun(t *testing.T) {
	cfg := writeTestConfigDirs(t)
	runner := New(cfg, nil)

	db, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, db.Matches, 2)
	require.Len(t, db.Players, 2)

	t.Run("replay is timestamp ordered", func(t *testing.T) {
		assert.Equal(t, "TeamA", db.Matches[0].WinningTeam)
		assert.Equal(t, "TeamB", db.Matches[1].WinningTeam)
		assert.True(t, db.Matches[0].Time.Before(db.Matches[1].Time))
	})

	t.Run("tallies", func(t *testing.T) {
		p := db.Players["76561198000000001"]
		require.NotNil(t, p)
		assert.Equal(t, 2, p.GamesPlayed)
		assert.Equal(t, 1, p.Wins)
		assert.Equal(t, 2, p.ANSGames)
	})

	t.Run("whitelisted fleets collected", func(t *testing.T) {
		assert.FileExists(t, filepath.Join(cfg.DocsDir, "fleets", "76561198000000001 Oak.fleet"))
		assert.NoFileExists(t, filepath.Join(cfg.DocsDir, "fleets", "76561198000000099 Elm.fleet"))
	})

	t.Run("site rendered", func(t *testing.T) {
		assert.FileExists(t, filepath.Join(cfg.DocsDir, "index.html"))
		assert.FileExists(t, filepath.Join(cfg.DocsDir, "match_history.html"))
	})

	t.Run("store snapshot written", func(t *testing.T) {
		s, err := store.Open(cfg.DatabaseFile)
		require.NoError(t, err)
		defer func() { _ = s.Close() }()

		board, err := s.Leaderboard(context.Background())
		require.NoError(t, err)
		assert.Len(t, board, 2)
	})
}

func TestRunSkipsBrokenReports(t *testing.T) {
	cfg := writeTestConfigDirs(t)

	// unparseable filename and a crashed game in the same directory
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ReportsDir, "notes.txt"), []byte("junk"), 0o644))
	crashed := `<R><GameStartTimestamp>0</GameStartTimestamp><GameDuration>10</GameDuration><GameFinished>false</GameFinished><WinningTeam /><Teams /></R>`
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.ReportsDir, "Skirmish Report - 14-Apr-2025 23-59-59.xml"),
		[]byte(crashed), 0o644))

	db, err := New(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, db.Matches, 2)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dlo.yaml")
	body := `
reports_dir: /srv/saves/SkirmishReports
fleets_dir: /srv/saves/Fleets
hull_factions:
  ans: ["Mod/Custom Hull"]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/saves/SkirmishReports", cfg.ReportsDir)
	assert.Equal(t, []string{"Mod/Custom Hull"}, cfg.HullFactions.ANS)

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, "docs", cfg.DocsDir)
		assert.Equal(t, "fleet_dlo_whitelist.txt", cfg.WhitelistFile)
		assert.Equal(t, "rank_adjustments.json", cfg.AdjustmentsFile)
		assert.Equal(t, 8, cfg.Workers)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
