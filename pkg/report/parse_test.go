package report

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportFixture = "Skirmish Report - 14-Apr-2025 22-30-01.xml"

func TestTimeFromFilename(t *testing.T) {
	t.Run("server format", func(t *testing.T) {
		ts, err := TimeFromFilename("/srv/saves/" + reportFixture)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.April, 14, 22, 30, 1, 0, time.UTC), ts)
	})

	t.Run("fractional format", func(t *testing.T) {
		ts, err := TimeFromFilename("Skirmish Report - 2025-03-27 16:04:52.263218.xml")
		require.NoError(t, err)
		assert.Equal(t, 2025, ts.Year())
		assert.Equal(t, time.March, ts.Month())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := TimeFromFilename("notes.txt")
		assert.ErrorIs(t, err, ErrBadReportName)
	})
}

func TestParseFile(t *testing.T) {
	m, err := ParseFile(filepath.Join("testdata", reportFixture), nil)
	require.NoError(t, err)

	assert.True(t, m.Valid)
	assert.Equal(t, "TeamA", m.WinningTeam)
	require.Len(t, m.Teams, 2)

	teamA := m.Team("TeamA")
	require.NotNil(t, teamA)
	require.Len(t, teamA.Players, 2)
	assert.Equal(t, "Hawthorne", teamA.Players[0].SteamName)
	assert.Equal(t, "76561198000000001", teamA.Players[0].ID)
	assert.Equal(t, FactionANS, teamA.Players[0].Faction)

	// no surviving ships, but inherits the team faction
	assert.Empty(t, teamA.Players[1].HullKeys)
	assert.Equal(t, FactionANS, teamA.Players[1].Faction)

	teamB := m.Team("TeamB")
	require.NotNil(t, teamB)
	assert.Equal(t, FactionOSP, teamB.Players[0].Faction)
}

func TestParseTrailingGarbage(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", reportFixture))
	require.NoError(t, err)

	data = append(data, []byte("\x00\x00leftover junk")...)

	m, err := Parse(data, time.Now(), nil)
	require.NoError(t, err)
	assert.True(t, m.Valid)
}

func TestParseInvalidGames(t *testing.T) {
	template := `<Report>
  <GameStartTimestamp>%d</GameStartTimestamp>
  <GameDuration>%s</GameDuration>
  <GameFinished>%t</GameFinished>
  <WinningTeam>TeamA</WinningTeam>
  <Teams />
</Report>`

	cases := []struct {
		name     string
		start    int64
		duration string
		finished bool
	}{
		{"never started", 0, "1000", true},
		{"too short", 1, "60", true},
		{"too long", 1, "8000", true},
		{"not finished", 1, "1000", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := fmt.Sprintf(template, tc.start, tc.duration, tc.finished)
			m, err := Parse([]byte(body), time.Now(), nil)
			require.NoError(t, err)
			assert.False(t, m.Valid)
			assert.Empty(t, m.Teams)
		})
	}
}

func TestClassifyTeam(t *testing.T) {
	c := StockClassifier()

	t.Run("mixed hulls beat unknowns", func(t *testing.T) {
		team := Team{Players: []Player{
			{ID: "a"},
			{ID: "b", HullKeys: []string{"Stock/Journeyman", "Stock/Bulk Feeder"}},
		}}
		require.NoError(t, c.ClassifyTeam(&team))
		assert.Equal(t, FactionOSP, team.Players[0].Faction)
		assert.Equal(t, FactionOSP, team.Players[1].Faction)
	})

	t.Run("no classifiable player", func(t *testing.T) {
		team := Team{Players: []Player{{ID: "a"}}}
		assert.ErrorIs(t, c.ClassifyTeam(&team), ErrUnknownFaction)
	})

	t.Run("custom hull tables", func(t *testing.T) {
		custom := NewClassifier([]string{"Mod/Custom Hull"}, nil)
		team := Team{Players: []Player{{ID: "a", HullKeys: []string{"Mod/Custom Hull"}}}}
		require.NoError(t, custom.ClassifyTeam(&team))
		assert.Equal(t, FactionANS, team.Players[0].Faction)
	})
}
