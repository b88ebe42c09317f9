package report

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Reports from crashed or aborted games fail these bounds and are skipped.
const (
	minGameDuration = 200 * time.Second
	maxGameDuration = 7000 * time.Second
)

var ErrBadReportName = errors.New("could not parse report timestamp")

// Layouts the server has used for the filename timestamp suffix.
var reportTimeLayouts = []string{
	"02-Jan-2006 15-04-05",
	"2006-01-02 15:04:05.000000",
}

// TimeFromFilename extracts the match time from a report filename such as
// "Skirmish Report - 14-Apr-2025 22-30-01.xml".
func TimeFromFilename(path string) (time.Time, error) {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	parts := strings.Split(name, " - ")
	stamp := parts[len(parts)-1]

	for _, layout := range reportTimeLayouts {
		if ts, err := time.Parse(layout, stamp); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, errors.Wrapf(ErrBadReportName, "filename %q", filepath.Base(path))
}

// Parse decodes one report body. The server sometimes leaves stray bytes
// after the closing element, so everything past the final '>' is dropped
// before decoding. The classifier assigns player factions; a nil classifier
// uses the stock hull tables.
func Parse(data []byte, matchTime time.Time, classifier *FactionClassifier) (*Match, error) {
	if classifier == nil {
		classifier = StockClassifier()
	}

	if idx := strings.LastIndexByte(string(data), '>'); idx >= 0 {
		data = data[:idx+1]
	}

	var raw battleReport
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "could not xml decode battle report")
	}

	m := &Match{Time: matchTime}

	duration := time.Duration(raw.GameDuration * float64(time.Second))
	if raw.GameStartTimestamp == 0 || !raw.GameFinished || duration < minGameDuration || duration > maxGameDuration {
		return m, nil
	}

	for _, tr := range raw.Teams.Entries {
		team := Team{ID: tr.TeamID}
		for _, pr := range tr.Players.Entries {
			p := Player{
				ID:        pr.AccountID.Value,
				SteamName: pr.PlayerName,
			}
			for _, sr := range pr.Ships.Reports {
				p.HullKeys = append(p.HullKeys, sr.HullKey)
			}
			team.Players = append(team.Players, p)
		}

		if err := classifier.ClassifyTeam(&team); err != nil {
			return nil, errors.Wrapf(err, "team %s", team.ID)
		}

		m.Teams = append(m.Teams, team)
	}

	m.WinningTeam = raw.WinningTeam
	m.Valid = true
	return m, nil
}

// ParseFile reads and decodes the report at path, taking the match time
// from the filename.
func ParseFile(path string, classifier *FactionClassifier) (*Match, error) {
	matchTime, err := TimeFromFilename(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read battle report")
	}

	m, err := Parse(data, matchTime, classifier)
	if err != nil {
		return nil, errors.Wrapf(err, "report %s", filepath.Base(path))
	}

	return m, nil
}
