// Package site renders the static DLO site: leaderboard, player pages,
// match history, and the rank-distribution chart.
package site

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"

	"github.com/gsmcwhirter/go-util/v7/deferutil"
	"github.com/pkg/errors"

	"github.com/DukeofStars/dlo/pkg/standings"
)

// matchStampLayout names per-match detail pages.
const matchStampLayout = "20060102_150405"

// Renderer writes the whole site under OutDir.
type Renderer struct {
	OutDir string

	// TeammateLimit caps the top-teammates table; zero means 3.
	TeammateLimit int

	// DistributionBins sizes the rank histogram; zero means 50.
	DistributionBins int
}

func (r *Renderer) teammateLimit() int {
	if r.TeammateLimit <= 0 {
		return 3
	}
	return r.TeammateLimit
}

func (r *Renderer) distributionBins() int {
	if r.DistributionBins <= 0 {
		return 50
	}
	return r.DistributionBins
}

// Render writes every page from the current database state.
func (r *Renderer) Render(db *standings.Database) error {
	for _, dir := range []string{r.OutDir, filepath.Join(r.OutDir, "player"), filepath.Join(r.OutDir, "match")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "could not create site directory")
		}
	}

	if err := r.renderLeaderboard(db); err != nil {
		return errors.Wrap(err, "leaderboard")
	}
	if err := r.renderPlayers(db); err != nil {
		return errors.Wrap(err, "player pages")
	}
	if err := r.renderMatches(db); err != nil {
		return errors.Wrap(err, "match pages")
	}
	if err := r.renderDistribution(db); err != nil {
		return errors.Wrap(err, "rank distribution")
	}

	return nil
}

func (r *Renderer) renderFile(relPath string, tmpl *template.Template, data any) error {
	f, err := os.Create(filepath.Join(r.OutDir, relPath))
	if err != nil {
		return errors.Wrap(err, "could not create page")
	}
	defer deferutil.CheckDefer(f.Close)

	return errors.Wrapf(tmpl.Execute(f, data), "could not render %s", relPath)
}

type PageHeader struct {
	Title string
	Root  string
}

func (r *Renderer) renderLeaderboard(db *standings.Database) error {
	type row struct {
		Rank      int
		ID        string
		SteamName string
		DLO       float64
		Games     int
		Mu        float64
		Sigma     float64
	}

	data := struct {
		PageHeader
		Rows []row
	}{PageHeader: PageHeader{Title: "Player Leaderboard"}}

	for i, p := range db.Leaderboard() {
		data.Rows = append(data.Rows, row{
			Rank:      i + 1,
			ID:        p.ID,
			SteamName: p.SteamName,
			DLO:       p.Rating.Ordinal(),
			Games:     p.GamesPlayed,
			Mu:        p.Rating.Mu,
			Sigma:     p.Rating.Sigma,
		})
	}

	return r.renderFile("index.html", leaderboardPage, data)
}

func (r *Renderer) renderPlayers(db *standings.Database) error {
	for _, p := range db.Players {
		if err := r.renderPlayer(db, p); err != nil {
			return errors.Wrapf(err, "player %s", p.ID)
		}
	}
	return nil
}

func (r *Renderer) renderPlayer(db *standings.Database, p *standings.Player) error {
	type mateRow struct {
		Rank       int
		ID         string
		SteamName  string
		Wins       int
		Games      int
		WinRatePct float64
	}

	data := struct {
		PageHeader
		Player       *standings.Player
		DLO          float64
		Losses       int
		WinRatePct   float64
		ANSLosses    int
		OSPLosses    int
		Teammates    []mateRow
		HistoryTimes []string
		HistoryDLO   []float64
	}{
		PageHeader: PageHeader{Title: p.SteamName + " - Player Statistics", Root: "../"},
		Player:     p,
		DLO:        p.Rating.Ordinal(),
		Losses:     p.Losses(),
		WinRatePct: p.WinRate() * 100,
		ANSLosses:  p.ANSGames - p.ANSWins,
		OSPLosses:  p.OSPGames - p.OSPWins,
	}

	for i, mate := range db.BestTeammates(p, r.teammateLimit()) {
		data.Teammates = append(data.Teammates, mateRow{
			Rank:       i + 1,
			ID:         mate.ID,
			SteamName:  mate.SteamName,
			Wins:       mate.Wins,
			Games:      mate.Games,
			WinRatePct: mate.WinRate * 100,
		})
	}

	history := append([]standings.RatingPoint(nil), p.History...)
	sort.Slice(history, func(i, j int) bool { return history[i].Time.Before(history[j].Time) })
	for _, pt := range history {
		data.HistoryTimes = append(data.HistoryTimes, pt.Time.Format("2006-01-02 15:04:05"))
		data.HistoryDLO = append(data.HistoryDLO, pt.Ordinal)
	}

	return r.renderFile(filepath.Join("player", p.ID+".html"), playerPage, data)
}

func (r *Renderer) renderMatches(db *standings.Database) error {
	type row struct {
		Stamp   string
		When    string
		AvgDLO  float64
		Quality float64
	}

	matches := append([]standings.MatchRecord(nil), db.Matches...)
	sort.Slice(matches, func(i, j int) bool { return matches[i].Time.After(matches[j].Time) })

	data := struct {
		PageHeader
		Rows []row
	}{PageHeader: PageHeader{Title: "Match History"}}

	for i := range matches {
		m := &matches[i]
		stamp := m.Time.Format(matchStampLayout)
		data.Rows = append(data.Rows, row{
			Stamp:   stamp,
			When:    m.Time.Format("2006-01-02 15:04:05"),
			AvgDLO:  m.AvgDLO,
			Quality: m.MatchQuality,
		})

		if err := r.renderMatchDetail(m, stamp); err != nil {
			return errors.Wrapf(err, "match %s", stamp)
		}
	}

	return r.renderFile("match_history.html", matchHistoryPage, data)
}

func (r *Renderer) renderMatchDetail(m *standings.MatchRecord, stamp string) error {
	type teamBlock struct {
		Label   string
		Players []standings.MatchPlayer
	}

	winners := teamBlock{Label: "Winning Team"}
	losers := teamBlock{Label: "Losing Team"}
	for _, p := range m.Players {
		if p.Won {
			winners.Players = append(winners.Players, p)
		} else {
			losers.Players = append(losers.Players, p)
		}
	}

	data := struct {
		PageHeader
		AvgDLO  float64
		Quality float64
		Teams   []teamBlock
	}{
		PageHeader: PageHeader{Title: fmt.Sprintf("Match Details - %s", m.Time.Format("2006-01-02 15:04:05")), Root: "../"},
		AvgDLO:     m.AvgDLO,
		Quality:    m.MatchQuality,
		Teams:      []teamBlock{winners, losers},
	}

	return r.renderFile(filepath.Join("match", stamp+".html"), matchDetailPage, data)
}

func (r *Renderer) renderDistribution(db *standings.Database) error {
	dist := db.Distribution(r.distributionBins())

	data := struct {
		PageHeader
		Dist       standings.Distribution
		BinCenters []float64
		BinCounts  []int
	}{
		PageHeader: PageHeader{Title: "DLO Rank Distribution"},
		Dist:       dist,
	}

	for _, b := range dist.Bins {
		data.BinCenters = append(data.BinCenters, (b.Low+b.High)/2)
		data.BinCounts = append(data.BinCounts, b.Count)
	}

	return r.renderFile("rank_distribution.html", distributionPage, data)
}
