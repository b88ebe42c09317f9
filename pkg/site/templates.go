package site

import "html/template"

// The pages share a dark monospace look. Styling is kept inline per page so
// the docs directory stays self-contained.
const baseCSS = `
body { font-family: monospace; margin: 2rem; background-color: #1a1a1a; color: #e0e0e0; }
.header { border-bottom: 2px solid #3a3a3a; margin-bottom: 1rem; padding-bottom: 1rem; }
table { width: 100%; border-collapse: collapse; background-color: #2d2d2d; border-radius: 8px; overflow: hidden; }
th, td { padding: 0.75rem 1rem; border: 1px solid #3a3a3a; text-align: left; }
th { background-color: #333333; color: #00cc99; font-weight: 600; }
tr:nth-child(even) { background-color: #262626; }
tr:hover { background-color: #363636; }
a { color: #00ccff; text-decoration: none; font-weight: 500; }
a:hover { color: #00ffff; text-decoration: underline; }
h1, h2 { color: #ffffff; margin: 0.5rem 0; }
.plot-container { background-color: #2d2d2d; padding: 1rem; border-radius: 8px; margin: 2rem 0; }
`

const navTemplate = `{{define "nav"}}<div class="header">
  <h1>{{.Title}}</h1>
  <a href="{{.Root}}index.html">Player Leaderboard</a>
  | <a href="{{.Root}}rank_distribution.html">DLO Rank Distributions</a>
  | <a href="{{.Root}}match_history.html">Match History</a>
</div>{{end}}`

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>` + baseCSS + `</style>
</head>
<body>
{{template "nav" .}}
{{block "content" .}}{{end}}
</body>
</html>`

const leaderboardContent = `{{define "content"}}<table>
<thead>
<tr><th>Rank</th><th>Player</th><th>DLO</th><th>Matches Played</th><th>&mu; &plusmn; &sigma;</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr>
  <td>{{.Rank}}</td>
  <td><a href="player/{{.ID}}.html">{{.SteamName}}</a></td>
  <td>{{printf "%.2f" .DLO}}</td>
  <td>{{.Games}}</td>
  <td>{{printf "%.2f" .Mu}} &plusmn; {{printf "%.2f" .Sigma}}</td>
</tr>
{{end}}</tbody>
</table>{{end}}`

const playerContent = `{{define "content"}}<table>
<tr><th>Steam Name</th><td>{{.Player.SteamName}}</td></tr>
<tr><th>Player ID</th><td>{{.Player.ID}}</td></tr>
<tr><th>Wins/Losses</th><td>{{.Player.Wins}} / {{.Losses}} ({{printf "%.1f" .WinRatePct}}%)</td></tr>
<tr><th>Current DLO</th><td>{{printf "%.2f" .DLO}}</td></tr>
<tr><th>Mu (&mu;)</th><td>{{printf "%.2f" .Player.Rating.Mu}}</td></tr>
<tr><th>Sigma (&sigma;)</th><td>{{printf "%.2f" .Player.Rating.Sigma}}</td></tr>
<tr><th>ANS Wins/Losses</th><td>{{.Player.ANSWins}} / {{.ANSLosses}}</td></tr>
<tr><th>OSP Wins/Losses</th><td>{{.Player.OSPWins}} / {{.OSPLosses}}</td></tr>
</table>

<h2>Top Teammates</h2>
<table>
<thead><tr><th>Rank</th><th>Teammate</th><th>Win Rate</th><th>Record</th></tr></thead>
<tbody>
{{range .Teammates}}<tr>
  <td>{{.Rank}}</td>
  <td><a href="{{.ID}}.html">{{.SteamName}}</a></td>
  <td>{{printf "%.1f" .WinRatePct}}%</td>
  <td>{{.Wins}}/{{.Games}}</td>
</tr>
{{end}}</tbody>
</table>

<h2>Rating History</h2>
<div class="plot-container">
  <div id="history-plot"></div>
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js" charset="utf-8"></script>
  <script>
  Plotly.newPlot("history-plot", [{
    x: {{.HistoryTimes}},
    y: {{.HistoryDLO}},
    mode: "lines+markers",
    line: {color: "#00ccff", width: 2},
    marker: {size: 6, color: "#00ccff"}
  }], {
    paper_bgcolor: "#1a1a1a",
    plot_bgcolor: "#2d2d2d",
    font: {family: "monospace", color: "#e0e0e0"},
    xaxis: {gridcolor: "#3a3a3a"},
    yaxis: {gridcolor: "#3a3a3a", title: "DLO"}
  }, {displayModeBar: false});
  </script>
</div>{{end}}`

const matchHistoryContent = `{{define "content"}}<table>
<thead><tr><th>Date</th><th>Average DLO</th><th>Match Quality</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
  <td><a href="match/{{.Stamp}}.html">{{.When}}</a></td>
  <td>{{printf "%.2f" .AvgDLO}}</td>
  <td>{{printf "%.2f" .Quality}}</td>
</tr>
{{end}}</tbody>
</table>{{end}}`

const matchDetailContent = `{{define "content"}}<h2>Match Statistics</h2>
<table>
<tr><th>Average DLO</th><td>{{printf "%.2f" .AvgDLO}}</td></tr>
<tr><th>Match Quality</th><td>{{printf "%.2f" .Quality}}</td></tr>
</table>

{{range .Teams}}<h2>{{.Label}}</h2>
<table>
<thead><tr><th>Player</th><th>Faction</th></tr></thead>
<tbody>
{{range .Players}}<tr>
  <td><a href="../player/{{.ID}}.html">{{.SteamName}}</a></td>
  <td>{{.Faction}}</td>
</tr>
{{end}}</tbody>
</table>
{{end}}{{end}}`

const distributionContent = `{{define "content"}}<table>
<tr><th>Players</th><td>{{.Dist.Players}}</td></tr>
<tr><th>Mean</th><td>{{printf "%.1f" .Dist.Mean}}</td></tr>
<tr><th>Median</th><td>{{printf "%.1f" .Dist.Median}}</td></tr>
<tr><th>Std Dev</th><td>{{printf "%.1f" .Dist.StdDev}}</td></tr>
</table>

<div class="plot-container">
  <div id="dist-plot"></div>
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js" charset="utf-8"></script>
  <script>
  Plotly.newPlot("dist-plot", [{
    x: {{.BinCenters}},
    y: {{.BinCounts}},
    type: "bar",
    marker: {color: "#2ecc71", opacity: 0.85}
  }], {
    paper_bgcolor: "#1a1a1a",
    plot_bgcolor: "#2d2d2d",
    font: {family: "monospace", color: "#e0e0e0"},
    xaxis: {title: "DLO Rating", gridcolor: "#3a3a3a"},
    yaxis: {title: "Player Count", gridcolor: "#3a3a3a"}
  }, {displayModeBar: false});
  </script>
</div>{{end}}`

func mustPage(content string) *template.Template {
	return template.Must(template.New("page").Parse(pageTemplate + navTemplate + content))
}

var (
	leaderboardPage  = mustPage(leaderboardContent)
	playerPage       = mustPage(playerContent)
	matchHistoryPage = mustPage(matchHistoryContent)
	matchDetailPage  = mustPage(matchDetailContent)
	distributionPage = mustPage(distributionContent)
)
