// Package pipeline runs the full DLO pass: collect whitelisted fleet files,
// replay every skirmish report through the ladder, apply manual
// adjustments, render the static site, and snapshot the store.
package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gsmcwhirter/go-util/v7/deferutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DukeofStars/dlo/pkg/report"
	"github.com/DukeofStars/dlo/pkg/site"
	"github.com/DukeofStars/dlo/pkg/standings"
	"github.com/DukeofStars/dlo/pkg/store"
)

// Runner executes pipeline passes for one config.
type Runner struct {
	cfg        Config
	logger     *zap.Logger
	classifier *report.FactionClassifier
}

func New(cfg Config, logger *zap.Logger) *Runner {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	classifier := report.StockClassifier()
	if len(cfg.HullFactions.ANS) > 0 || len(cfg.HullFactions.OSP) > 0 {
		classifier = report.NewClassifier(cfg.HullFactions.ANS, cfg.HullFactions.OSP)
	}

	return &Runner{cfg: cfg, logger: logger, classifier: classifier}
}

// Run executes one full pass and returns the rebuilt ladder.
func (r *Runner) Run(ctx context.Context) (*standings.Database, error) {
	if r.cfg.FleetsDir != "" {
		if err := r.CollectFleets(); err != nil {
			return nil, errors.Wrap(err, "fleet collection failed")
		}
	}

	matches, err := r.parseReports(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "report parsing failed")
	}

	db := standings.NewDatabase()
	for _, m := range matches {
		if !m.Valid {
			r.logger.Warn("skipping invalid report", zap.Time("match_time", m.Time))
			continue
		}
		if err := db.ProcessMatch(m); err != nil {
			r.logger.Error("could not process match", zap.Time("match_time", m.Time), zap.Error(err))
		}
	}

	adjustments, err := standings.LoadAdjustments(r.cfg.AdjustmentsFile)
	if err != nil {
		return nil, errors.Wrap(err, "could not load adjustments")
	}
	for _, adj := range db.ApplyAdjustments(adjustments) {
		r.logger.Warn("adjustment target not found",
			zap.String("steam_id", adj.SteamID),
			zap.String("steam_name", adj.SteamName),
		)
	}
	if len(adjustments) > 0 {
		r.logger.Info("applied manual adjustments", zap.Int("count", len(adjustments)))
	}

	renderer := &site.Renderer{OutDir: r.cfg.DocsDir}
	if err := renderer.Render(db); err != nil {
		return nil, errors.Wrap(err, "site render failed")
	}

	if r.cfg.DatabaseFile != "" {
		if err := r.snapshot(ctx, db); err != nil {
			return nil, errors.Wrap(err, "store snapshot failed")
		}
	}

	r.logger.Info("pipeline pass complete",
		zap.Int("players", len(db.Players)),
		zap.Int("matches", len(db.Matches)),
	)
	return db, nil
}

// CollectFleets copies whitelisted players' fleet files into the site's
// docs/fleets directory and warns about the rest.
func (r *Runner) CollectFleets() error {
	whitelist, err := loadWhitelist(r.cfg.WhitelistFile)
	if err != nil {
		return err
	}

	destDir := filepath.Join(r.cfg.DocsDir, "fleets")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errors.Wrap(err, "could not create fleets directory")
	}

	entries, err := os.ReadDir(r.cfg.FleetsDir)
	if err != nil {
		return errors.Wrap(err, "could not read fleets directory")
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		listed := false
		for id := range whitelist {
			if strings.Contains(entry.Name(), id) {
				listed = true
				break
			}
		}
		if !listed {
			r.logger.Warn("fleet not in whitelist", zap.String("fleet", entry.Name()))
			continue
		}

		src := filepath.Join(r.cfg.FleetsDir, entry.Name())
		if err := copyFile(src, filepath.Join(destDir, entry.Name())); err != nil {
			return errors.Wrapf(err, "could not save fleet %s", entry.Name())
		}
		r.logger.Info("saving fleet", zap.String("fleet", entry.Name()))
	}

	return nil
}

// loadWhitelist reads one steam id per line, ignoring anything that is not
// all digits.
func loadWhitelist(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read whitelist")
	}

	whitelist := map[string]struct{}{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isDigits(line) {
			continue
		}
		whitelist[line] = struct{}{}
	}

	return whitelist, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "could not open source")
	}
	defer deferutil.CheckDefer(in.Close)

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "could not create destination")
	}
	defer deferutil.CheckDefer(out.Close)

	_, err = io.Copy(out, in)
	return errors.Wrap(err, "could not copy")
}

// parseReports decodes every report in the reports directory on a bounded
// worker pool and returns them in match-time order.
func (r *Runner) parseReports(ctx context.Context) ([]*report.Match, error) {
	entries, err := os.ReadDir(r.cfg.ReportsDir)
	if err != nil {
		return nil, errors.Wrap(err, "could not read reports directory")
	}

	workers := &errgroup.Group{}
	tokenpool := make(chan struct{}, r.cfg.Workers)
	parsed := make(chan *report.Match, r.cfg.Workers)

	collector := &errgroup.Group{}
	var matches []*report.Match
	collector.Go(func() error {
		for m := range parsed {
			matches = append(matches, m)
		}
		return nil
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if err := ctx.Err(); err != nil {
			break
		}

		path := filepath.Join(r.cfg.ReportsDir, entry.Name())
		tokenpool <- struct{}{} // wait until we can work; the worker pulls the token back off
		workers.Go(func() error {
			defer func() {
				<-tokenpool
			}()

			m, err := report.ParseFile(path, r.classifier)
			if err != nil {
				r.logger.Error("could not parse report", zap.String("report", filepath.Base(path)), zap.Error(err))
				return nil
			}

			parsed <- m
			return nil
		})
	}

	if err := workers.Wait(); err != nil {
		close(parsed)
		return nil, errors.Wrap(err, "workers wait failed")
	}
	close(parsed)

	if err := collector.Wait(); err != nil {
		return nil, errors.Wrap(err, "collector wait failed")
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "parse cancelled")
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Time.Before(matches[j].Time) })
	return matches, nil
}

func (r *Runner) snapshot(ctx context.Context, db *standings.Database) error {
	s, err := store.Open(r.cfg.DatabaseFile)
	if err != nil {
		return err
	}
	defer deferutil.CheckDefer(s.Close)

	return s.Snapshot(ctx, db)
}
