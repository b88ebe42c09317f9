package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/DukeofStars/dlo/pkg/fleet"
	"github.com/DukeofStars/dlo/pkg/pipeline"
	"github.com/DukeofStars/dlo/pkg/store"
)

type App struct {
	configFile string
	listen     string
	watch      bool
	verbose    bool

	cfg    pipeline.Config
	logger *zap.Logger
	store  *store.Store

	rankMu sync.Mutex
	runner *pipeline.Runner
}

func NewApp() *App {
	return &App{}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (a *App) Run() error {
	logger, err := a.buildLogger()
	if err != nil {
		return errors.Wrap(err, "could not build logger")
	}
	a.logger = logger
	defer func() { _ = logger.Sync() }()

	if a.configFile == "" {
		return errors.New("no config file given")
	}

	cfg, err := pipeline.LoadConfig(a.configFile)
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}
	if cfg.DatabaseFile == "" {
		return errors.New("no database file configured")
	}
	a.cfg = cfg
	a.runner = pipeline.New(cfg, logger)

	s, err := store.Open(cfg.DatabaseFile)
	if err != nil {
		return errors.Wrap(err, "could not open store")
	}
	a.store = s
	defer func() { _ = s.Close() }()

	if a.watch {
		if cfg.ReportsDir == "" {
			return errors.New("no reports directory configured to watch")
		}
		stop, err := a.watchReports()
		if err != nil {
			return errors.Wrap(err, "could not watch reports")
		}
		defer stop()
	}

	return a.Serve()
}

func (a *App) buildLogger() (*zap.Logger, error) {
	if a.verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (a *App) Serve() error {
	http.HandleFunc("/api/leaderboard", a.handleLeaderboard)
	http.HandleFunc("/api/players", a.handlePlayer)
	http.HandleFunc("/api/matches", a.handleMatches)
	http.HandleFunc("/api/fleet/validate", a.handleFleetValidate)
	http.Handle("/", http.FileServer(http.Dir(a.cfg.DocsDir)))

	a.logger.Info("serving", zap.String("listen", a.listen), zap.String("docs", a.cfg.DocsDir))

	return http.ListenAndServe(a.listen, nil)
}

func (a *App) writeError(w http.ResponseWriter, estr string, code int) {
	resp := ErrorResponse{
		Error: estr,
	}

	encoder := json.NewEncoder(w)

	w.WriteHeader(code)
	if err := encoder.Encode(resp); err != nil {
		panic(err)
	}
}

func (a *App) writeJSON(w http.ResponseWriter, v interface{}) {
	encoder := json.NewEncoder(w)

	w.WriteHeader(200)
	if err := encoder.Encode(v); err != nil {
		panic(err)
	}
}

func (a *App) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-type", "application/json")

	board, err := a.store.Leaderboard(r.Context())
	if err != nil {
		a.writeError(w, err.Error(), 500)
		return
	}

	a.writeJSON(w, board)
}

func (a *App) handlePlayer(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-type", "application/json")

	id := r.URL.Query().Get("id")
	if id == "" {
		a.writeError(w, "must specify a player id", 400)
		return
	}

	p, err := a.store.Player(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		a.writeError(w, err.Error(), 404)
		return
	}
	if err != nil {
		a.writeError(w, err.Error(), 500)
		return
	}

	a.writeJSON(w, p)
}

func (a *App) handleMatches(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-type", "application/json")

	matches, err := a.store.Matches(r.Context())
	if err != nil {
		a.writeError(w, err.Error(), 500)
		return
	}

	a.writeJSON(w, matches)
}

type ValidateResponse struct {
	Fleet  string   `json:"fleet"`
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

func (a *App) handleFleetValidate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	w.Header().Add("Content-type", "application/json")

	if r.Method != http.MethodPost {
		a.writeError(w, "must POST a fleet file", 405)
		return
	}

	f, err := fleet.Parse(r.Body)
	if err != nil {
		a.writeError(w, errors.Wrap(err, "could not parse fleet").Error(), 400)
		return
	}

	issues := f.Validate()
	resp := ValidateResponse{
		Fleet:  f.Name,
		Valid:  !fleet.HasErrors(issues),
		Issues: make([]string, len(issues)),
	}
	for i, issue := range issues {
		resp.Issues[i] = issue.String()
	}

	a.writeJSON(w, resp)
}

// watchReports re-runs the pipeline whenever a report lands in the reports
// directory. The snapshot rewrites the store in place, so open query handles
// see the new ladder.
func (a *App) watchReports() (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "could not create watcher")
	}

	if err := watcher.Add(a.cfg.ReportsDir); err != nil {
		_ = watcher.Close()
		return nil, errors.Wrap(err, "could not watch reports directory")
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				a.logger.Info("reports changed, re-ranking", zap.String("file", event.Name))
				a.rerank()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.logger.Error("watcher error", zap.Error(err))
			}
		}
	}()

	return func() { _ = watcher.Close() }, nil
}

func (a *App) rerank() {
	a.rankMu.Lock()
	defer a.rankMu.Unlock()

	if _, err := a.runner.Run(context.Background()); err != nil {
		a.logger.Error("re-rank failed", zap.Error(err))
	}
}
