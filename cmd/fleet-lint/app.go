package main

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/DukeofStars/dlo/pkg/fleet"
)

type App struct {
	rekey   bool
	summary bool
	outDir  string

	files []string
}

func NewApp() *App {
	return &App{}
}

func (a *App) Run() error {
	if len(a.files) == 0 {
		return errors.New("no fleet files given")
	}

	failed := 0
	for _, path := range a.files {
		if err := a.lintFile(path); err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed++
		}
	}

	if failed > 0 {
		return errors.Errorf("%d of %d files failed", failed, len(a.files))
	}

	return nil
}

func (a *App) lintFile(path string) error {
	f, err := fleet.Load(path)
	if err != nil {
		return errors.Wrap(err, "could not load fleet")
	}

	issues := f.Validate()
	for _, issue := range issues {
		fmt.Printf("%s: %s\n", path, issue)
	}

	if a.summary {
		a.printSummary(f)
	}

	if a.rekey {
		if err := a.rekeyFleet(f, path); err != nil {
			return err
		}
	}

	if fleet.HasErrors(issues) {
		return errors.New("validation errors")
	}

	return nil
}

func (a *App) rekeyFleet(f *fleet.Fleet, path string) error {
	f.Rekey()

	dest := path
	if a.outDir != "" {
		dest = filepath.Join(a.outDir, filepath.Base(path))
	}

	if err := f.Save(dest); err != nil {
		return errors.Wrap(err, "could not save rekeyed fleet")
	}
	fmt.Printf("%s: rekeyed -> %s\n", path, dest)

	return nil
}

func (a *App) printSummary(f *fleet.Fleet) {
	s := f.Summarize()

	fmt.Printf("%s [%s] %d/%d points\n", s.Name, s.FactionKey, s.CostTotal, s.TotalPoints)
	for _, ship := range s.Ships {
		fmt.Printf("  %s (%s) %d points, %d sockets\n", ship.Name, ship.HullType, ship.Cost, ship.Sockets)
	}
	for _, m := range s.Munitions {
		fmt.Printf("  %4dx %s\n", m.Quantity, m.MunitionKey)
	}
	for _, t := range s.Templates {
		fmt.Printf("  template %s (%s) %d points\n", t.Name, t.BodyKey, t.Cost)
		if t.Engine != nil {
			fmt.Printf("    engine balance: thrust %.2f maneuver %.2f burn %.2f\n",
				t.Engine.Thrust, t.Engine.Maneuver, t.Engine.BurnTime)
		}
	}
}
