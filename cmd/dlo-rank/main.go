package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func run() error {
	app := NewApp()

	pflag.StringVarP(&app.configFile, "config", "c", "", "pipeline config file")
	pflag.StringVarP(&app.reportsDir, "reports-dir", "r", "", "skirmish reports directory")
	pflag.StringVarP(&app.fleetsDir, "fleets-dir", "f", "", "fleet files directory")
	pflag.StringVarP(&app.docsDir, "docs-dir", "d", "", "site output directory")
	pflag.StringVarP(&app.databaseFile, "database", "b", "", "snapshot database file")
	pflag.BoolVarP(&app.verbose, "verbose", "v", false, "debug logging")

	pflag.Parse()

	return app.Run()
}

func main() {
	if err := run(); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
