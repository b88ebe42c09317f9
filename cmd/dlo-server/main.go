package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func run() error {
	app := NewApp()

	pflag.StringVarP(&app.configFile, "config", "c", "", "pipeline config file")
	pflag.StringVarP(&app.listen, "listen", "l", ":8080", "listen address")
	pflag.BoolVarP(&app.watch, "watch", "w", false, "watch the reports directory and re-rank on new reports")
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
