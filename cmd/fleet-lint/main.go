package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func run() error {
	app := NewApp()

	pflag.BoolVarP(&app.rekey, "rekey", "k", false, "rewrite ship keys with fresh GUIDs")
	pflag.BoolVarP(&app.summary, "summary", "s", true, "print a fleet summary")
	pflag.StringVarP(&app.outDir, "out-dir", "o", "", "directory for rekeyed copies (default: in place)")

	pflag.Parse()
	app.files = pflag.Args()

	return app.Run()
}

func main() {
	if err := run(); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
