package pipeline

import (
	"os"

	"github.com/gsmcwhirter/go-util/v7/deferutil"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config locates the dedicated server's save directories and the pipeline
// outputs. Paths mirror a stock server install.
type Config struct {
	FleetsDir       string `yaml:"fleets_dir"`
	ReportsDir      string `yaml:"reports_dir"`
	DocsDir         string `yaml:"docs_dir"`
	WhitelistFile   string `yaml:"whitelist_file"`
	AdjustmentsFile string `yaml:"adjustments_file"`
	DatabaseFile    string `yaml:"database_file"`
	Workers         int    `yaml:"workers"`

	// HullFactions overrides the stock faction hull tables, for servers
	// running hull mods.
	HullFactions struct {
		ANS []string `yaml:"ans"`
		OSP []string `yaml:"osp"`
	} `yaml:"hull_factions"`
}

func (c *Config) applyDefaults() {
	if c.DocsDir == "" {
		c.DocsDir = "docs"
	}
	if c.WhitelistFile == "" {
		c.WhitelistFile = "fleet_dlo_whitelist.txt"
	}
	if c.AdjustmentsFile == "" {
		c.AdjustmentsFile = "rank_adjustments.json"
	}
	if c.Workers <= 0 {
		c.Workers = 8
	}
}

// LoadConfig reads a yaml config file and applies defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}

	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "could not open config")
	}
	defer deferutil.CheckDefer(f.Close)

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, errors.Wrap(err, "could not yaml decode config")
	}

	cfg.applyDefaults()
	return cfg, nil
}
