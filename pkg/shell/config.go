package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"src.abasic.dev/pkg/eval"
	"src.abasic.dev/pkg/prog"
)

// Config is the content of the configuration file. The interpreter settings
// sit at the top level next to the shell's own keys:
//
//	memory_high: 49151
//	statement_delay: 10ms
//	graphics: false
//	tape: /home/me/basic.tape
//	history: 500
type Config struct {
	Eval eval.Config `yaml:",inline"`
	// Tape file used by STORE and RECALL; empty means no tape.
	Tape string `yaml:"tape"`
	// Database of history and stored variables; empty means the default
	// path.
	DB string `yaml:"db"`
	// Number of history entries kept in the database.
	History int `yaml:"history"`
}

const defaultHistory = 1000

func defaultConfig() *Config {
	return &Config{Eval: eval.DefaultConfig(), History: defaultHistory}
}

// loadConfig reads the configuration file at path over the defaults. A
// missing file is an error only when the path was given explicitly.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	logger.Println("loaded config", path)
	return cfg, nil
}

// applyFlags overrides configuration values with command-line flags.
func (cfg *Config) applyFlags(f *prog.Flags) {
	if f.NoGraphics {
		cfg.Eval.Graphics = false
	}
	if f.Delay != 0 {
		cfg.Eval.StatementDelay = f.Delay
	}
	if f.Tape != "" {
		cfg.Tape = f.Tape
	}
	if f.DB != "" {
		cfg.DB = f.DB
	}
}
