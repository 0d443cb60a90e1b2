// Package config loads the optional .tearc.yaml the CLI reads before
// starting a REPL session.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// REPL holds the cosmetics and startup behavior of `tea repl`.
type REPL struct {
	Prompt             string   `yaml:"prompt"`
	ContinuationPrompt string   `yaml:"continuation_prompt"`
	ResultPrefix       string   `yaml:"result_prefix"`
	ErrorPrefix        string   `yaml:"error_prefix"`
	HistorySize        int      `yaml:"history_size"`
	Preload            []string `yaml:"preload"`
}

// Default returns the REPL config used when no .tearc.yaml is present.
func Default() *REPL {
	return &REPL{
		Prompt:             ">> ",
		ContinuationPrompt: "   ",
		ResultPrefix:       "<- ",
		ErrorPrefix:        "!! ",
		HistorySize:        100,
	}
}

// Load reads path, merging onto the defaults, or returns the defaults
// unchanged if path does not exist.
func Load(path string) (*REPL, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
