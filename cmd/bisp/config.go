package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mgomes/bisp/bisp"
)

const configEnvVar = "BISP_CONFIG"

// settings mirrors the optional YAML file accepted by -config.
type settings struct {
	Engine struct {
		StepQuota      int `yaml:"step_quota"`
		RecursionLimit int `yaml:"recursion_limit"`
		ValueQuota     int `yaml:"value_quota"`
	} `yaml:"engine"`
	REPL struct {
		Prompt      string `yaml:"prompt"`
		HistoryFile string `yaml:"history_file"`
		Plain       bool   `yaml:"plain"`
	} `yaml:"repl"`
}

func defaultSettings() settings {
	var s settings
	s.REPL.Prompt = "Bisp :> "
	return s
}

// loadSettings reads path, falling back to $BISP_CONFIG. With neither set it
// returns the defaults.
func loadSettings(path string) (settings, error) {
	s := defaultSettings()
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	if s.REPL.Prompt == "" {
		s.REPL.Prompt = defaultSettings().REPL.Prompt
	}
	return s, nil
}

func (s settings) engineConfig() bisp.Config {
	return bisp.Config{
		StepQuota:      s.Engine.StepQuota,
		RecursionLimit: s.Engine.RecursionLimit,
		ValueQuota:     s.Engine.ValueQuota,
	}
}
