package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv(configEnvVar, "")
	s, err := loadSettings("")
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}
	if s.REPL.Prompt != "Bisp :> " {
		t.Fatalf("unexpected default prompt %q", s.REPL.Prompt)
	}
	cfg := s.engineConfig()
	if cfg.StepQuota != 0 || cfg.RecursionLimit != 0 || cfg.ValueQuota != 0 {
		t.Fatalf("expected zero bounds so the engine picks defaults, got %+v", cfg)
	}
}

func TestLoadSettingsReadsFile(t *testing.T) {
	path := writeConfig(t, `engine:
  step_quota: 500
  recursion_limit: 12
  value_quota: 4096
repl:
  prompt: "> "
  history_file: /tmp/bisp_history
  plain: true
`)
	s, err := loadSettings(path)
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}
	cfg := s.engineConfig()
	if cfg.StepQuota != 500 || cfg.RecursionLimit != 12 || cfg.ValueQuota != 4096 {
		t.Fatalf("unexpected engine config %+v", cfg)
	}
	if s.REPL.Prompt != "> " || s.REPL.HistoryFile != "/tmp/bisp_history" || !s.REPL.Plain {
		t.Fatalf("unexpected repl settings %+v", s.REPL)
	}
}

func TestLoadSettingsFallsBackToEnv(t *testing.T) {
	path := writeConfig(t, "engine:\n  recursion_limit: 7\n")
	t.Setenv(configEnvVar, path)
	s, err := loadSettings("")
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}
	if s.Engine.RecursionLimit != 7 {
		t.Fatalf("expected env config to be used, got %+v", s.Engine)
	}
	if s.REPL.Prompt != "Bisp :> " {
		t.Fatalf("missing prompt should keep the default, got %q", s.REPL.Prompt)
	}
}

func TestLoadSettingsEmptyFile(t *testing.T) {
	path := writeConfig(t, "")
	if _, err := loadSettings(path); err != nil {
		t.Fatalf("empty config should be accepted: %v", err)
	}
}

func TestLoadSettingsRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "engine:\n  steps: 10\n")
	_, err := loadSettings(path)
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected read error")
	}
	if !strings.Contains(err.Error(), "read config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewEngineFromFlagsRejectsNegativeBounds(t *testing.T) {
	path := writeConfig(t, "engine:\n  value_quota: -1\n")
	_, err := newEngineFromFlags(path)
	if err == nil {
		t.Fatalf("expected engine configuration error")
	}
	if !strings.Contains(err.Error(), "configure engine") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bisp.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
