package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestValidateConfig_Valid(t *testing.T) {
	origCfgFile := cfgFile
	defer func() { cfgFile = origCfgFile }()

	cfgFile = writeConfigFile(t, `
server:
  listen_address: "127.0.0.1:4040"
query:
  timeout: 10s
`)

	if err := validateConfig(validateCmd, nil); err != nil {
		t.Errorf("validateConfig() error = %v, want nil", err)
	}
}

func TestValidateConfig_InvalidSchedule(t *testing.T) {
	origCfgFile := cfgFile
	defer func() { cfgFile = origCfgFile }()

	cfgFile = writeConfigFile(t, `
retention:
  days: 30
  schedule: "not a cron expression"
`)

	if err := validateConfig(validateCmd, nil); err == nil {
		t.Error("validateConfig() error = nil, want validation failure")
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	origCfgFile := cfgFile
	defer func() { cfgFile = origCfgFile }()

	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	if err := validateConfig(validateCmd, nil); err == nil {
		t.Error("validateConfig() error = nil, want read failure")
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "validate", "version"} {
		if !names[want] {
			t.Errorf("command %q not registered", want)
		}
	}
}
