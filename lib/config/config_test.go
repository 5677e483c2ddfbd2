// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shipboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_addr: ":2022"
log:
  level: debug
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Server.ListenAddr != ":2022" {
		t.Errorf("ListenAddr = %q, want \":2022\"", cfg.Server.ListenAddr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// Unset fields keep their defaults.
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want default text", cfg.Log.Format)
	}
	if cfg.Server.AppTitle != "shipboard" {
		t.Errorf("AppTitle = %q, want default shipboard", cfg.Server.AppTitle)
	}
}

func TestLoadFile_ExpandsHome(t *testing.T) {
	path := writeConfig(t, `
server:
  host_key_path: "${HOME}/keys/host"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if strings.Contains(cfg.Server.HostKeyPath, "${HOME}") {
		t.Errorf("HostKeyPath = %q, ${HOME} not expanded", cfg.Server.HostKeyPath)
	}
	if !strings.HasSuffix(cfg.Server.HostKeyPath, "/keys/host") {
		t.Errorf("HostKeyPath = %q, want .../keys/host", cfg.Server.HostKeyPath)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "log:\n  level: loud\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"empty listen", "server:\n  listen_addr: \"\"\n"},
		{"not yaml", "{{{{\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, test.content)); err == nil {
				t.Errorf("LoadFile() succeeded on %s, want error", test.name)
			}
		})
	}
}

func TestLoad_RequiresEnvVar(t *testing.T) {
	t.Setenv("SHIPBOARD_CONFIG", "")
	if _, err := Load(); err == nil {
		t.Error("Load() without SHIPBOARD_CONFIG succeeded, want error")
	}
}

func TestLoad_UsesEnvVar(t *testing.T) {
	path := writeConfig(t, "server:\n  listen_addr: \":2200\"\n")
	t.Setenv("SHIPBOARD_CONFIG", path)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.ListenAddr != ":2200" {
		t.Errorf("ListenAddr = %q, want \":2200\"", cfg.Server.ListenAddr)
	}
}
