package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"atrium/internal/page"
)

func TestInitAtriumDirSeedsProject(t *testing.T) {
	dir := t.TempDir()
	if err := InitAtriumDir(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, path := range []string{
		filepath.Join(dir, AtriumDir, "logs"),
		filepath.Join(dir, AtriumDir, "config.yaml"),
		filepath.Join(dir, page.DefaultContentFile),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}
	cfg, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Accent() != DefaultAccent {
		t.Fatalf("accent = %q, want default", cfg.Accent())
	}
	if got := cfg.ContentPath(); got != filepath.Join(dir, page.DefaultContentFile) {
		t.Fatalf("content path = %q", got)
	}
	if !strings.Contains(cfg.FormEndpoint(), "/submit") {
		t.Fatalf("form endpoint = %q", cfg.FormEndpoint())
	}
}

func TestNewConfigWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Project.Version != 1 || cfg.Accent() != DefaultAccent {
		t.Fatalf("unexpected defaults: %+v", cfg.Project)
	}
}

func TestConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, AtriumDir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := `
version: 1
accent: "#FF6B6B"
content: site/page.yaml
form:
  endpoint: https://formspree.example/f/abc
sink:
  enabled: false
`
	if err := os.WriteFile(filepath.Join(dir, AtriumDir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Accent() != "#FF6B6B" {
		t.Fatalf("accent = %q", cfg.Accent())
	}
	if cfg.FormEndpoint() != "https://formspree.example/f/abc" {
		t.Fatalf("endpoint = %q", cfg.FormEndpoint())
	}
	if got := cfg.ContentPath(); got != filepath.Join(dir, "site", "page.yaml") {
		t.Fatalf("content path = %q", got)
	}
	if cfg.Project.Sink.Enabled == nil || *cfg.Project.Sink.Enabled {
		t.Fatalf("sink.enabled should be false")
	}
}

func TestConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad accent", "version: 1\naccent: blue\n"},
		{"relative endpoint", "version: 1\nform:\n  endpoint: /submit\n"},
		{"bad port", "version: 1\nsink:\n  port: 70000\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.MkdirAll(filepath.Join(dir, AtriumDir), 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := os.WriteFile(filepath.Join(dir, AtriumDir, "config.yaml"), []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := NewConfig(dir); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
