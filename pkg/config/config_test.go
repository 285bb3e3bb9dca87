package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Name   string   `yaml:"name" env:"APP_NAME"`
	Port   int      `yaml:"port" env:"APP_PORT"`
	Debug  bool     `yaml:"debug" env:"APP_DEBUG"`
	Tags   []string `yaml:"tags" env:"APP_TAGS"`
	Limits struct {
		MaxItems int `yaml:"max_items" env:"APP_MAX_ITEMS"`
	} `yaml:"limits"`
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `
name: test-app
port: 8080
debug: false
tags:
  - alpha
  - beta
limits:
  max_items: 50
`)

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.Name != "test-app" {
		t.Fatalf("expected 'test-app', got '%s'", cfg.Name)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected 8080, got %d", cfg.Port)
	}
	if cfg.Debug {
		t.Fatal("expected debug to be false")
	}
	if len(cfg.Tags) != 2 || cfg.Tags[0] != "alpha" {
		t.Fatalf("unexpected tags: %v", cfg.Tags)
	}
	if cfg.Limits.MaxItems != 50 {
		t.Fatalf("expected 50, got %d", cfg.Limits.MaxItems)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	if err := Load("/nonexistent/config.yaml", &cfg); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeTempConfig(t, "name: [unclosed")

	var cfg testConfig
	if err := Load(path, &cfg); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_ExpandsEnvInFile(t *testing.T) {
	t.Setenv("CFG_TEST_NAME", "expanded")
	path := writeTempConfig(t, "name: ${CFG_TEST_NAME}\n")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "expanded" {
		t.Fatalf("expected 'expanded', got '%s'", cfg.Name)
	}
}

func TestEnvOverride(t *testing.T) {
	path := writeTempConfig(t, `
name: default
port: 3000
limits:
  max_items: 10
`)

	t.Setenv("APP_NAME", "from-env")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("APP_MAX_ITEMS", "99")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.Name != "from-env" {
		t.Fatalf("expected 'from-env', got '%s'", cfg.Name)
	}
	if cfg.Port != 9090 {
		t.Fatalf("expected 9090, got %d", cfg.Port)
	}
	if !cfg.Debug {
		t.Fatal("expected debug to be true from env")
	}
	if cfg.Limits.MaxItems != 99 {
		t.Fatalf("expected 99, got %d", cfg.Limits.MaxItems)
	}
}

func TestEnvOverride_Slice(t *testing.T) {
	path := writeTempConfig(t, "tags: [old]\n")

	t.Setenv("APP_TAGS", "a, b,c")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(cfg.Tags) != len(want) {
		t.Fatalf("unexpected tags: %v", cfg.Tags)
	}
	for i, tag := range want {
		if cfg.Tags[i] != tag {
			t.Fatalf("tag %d: expected '%s', got '%s'", i, tag, cfg.Tags[i])
		}
	}
}

func TestEnvOverride_BadNumberIgnored(t *testing.T) {
	path := writeTempConfig(t, "port: 3000\n")

	t.Setenv("APP_PORT", "not-a-number")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("expected file value 3000 to survive, got %d", cfg.Port)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("APP_NAME", "env-only")
	t.Setenv("APP_PORT", "7070")

	cfg := testConfig{Name: "prefilled", Port: 42}
	ApplyEnv(&cfg)

	if cfg.Name != "env-only" {
		t.Fatalf("expected 'env-only', got '%s'", cfg.Name)
	}
	if cfg.Port != 7070 {
		t.Fatalf("expected 7070, got %d", cfg.Port)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg := testConfig{Name: "prefilled", Port: 42}
	if err := LoadOrDefault("/nonexistent/config.yaml", &cfg); err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Name != "prefilled" || cfg.Port != 42 {
		t.Fatalf("defaults were clobbered: %+v", cfg)
	}
}

func TestLoadOrDefault_ExistingFile(t *testing.T) {
	path := writeTempConfig(t, "name: loaded\n")

	cfg := testConfig{Name: "prefilled"}
	if err := LoadOrDefault(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "loaded" {
		t.Fatalf("expected 'loaded', got '%s'", cfg.Name)
	}
}
