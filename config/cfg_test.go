package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"themecss/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Styles.RunMode != common.RunModeSync {
		t.Errorf("RunMode = %v, want sync", cfg.Styles.RunMode)
	}
	if cfg.Styles.Diagnostics {
		t.Error("Diagnostics should be off by default")
	}
	if cfg.Styles.LegacyStyleSheets {
		t.Error("LegacyStyleSheets should be off by default")
	}
	if cfg.Styles.ThemesPath != "" || cfg.Styles.DefaultTheme != "" {
		t.Errorf("unexpected theme defaults: %q, %q", cfg.Styles.ThemesPath, cfg.Styles.DefaultTheme)
	}
	// template field must survive processing unexpanded
	if !strings.Contains(cfg.Styles.OutputNameTemplate, "{{") {
		t.Errorf("OutputNameTemplate = %q, expected unexpanded template", cfg.Styles.OutputNameTemplate)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("File level = %q, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	themes := filepath.Join(t.TempDir(), "themes.yaml")
	if err := os.WriteFile(themes, []byte("dark:\n  primary: black\n"), 0644); err != nil {
		t.Fatalf("Failed to write themes file: %v", err)
	}

	path := writeConfig(t, `version: 1
styles:
  run_mode: async
  diagnostics: true
  legacy_stylesheets: true
  themes_path: `+themes+`
  default_theme: dark
  output_name_template: "{{ .Theme }}-{{ .Index }}"
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(t.TempDir(), "test.log")+`
    mode: append
reporting:
  destination: `+filepath.Join(t.TempDir(), "test-report.zip")+`
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Styles.RunMode != common.RunModeAsync {
		t.Errorf("RunMode = %v, want async", cfg.Styles.RunMode)
	}
	if !cfg.Styles.Diagnostics || !cfg.Styles.LegacyStyleSheets {
		t.Error("Expected diagnostics and legacy stylesheets to be enabled")
	}
	if cfg.Styles.DefaultTheme != "dark" {
		t.Errorf("DefaultTheme = %q, want dark", cfg.Styles.DefaultTheme)
	}
	if cfg.Styles.OutputNameTemplate != "{{ .Theme }}-{{ .Index }}" {
		t.Errorf("OutputNameTemplate = %q", cfg.Styles.OutputNameTemplate)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	path := writeConfig(t, `version: 1
styles:
  diagnostics: true
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if !cfg.Styles.Diagnostics {
		t.Error("Expected Diagnostics to be true from config file")
	}
	if cfg.Styles.OutputNameTemplate == "" {
		t.Error("OutputNameTemplate should keep default value")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Console level = %q, want default", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nstyles:\n  diagnostics: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"unknown styles field", "version: 1\nstyles:\n  fix_zip: true\n"},
		{"invalid version", "version: 2\n"},
		{"invalid run mode", "version: 1\nstyles:\n  run_mode: sometimes\n"},
		{"default theme without themes", "version: 1\nstyles:\n  default_theme: dark\n"},
		{"empty output template", "version: 1\nstyles:\n  output_name_template: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Styles.RunMode = common.RunModeAsync

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "run_mode: async") {
		t.Errorf("Dump() should use run mode name, got:\n%s", data)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Version != cfg.Version {
		t.Errorf("Version mismatch after dump/load: got %d, want %d", cfg2.Version, cfg.Version)
	}
	if cfg2.Styles.RunMode != common.RunModeAsync {
		t.Errorf("RunMode after dump/load = %v, want async", cfg2.Styles.RunMode)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		result, err := unmarshalConfig([]byte(`version: 1`), &Config{}, false)
		if err != nil {
			t.Fatalf("unmarshalConfig() error = %v", err)
		}
		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := unmarshalConfig([]byte(`invalid: [yaml`), &Config{}, false); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}
