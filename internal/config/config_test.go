package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/esevim/stocktrack/internal/config"
	"github.com/esevim/stocktrack/internal/enhance"
)

func writeConfig(t *testing.T, home string, data map[string]any) {
	t.Helper()

	configPath := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}

	raw, err := yaml.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal config data: %v", err)
	}

	if err := os.WriteFile(configPath, raw, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	home := t.TempDir()

	configPath := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}
	if err := os.WriteFile(configPath, nil, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	if cfg.DataFile == "" {
		t.Fatal("expected a default data file")
	}
	if len(cfg.Editors) == 0 {
		t.Fatal("expected default editors")
	}
	if !cfg.Enhancer.Enable {
		t.Fatal("enhancer must default to enabled")
	}
	if cfg.Enhancer.Model != enhance.DefaultModel {
		t.Fatalf("expected default model %q, got %q", enhance.DefaultModel, cfg.Enhancer.Model)
	}
}

func TestLoadAcceptsConfiguredDefaultEditor(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"editors":        []string{"Emir Sevim", "Enis Sevim"},
		"default_editor": "Enis Sevim",
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if cfg.DefaultEditor != "Enis Sevim" {
		t.Fatalf("expected default editor to load, got %q", cfg.DefaultEditor)
	}
}

func TestLoadRejectsUnknownDefaultEditor(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"editors":        []string{"Emir Sevim"},
		"default_editor": "Nobody",
	})

	_, err := config.Load(home)
	if err == nil {
		t.Fatal("expected load to fail for unknown default editor")
	}
	if !strings.Contains(err.Error(), "invalid editor") {
		t.Fatalf("expected invalid editor error, got %v", err)
	}
}

func TestLoadRespectsDisabledEnhancer(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"enhancer": map[string]any{"enable": false},
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if cfg.Enhancer.Enable {
		t.Fatal("an explicit enable: false must stick")
	}
}

func TestValidateEditor(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"editors": []string{"Emir Sevim", "Enis Sevim"},
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	if err := cfg.ValidateEditor("Emir Sevim"); err != nil {
		t.Fatalf("expected known editor to validate: %v", err)
	}

	err = cfg.ValidateEditor("Unknown Person")
	if err == nil {
		t.Fatal("expected unknown editor to be rejected")
	}
	if !strings.Contains(err.Error(), "'Emir Sevim', or 'Enis Sevim'") {
		t.Fatalf("expected the editor list in the error, got %v", err)
	}
}

func TestResolveEditor(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"editors":        []string{"Emir Sevim", "Enis Sevim"},
		"default_editor": "Enis Sevim",
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	got, err := cfg.ResolveEditor("")
	if err != nil || got != "Enis Sevim" {
		t.Fatalf("expected fallback to default editor, got %q, %v", got, err)
	}

	got, err = cfg.ResolveEditor("Emir Sevim")
	if err != nil || got != "Emir Sevim" {
		t.Fatalf("expected explicit editor to resolve, got %q, %v", got, err)
	}

	if _, err := cfg.ResolveEditor("Nobody"); err == nil {
		t.Fatal("expected unknown editor to be rejected")
	}

	cfg.DefaultEditor = ""
	got, err = cfg.ResolveEditor("")
	if err != nil || got != "Emir Sevim" {
		t.Fatalf("expected fallback to first editor, got %q, %v", got, err)
	}
}

func TestAddEditorRejectsDuplicatesAndBlanks(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, map[string]any{
		"editors": []string{"Emir Sevim"},
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	if err := cfg.AddEditor("Emir Sevim"); err == nil {
		t.Fatal("expected duplicate editor to be rejected")
	}
	if err := cfg.AddEditor("   "); err == nil {
		t.Fatal("expected blank editor to be rejected")
	}

	if err := cfg.AddEditor("Deniz Sevim"); err != nil {
		t.Fatalf("expected new editor to be added: %v", err)
	}

	reloaded, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected reload to succeed: %v", err)
	}
	if len(reloaded.Editors) != 2 || reloaded.Editors[1] != "Deniz Sevim" {
		t.Fatalf("expected saved editor roster, got %v", reloaded.Editors)
	}
}

func TestChangeDefaultEditorPersists(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, map[string]any{
		"editors": []string{"Emir Sevim", "Enis Sevim"},
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	if err := cfg.ChangeDefaultEditor("Nobody"); err == nil {
		t.Fatal("expected unknown default editor to be rejected")
	}

	if err := cfg.ChangeDefaultEditor("Enis Sevim"); err != nil {
		t.Fatalf("expected default editor change to succeed: %v", err)
	}

	reloaded, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected reload to succeed: %v", err)
	}
	if reloaded.DefaultEditor != "Enis Sevim" {
		t.Fatalf("expected persisted default editor, got %q", reloaded.DefaultEditor)
	}
}
