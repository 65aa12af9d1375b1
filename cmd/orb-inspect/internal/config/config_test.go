package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLoadOptional_MissingFileReturnsEmptyConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Name != "" || cfg.Server.Address != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadOptional_ParsesYaml(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "app:\n  name: inventory\nserver:\n  address: localhost:9999\n")

	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Name != "inventory" {
		t.Errorf("expected app name inventory, got %q", cfg.App.Name)
	}
	if cfg.Server.Address != "localhost:9999" {
		t.Errorf("expected address localhost:9999, got %q", cfg.Server.Address)
	}
}

func TestLoadOptional_InvalidYaml(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "app: [not a mapping\n")

	if _, err := LoadOptional(dir); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestResolve_ConfigValuesWin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/team/inventory\n\ngo 1.24.0\n")
	writeFile(t, dir, ConfigFileName, "app:\n  name: custom\nserver:\n  address: 10.0.0.5:7878\n")

	resolved, err := Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.AppName != "custom" {
		t.Errorf("expected app name custom, got %q", resolved.AppName)
	}
	if resolved.Server != "10.0.0.5:7878" {
		t.Errorf("expected configured server, got %q", resolved.Server)
	}
	if resolved.ModulePath != "example.com/team/inventory" {
		t.Errorf("expected module path from go.mod, got %q", resolved.ModulePath)
	}
}

func TestResolve_DefaultsFromModulePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/team/inventory\n\ngo 1.24.0\n")

	resolved, err := Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.AppName != "inventory" {
		t.Errorf("expected app name derived from module path, got %q", resolved.AppName)
	}
	if resolved.Server != DefaultServerAddress {
		t.Errorf("expected default server address, got %q", resolved.Server)
	}
}

func TestResolve_IgnoresMajorVersionSuffix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/team/inventory/v2\n\ngo 1.24.0\n")

	resolved, err := Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.AppName != "inventory" {
		t.Errorf("expected /v2 suffix ignored, got %q", resolved.AppName)
	}
}

func TestResolve_MissingGoMod(t *testing.T) {
	dir := t.TempDir()

	if _, err := Resolve(dir); err == nil {
		t.Error("expected error without go.mod, got nil")
	}
}

func TestFindProjectRoot_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/app\n")
	nested := filepath.Join(root, "internal", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get cwd: %v", err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}

	found, err := FindProjectRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Resolve symlinks before comparing; t.TempDir may sit behind one.
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(found)
	if gotRoot != wantRoot {
		t.Errorf("expected root %s, got %s", wantRoot, gotRoot)
	}
}
