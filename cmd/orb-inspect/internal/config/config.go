// Package config resolves orb-inspect settings from the optional
// .orb-inspect.yaml file and the enclosing Go module.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-project configuration file,
// looked up at the module root.
const ConfigFileName = ".orb-inspect.yaml"

// DefaultServerAddress is used when neither the config file nor the
// --server flag names a devtools server.
const DefaultServerAddress = "localhost:7878"

// Config represents the optional .orb-inspect.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Server ServerConfig `yaml:"server"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// ServerConfig contains devtools server settings.
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	Server     string
}

// LoadOptional reads .orb-inspect.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}

	return &cfg, nil
}

// Resolve loads .orb-inspect.yaml (if present) and resolves defaults.
// The app name falls back to the last segment of the module path.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	server := strings.TrimSpace(cfg.Server.Address)
	if server == "" {
		server = DefaultServerAddress
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		Server:     server,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// defaultAppName derives an app name from the module path, ignoring a
// trailing major-version suffix like /v2.
func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "orb_app"
	}
	return base
}
