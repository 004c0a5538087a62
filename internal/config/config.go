// Package config handles loading and validating branchbin configuration
// from files, environment variables, and CLI flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// GitHubConfig holds settings for the optional GitHub lookups.
type GitHubConfig struct {
	PRWarnings bool `yaml:"pr_warnings"` // warn about branches with open pull requests
}

// Config holds all branchbin configuration.
type Config struct {
	ProjectsDir     string       `yaml:"projects_dir"`
	ExcludePatterns []string     `yaml:"exclude_patterns"`
	Workers         int          `yaml:"workers"` // parallel worker count for overview
	Confirm         bool         `yaml:"confirm"` // prompt before soft delete and purge
	Journal         bool         `yaml:"journal"` // record lifecycle operations
	GithubToken     string       `yaml:"github_token"`
	GitHub          GitHubConfig `yaml:"github"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ProjectsDir:     filepath.Join(home, "projects"),
		ExcludePatterns: []string{".archive", "vendor"},
		Workers:         defaultWorkers(),
		Confirm:         true,
		Journal:         true,
	}
}

func defaultWorkers() int {
	return min(4, runtime.NumCPU())
}

// Load reads configuration from the config file and environment variables.
// Values are layered: defaults < config file < environment variables.
func Load() (Config, error) {
	cfg := Defaults()

	if err := loadFile(&cfg); err != nil {
		return cfg, err
	}

	applyEnv(&cfg)

	if cfg.Workers < 1 {
		cfg.Workers = defaultWorkers()
	}

	return cfg, nil
}

// Path returns the path to the config file.
func Path() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "branchbin", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "branchbin", "config.yaml")
}

func loadFile(cfg *Config) error {
	path := filepath.Clean(Path())
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no config file is fine
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Expand ~ in projects_dir.
	cfg.ProjectsDir = ExpandHome(cfg.ProjectsDir)
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BRANCHBIN_PROJECTS_DIR"); v != "" {
		cfg.ProjectsDir = ExpandHome(v)
	}
	if v := os.Getenv("BRANCHBIN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("BRANCHBIN_CONFIRM"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Confirm = b
		}
	}
	if v := os.Getenv("BRANCHBIN_JOURNAL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Journal = b
		}
	}
	if v := os.Getenv("BRANCHBIN_GITHUB_PR_WARNINGS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.GitHub.PRWarnings = b
		}
	}
	if v := os.Getenv("BRANCHBIN_GITHUB_TOKEN"); v != "" {
		cfg.GithubToken = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" && cfg.GithubToken == "" {
		cfg.GithubToken = v
	}
	if v := os.Getenv("GH_TOKEN"); v != "" && cfg.GithubToken == "" {
		cfg.GithubToken = v
	}
}

// ExpandHome replaces a leading ~/ in path with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
