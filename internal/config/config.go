// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for sirseer-bugtrace with
// support for multiple configuration sources and a well-defined precedence
// order. It enables enterprise deployments to customize behavior through
// configuration files while maintaining flexibility with environment variables
// and command-line overrides.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Repository-specific configuration
//  4. Global configuration file
//  5. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. It's designed to work
// seamlessly with GitHub Enterprise deployments and supports repository-specific
// overrides for fine-grained control.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .sirseer-bugtrace.yaml (current directory)
//   - .sirseer-bugtrace.yml (current directory)
//   - ~/.sirseer/bugtrace.yaml
//   - ~/.sirseer/bugtrace.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~ and environment variables) is performed
// on the output directory.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Try to load config file if path is provided
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".sirseer-bugtrace.yaml",
			".sirseer-bugtrace.yml",
			filepath.Join(os.Getenv("HOME"), ".sirseer", "bugtrace.yaml"),
			filepath.Join(os.Getenv("HOME"), ".sirseer", "bugtrace.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Defaults.OutputDir = expandPath(cfg.Defaults.OutputDir)

	return cfg, nil
}

// LoadConfigForRepo loads configuration and applies repository-specific
// overrides. This allows different settings for different repositories,
// useful when projects use bespoke defect labels or need smaller pages.
//
// The repo parameter should be in "owner/repo" format.
func LoadConfigForRepo(configPath, repo string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Apply repository-specific overrides if they exist
	if repoConfig, ok := cfg.Repositories[repo]; ok {
		if repoConfig.PageSize > 0 {
			cfg.Defaults.PageSize = repoConfig.PageSize
		}
		if len(repoConfig.DefectLabels) > 0 {
			cfg.DefectLabels = repoConfig.DefectLabels
		}
	}

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	// GitHub endpoint
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}

	// Basic-auth credentials
	if user := os.Getenv("GITHUB_USERNAME"); user != "" {
		cfg.Auth.Username = user
	}
	if pwd := os.Getenv("GITHUB_PASSWORD"); pwd != "" {
		cfg.Auth.Password = pwd
	}

	// Defaults
	if pageSize := os.Getenv("SIRSEER_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
	if outputDir := os.Getenv("SIRSEER_OUTPUT_DIR"); outputDir != "" {
		cfg.Defaults.OutputDir = outputDir
	}

	// Defect label set, comma separated
	if labels := os.Getenv("SIRSEER_DEFECT_LABELS"); labels != "" {
		cfg.DefectLabels = splitLabels(labels)
	}

	// Rate limit settings
	if autoWait := os.Getenv("SIRSEER_RATE_LIMIT_AUTO_WAIT"); autoWait != "" {
		cfg.RateLimit.AutoWait = parseBool(autoWait)
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// splitLabels splits a comma-separated label list, trimming whitespace and
// dropping empty entries.
func splitLabels(s string) []string {
	parts := strings.Split(s, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}

// GetPageSize returns the effective page size for a repository, taking
// into account repository-specific overrides. If the repository has a
// specific page size configured, it returns that value. Otherwise, it
// returns the default page size.
func (c *Config) GetPageSize(repo string) int {
	if repoConfig, ok := c.Repositories[repo]; ok && repoConfig.PageSize > 0 {
		return repoConfig.PageSize
	}
	return c.Defaults.PageSize
}

// GetDefectLabels returns the effective defect label set for a repository,
// preferring a repository-specific override when one is configured.
func (c *Config) GetDefectLabels(repo string) []string {
	if repoConfig, ok := c.Repositories[repo]; ok && len(repoConfig.DefectLabels) > 0 {
		return repoConfig.DefectLabels
	}
	return c.DefectLabels
}

// Validate checks if the configuration contains valid values. It ensures
// page sizes are within GitHub's limits, the endpoint is not empty, the
// state filter is one GitHub accepts, and the defect label set is not empty.
// This should be called after loading configuration to catch invalid
// settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("default page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("default page size %d exceeds GitHub API limit of 100", c.Defaults.PageSize)
	}
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	switch c.Defaults.StateFilter {
	case "all", "open", "closed":
	default:
		return fmt.Errorf("state filter must be all, open, or closed, got: %q", c.Defaults.StateFilter)
	}
	if len(c.DefectLabels) == 0 {
		return fmt.Errorf("defect label set cannot be empty")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second cannot be negative, got: %g", c.RateLimit.RequestsPerSecond)
	}
	return nil
}
