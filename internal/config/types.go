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

// Package config types define the configuration structures used throughout
// sirseer-bugtrace. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for sirseer-bugtrace.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub       GitHubConfig          `yaml:"github"`
	Auth         AuthConfig            `yaml:"auth"`
	Defaults     DefaultsConfig        `yaml:"defaults"`
	DefectLabels []string              `yaml:"defect_labels"`
	Repositories map[string]RepoConfig `yaml:"repositories"`
	RateLimit    RateLimitConfig       `yaml:"rate_limit"`
}

// GitHubConfig contains GitHub-specific settings including the REST API
// endpoint and token environment variable name. This allows easy
// configuration for GitHub Enterprise deployments by specifying custom
// endpoints.
type GitHubConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	TokenEnv    string `yaml:"token_env"`
}

// AuthConfig carries a basic-auth credential pair. A bearer token (from the
// environment variable named by GitHubConfig.TokenEnv, or the --token flag)
// takes precedence over this pair when both are configured.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// DefaultsConfig contains default settings that apply to all analysis runs
// unless overridden by repository-specific settings or command-line flags.
type DefaultsConfig struct {
	PageSize    int    `yaml:"page_size"`
	StateFilter string `yaml:"state_filter"`
	OutputDir   string `yaml:"output_dir"`
}

// RepoConfig contains repository-specific overrides that allow fine-tuning
// analysis behavior for individual repositories. Projects label defects
// inconsistently, so the defect label set is the override used most.
type RepoConfig struct {
	PageSize     int      `yaml:"page_size"`
	DefectLabels []string `yaml:"defect_labels"`
}

// RateLimitConfig controls rate limit handling behavior when interacting
// with the GitHub API. It determines whether the tool should automatically
// wait when rate limited or exit with an error, whether to show progress
// during waits, and an optional client-side pacing rate applied before
// requests are sent.
type RateLimitConfig struct {
	AutoWait          bool    `yaml:"auto_wait"`
	ShowProgress      bool    `yaml:"show_progress"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint: "https://api.github.com",
			TokenEnv:    "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize:    100,
			StateFilter: "all",
			OutputDir:   ".",
		},
		DefectLabels: []string{"bug", "defect", "kind/bug"},
		Repositories: make(map[string]RepoConfig),
		RateLimit: RateLimitConfig{
			AutoWait:     true,
			ShowProgress: true,
		},
	}
}
