// Package config loads the postbuilder YAML configuration.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/markdown"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "postbuilder.yaml"

// Config represents the postbuilder configuration file.
type Config struct {
	Posts    PostsConfig    `yaml:"posts" json:"posts"`
	Markdown MarkdownConfig `yaml:"markdown" json:"markdown"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`

	// Source is the file the configuration was read from; empty when defaults were used.
	Source string `yaml:"-" json:"-"`
}

// PostsConfig locates the post sources.
type PostsConfig struct {
	Directory  string   `yaml:"directory" json:"directory"`   // Relative to the working directory
	Extensions []string `yaml:"extensions" json:"extensions"` // Primary extension first
}

// MarkdownConfig selects goldmark features.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions" json:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps" json:"hard_wraps"`
	Unsafe     bool     `yaml:"unsafe" json:"unsafe"`
	HeadingIDs bool     `yaml:"heading_ids" json:"heading_ids"`
}

// OutputConfig controls the export command.
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
	Workers   int    `yaml:"workers" json:"workers"`
}

// LoggingConfig controls the log handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level" json:"level"`
	Format LogFormat `yaml:"format" json:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Posts: PostsConfig{
			Directory:  "posts",
			Extensions: []string{".md"},
		},
		Markdown: MarkdownConfig{
			Extensions: []string{},
		},
		Output: OutputConfig{
			Directory: "./out",
			Workers:   4,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// Load reads the configuration at configPath.
//
// .env and .env.local are loaded first without overriding the existing
// environment, then ${VAR} references in the file are expanded. Keys missing
// from the file keep their default; a missing file yields Default().
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := Default()

	// #nosec G304 -- the config path is chosen by the operator.
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("Configuration file not found, using defaults", logfields.Path(configPath))
	case err != nil:
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to parse config file").
				WithContext("path", configPath).
				Fatal().
				Build()
		}
		cfg.Source = configPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "configuration validation failed").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	for _, w := range NormalizeConfig(cfg).Warnings {
		slog.Warn("Config normalization", slog.String("detail", w))
	}

	return cfg, nil
}

// Init writes an example configuration file holding the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return foundationerrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to marshal config").Build()
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// MarkdownOptions converts the markdown section into renderer options.
func (c *Config) MarkdownOptions() markdown.Options {
	return markdown.Options{
		Extensions: append([]string(nil), c.Markdown.Extensions...),
		HardWraps:  c.Markdown.HardWraps,
		Unsafe:     c.Markdown.Unsafe,
		HeadingIDs: c.Markdown.HeadingIDs,
	}
}
