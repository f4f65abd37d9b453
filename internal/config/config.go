// Package config handles loading and persisting user configuration
// for plugkit. Configuration is stored in ~/.plugkit/config.json;
// environment variables override whatever the file says.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

const (
	dirName      = ".plugkit"
	fileName     = "config.json"
	defaultModel = "gpt-4-0613"
)

// Config holds the user's configuration.
type Config struct {
	APIKey  string `json:"api_key,omitempty" env:"OPENAI_API_KEY"`
	Model   string `json:"model" env:"PLUGKIT_MODEL"`
	BaseURL string `json:"base_url,omitempty" env:"PLUGKIT_BASE_URL"`
}

// Dir returns the configuration directory path.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dirName)
}

func configPath() string {
	return filepath.Join(Dir(), fileName)
}

// Load reads the configuration from disk, then applies environment
// overrides. A missing file is not an error; defaults apply.
func Load(ctx context.Context) (*Config, error) {
	cfg := load()

	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	return cfg, nil
}

// load reads only the on-disk config, without env overrides, so the
// setters never bake an environment value into the file.
func load() *Config {
	cfg := &Config{Model: defaultModel}

	data, err := os.ReadFile(configPath())
	if err == nil {
		_ = json.Unmarshal(data, cfg)
	}

	return cfg
}

// save persists the config to disk.
func save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0o600)
}

// SetAPIKey saves the API key to the config file.
func SetAPIKey(key string) error {
	cfg := load()
	cfg.APIKey = key
	return save(cfg)
}

// SetModel saves the model preference to the config file.
func SetModel(model string) error {
	cfg := load()
	cfg.Model = model
	return save(cfg)
}

// SetBaseURL saves an alternative API root to the config file.
func SetBaseURL(baseURL string) error {
	cfg := load()
	cfg.BaseURL = baseURL
	return save(cfg)
}
