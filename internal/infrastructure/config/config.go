package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"planner-agent/internal/infrastructure/env"
)

// Config is the full runtime configuration: optional YAML file layered under
// environment variables, with env taking precedence.
type Config struct {
	Model struct {
		Name    string `yaml:"name"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"model"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Workspace string `yaml:"workspace"`

	// APIKey comes from the environment only, never the file.
	APIKey string `yaml:"-"`
}

func defaults() Config {
	var cfg Config
	cfg.Model.BaseURL = "https://openrouter.ai/api/v1"
	cfg.Server.Addr = ":7777"
	cfg.Workspace = "workspace"
	return cfg
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist) and applies environment overrides.
func Load(path string, envService *env.EnvService) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.APIKey = envService.Get("OPENROUTER_API_KEY")
	cfg.Model.Name = envService.GetDefault("OPENROUTER_MODEL_NAME", cfg.Model.Name)
	cfg.Model.BaseURL = envService.GetDefault("OPENROUTER_BASE_URL", cfg.Model.BaseURL)
	cfg.Server.Addr = envService.GetDefault("LISTEN_ADDR", cfg.Server.Addr)
	cfg.Workspace = envService.GetDefault("WORKSPACE_DIR", cfg.Workspace)

	if cfg.Model.Name == "" {
		return cfg, fmt.Errorf("model name is not configured (OPENROUTER_MODEL_NAME or model.name)")
	}
	return cfg, nil
}
