// Package config loads the service configuration from YAML with
// environment variable overrides.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ignite/campaign-planner/internal/platform"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Agent     AgentConfig     `yaml:"agent"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Output    OutputConfig    `yaml:"output"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// AgentConfig holds the reasoning capability settings. Provider is one of
// "disabled", "openai" or "bedrock".
type AgentConfig struct {
	Provider       string `yaml:"provider"`
	OpenAIAPIKey   string `yaml:"openai_api_key"`
	OpenAIModel    string `yaml:"openai_model"`
	BedrockModelID string `yaml:"bedrock_model_id"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SimulatorConfig holds simulator settings. Seed 0 means time-seeded.
// Platforms lists extra profiles merged over the built-in table.
type SimulatorConfig struct {
	Seed      int64              `yaml:"seed"`
	Platforms []platform.Profile `yaml:"platforms"`
}

// CalendarConfig holds calendar settings.
type CalendarConfig struct {
	UpcomingWindowDays int `yaml:"upcoming_window_days"`
}

// OutputConfig holds the destination for generated reports and exports.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the configuration file. A missing file is not an
// error; the defaults cover local runs.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Agent.Provider == "" {
		cfg.Agent.Provider = "disabled"
	}
	if cfg.Agent.OpenAIModel == "" {
		cfg.Agent.OpenAIModel = "gpt-4"
	}
	if cfg.Agent.BedrockModelID == "" {
		cfg.Agent.BedrockModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	}
	if cfg.Agent.TimeoutSeconds == 0 {
		cfg.Agent.TimeoutSeconds = 120
	}
	if cfg.Calendar.UpcomingWindowDays == 0 {
		cfg.Calendar.UpcomingWindowDays = 7
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "outputs"
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in deployment.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("AGENT_PROVIDER"); v != "" {
		cfg.Agent.Provider = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Agent.OpenAIAPIKey = v
		// A key implies the openai provider unless one was chosen already.
		if cfg.Agent.Provider == "disabled" {
			cfg.Agent.Provider = "openai"
		}
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Agent.OpenAIModel = v
	}
	if v := os.Getenv("BEDROCK_MODEL_ID"); v != "" {
		cfg.Agent.BedrockModelID = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}

	return cfg, nil
}
