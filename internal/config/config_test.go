package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "127.0.0.1"

agent:
  provider: openai
  openai_api_key: "sk-test"
  openai_model: "gpt-4o"
  timeout_seconds: 30

simulator:
  seed: 42
  platforms:
    - name: Threads
      base_reach: 12000
      engagement_rate: 0.04
      avg_followers: 6000

calendar:
  upcoming_window_days: 14

output:
  dir: "./test-outputs"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Test server config
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	// Test agent config
	assert.Equal(t, "openai", cfg.Agent.Provider)
	assert.Equal(t, "sk-test", cfg.Agent.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.Agent.OpenAIModel)
	assert.Equal(t, 30, cfg.Agent.TimeoutSeconds)

	// Test simulator config
	assert.Equal(t, int64(42), cfg.Simulator.Seed)
	require.Len(t, cfg.Simulator.Platforms, 1)
	assert.Equal(t, "Threads", cfg.Simulator.Platforms[0].Name)
	assert.Equal(t, 12000, cfg.Simulator.Platforms[0].BaseReach)
	assert.Equal(t, 0.04, cfg.Simulator.Platforms[0].EngagementRate)

	// Test calendar and output config
	assert.Equal(t, 14, cfg.Calendar.UpcomingWindowDays)
	assert.Equal(t, "./test-outputs", cfg.Output.Dir)
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("server:\n  port: 3000\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "disabled", cfg.Agent.Provider)
	assert.Equal(t, "gpt-4", cfg.Agent.OpenAIModel)
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", cfg.Agent.BedrockModelID)
	assert.Equal(t, 120, cfg.Agent.TimeoutSeconds)
	assert.Equal(t, int64(0), cfg.Simulator.Seed)
	assert.Empty(t, cfg.Simulator.Platforms)
	assert.Equal(t, 7, cfg.Calendar.UpcomingWindowDays)
	assert.Equal(t, "outputs", cfg.Output.Dir)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "outputs", cfg.Output.Dir)
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("server: [not a map"), 0644)
	require.NoError(t, err)

	_, err = Load(configPath)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("AGENT_PROVIDER", "bedrock")
	t.Setenv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0")
	t.Setenv("OUTPUT_DIR", "/tmp/campaign-out")

	cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "bedrock", cfg.Agent.Provider)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", cfg.Agent.BedrockModelID)
	assert.Equal(t, "/tmp/campaign-out", cfg.Output.Dir)
}

func TestLoadFromEnvAPIKeyEnablesOpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env-test")

	cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Agent.Provider)
	assert.Equal(t, "sk-env-test", cfg.Agent.OpenAIAPIKey)
}
