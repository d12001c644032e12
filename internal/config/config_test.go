package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(NewEnvReader())

	assert.False(t, cfg.DebugMode)
	assert.Equal(t, 5000, cfg.ServerConfig.Port)
	assert.Equal(t, "tests", cfg.ArtifactConfig.Dir)
	assert.Equal(t, ".spec.js", cfg.ArtifactConfig.Suffix)
	assert.Equal(t, 10*time.Minute, cfg.ArtifactConfig.SweepInterval)
	assert.Equal(t, 45*time.Second, cfg.RendererConfig.Timeout)
	assert.True(t, cfg.RendererConfig.Headless)
	assert.Equal(t, ModelProviderOpenAI, cfg.ModelConfig.Provider)
	assert.Equal(t, 100, cfg.ModelConfig.MaxElements)
	assert.Equal(t, "npx", cfg.RunnerConfig.Command)
	assert.Equal(t, []string{"playwright", "test"}, cfg.RunnerConfig.Args)
	assert.Equal(t, []string{"--reporter=json"}, cfg.RunnerConfig.ReporterArgs)
	assert.Equal(t, 5*time.Minute, cfg.RunnerConfig.Timeout)
	assert.False(t, cfg.RedisConfig.Enabled())
	assert.False(t, cfg.PostgresConfig.Enabled())
	assert.Empty(t, cfg.JwtConfig.Secret)
	assert.Empty(t, cfg.LogConfig.File)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DEBUG_MODE", "true")
	t.Setenv("PORT", "8088")
	t.Setenv("ARTIFACTS_DIR", "/srv/artifacts")
	t.Setenv("RENDER_TIMEOUT", "10s")
	t.Setenv("MODEL_PROVIDER", "command")
	t.Setenv("MODEL_ARGS", "-p --output-format text")
	t.Setenv("RUNNER_TIMEOUT", "90s")
	t.Setenv("REDIS_URL", "localhost:6379")
	t.Setenv("POSTGRES_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load(NewEnvReader())

	assert.True(t, cfg.DebugMode)
	assert.Equal(t, 8088, cfg.ServerConfig.Port)
	assert.Equal(t, "/srv/artifacts", cfg.ArtifactConfig.Dir)
	assert.Equal(t, 10*time.Second, cfg.RendererConfig.Timeout)
	assert.Equal(t, ModelProviderCommand, cfg.ModelConfig.Provider)
	assert.Equal(t, []string{"-p", "--output-format", "text"}, cfg.ModelConfig.Args)
	assert.Equal(t, 90*time.Second, cfg.RunnerConfig.Timeout)
	assert.True(t, cfg.RedisConfig.Enabled())
	assert.True(t, cfg.PostgresConfig.Enabled())
	assert.Equal(t, "s3cret", cfg.JwtConfig.Secret)
}
