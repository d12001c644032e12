package config

import (
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	DebugMode      bool
	ServerConfig   *ServerConfig
	ArtifactConfig *ArtifactConfig
	RendererConfig *RendererConfig
	ModelConfig    *ModelConfig
	RunnerConfig   *RunnerConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	JwtConfig      *JwtConfig
	LogConfig      *LogConfig
}

// NewSystemConfig reads the configuration from the process environment.
func NewSystemConfig() *AppConfig {
	return Load(NewEnvReader())
}

// NewEnvReader returns a viper instance resolving keys like artifacts_dir
// from environment variables like ARTIFACTS_DIR.
func NewEnvReader() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func Load(v *viper.Viper) *AppConfig {
	v.SetDefault("debug_mode", false)
	return &AppConfig{
		DebugMode:      v.GetBool("debug_mode"),
		ServerConfig:   NewServerConfig(v),
		ArtifactConfig: NewArtifactConfig(v),
		RendererConfig: NewRendererConfig(v),
		ModelConfig:    NewModelConfig(v),
		RunnerConfig:   NewRunnerConfig(v),
		RedisConfig:    NewRedisConfig(v),
		PostgresConfig: NewPostgresConfig(v),
		JwtConfig:      NewJwtConfig(v),
		LogConfig:      NewLogConfig(v),
	}
}
