package config

import "github.com/spf13/viper"

// PostgresConfig is disabled while Url is empty.
type PostgresConfig struct {
	Url    string
	Schema string
}

func NewPostgresConfig(v *viper.Viper) *PostgresConfig {
	v.SetDefault("postgres_schema", "public")
	return &PostgresConfig{
		Url:    v.GetString("postgres_url"),
		Schema: v.GetString("postgres_schema"),
	}
}

func (c *PostgresConfig) Enabled() bool {
	return c.Url != ""
}
