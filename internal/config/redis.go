package config

import (
	"time"

	"github.com/spf13/viper"
)

// RedisConfig is disabled while Url is empty.
type RedisConfig struct {
	DB        int
	Url       string
	Password  string
	KeyPrefix string
	LockTTL   time.Duration
}

func NewRedisConfig(v *viper.Viper) *RedisConfig {
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_key_prefix", "pagetest:")
	v.SetDefault("lock_ttl", 3*time.Minute)
	return &RedisConfig{
		DB:        v.GetInt("redis_db"),
		Url:       v.GetString("redis_url"),
		Password:  v.GetString("redis_password"),
		KeyPrefix: v.GetString("redis_key_prefix"),
		LockTTL:   v.GetDuration("lock_ttl"),
	}
}

func (c *RedisConfig) Enabled() bool {
	return c.Url != ""
}
