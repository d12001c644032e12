package config

import (
	"time"

	"github.com/spf13/viper"
)

// JwtConfig guards the API when Secret is set.
type JwtConfig struct {
	Secret   string
	Method   string
	TokenTTL time.Duration
}

func NewJwtConfig(v *viper.Viper) *JwtConfig {
	v.SetDefault("jwt_method", "HS256")
	v.SetDefault("jwt_token_ttl", 24*time.Hour)
	return &JwtConfig{
		Secret:   v.GetString("jwt_secret"),
		Method:   v.GetString("jwt_method"),
		TokenTTL: v.GetDuration("jwt_token_ttl"),
	}
}
