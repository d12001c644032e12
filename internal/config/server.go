package config

import (
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            int
	ServiceName     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// NewServerConfig defaults the write timeout high enough to cover a full render,
// a model call and a test run in one request.
func NewServerConfig(v *viper.Viper) *ServerConfig {
	v.SetDefault("port", 5000)
	v.SetDefault("service_name", "pagetest")
	v.SetDefault("http_read_timeout", 15*time.Second)
	v.SetDefault("http_write_timeout", 10*time.Minute)
	v.SetDefault("shutdown_timeout", 5*time.Second)
	return &ServerConfig{
		Port:            v.GetInt("port"),
		ServiceName:     v.GetString("service_name"),
		ReadTimeout:     v.GetDuration("http_read_timeout"),
		WriteTimeout:    v.GetDuration("http_write_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}
}
