package config

import (
	"time"

	"github.com/spf13/viper"
)

type RendererConfig struct {
	Timeout    time.Duration
	Settle     time.Duration
	MaxPolls   int
	ChromePath string
	Headless   bool
	UserAgent  string
	NoSandbox  bool
}

func NewRendererConfig(v *viper.Viper) *RendererConfig {
	v.SetDefault("render_timeout", 45*time.Second)
	v.SetDefault("render_settle", 500*time.Millisecond)
	v.SetDefault("render_max_polls", 20)
	v.SetDefault("render_headless", true)
	return &RendererConfig{
		Timeout:    v.GetDuration("render_timeout"),
		Settle:     v.GetDuration("render_settle"),
		MaxPolls:   v.GetInt("render_max_polls"),
		ChromePath: v.GetString("chrome_path"),
		Headless:   v.GetBool("render_headless"),
		UserAgent:  v.GetString("render_user_agent"),
		NoSandbox:  v.GetBool("render_no_sandbox"),
	}
}
