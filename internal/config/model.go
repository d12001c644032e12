package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	ModelProviderOpenAI  = "openai"
	ModelProviderCommand = "command"
)

type ModelConfig struct {
	Provider     string
	BaseURL      string
	APIKey       string
	Model        string
	Temperature  float64
	Timeout      time.Duration
	Command      string
	Args         []string
	MaxElements  int
	MaxHTMLBytes int
}

func NewModelConfig(v *viper.Viper) *ModelConfig {
	v.SetDefault("model_provider", ModelProviderOpenAI)
	v.SetDefault("model_base_url", "https://api.openai.com/v1")
	v.SetDefault("model_name", "gpt-4o-mini")
	v.SetDefault("model_temperature", 0.2)
	v.SetDefault("model_timeout", 2*time.Minute)
	v.SetDefault("model_max_elements", 100)
	v.SetDefault("model_max_html_bytes", 24000)
	return &ModelConfig{
		Provider:     v.GetString("model_provider"),
		BaseURL:      v.GetString("model_base_url"),
		APIKey:       v.GetString("model_api_key"),
		Model:        v.GetString("model_name"),
		Temperature:  v.GetFloat64("model_temperature"),
		Timeout:      v.GetDuration("model_timeout"),
		Command:      v.GetString("model_command"),
		Args:         v.GetStringSlice("model_args"),
		MaxElements:  v.GetInt("model_max_elements"),
		MaxHTMLBytes: v.GetInt("model_max_html_bytes"),
	}
}
