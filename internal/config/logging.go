package config

import "github.com/spf13/viper"

// LogConfig adds a rotated log file next to stdout when File is set.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func NewLogConfig(v *viper.Viper) *LogConfig {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 28)
	v.SetDefault("log_compress", true)
	return &LogConfig{
		Level:      v.GetString("log_level"),
		File:       v.GetString("log_file"),
		MaxSizeMB:  v.GetInt("log_max_size_mb"),
		MaxBackups: v.GetInt("log_max_backups"),
		MaxAgeDays: v.GetInt("log_max_age_days"),
		Compress:   v.GetBool("log_compress"),
	}
}
