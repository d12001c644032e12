package config

import (
	"time"

	"github.com/spf13/viper"
)

type RunnerConfig struct {
	Command      string
	Args         []string
	ReporterArgs []string
	Timeout      time.Duration
	WaitDelay    time.Duration
}

// NewRunnerConfig builds `npx playwright test <file> --reporter=json` by default.
// Timeout is the outer ceiling on one run, zero disables it.
func NewRunnerConfig(v *viper.Viper) *RunnerConfig {
	v.SetDefault("runner_command", "npx")
	v.SetDefault("runner_args", []string{"playwright", "test"})
	v.SetDefault("runner_reporter_args", []string{"--reporter=json"})
	v.SetDefault("runner_timeout", 5*time.Minute)
	v.SetDefault("runner_wait_delay", 5*time.Second)
	return &RunnerConfig{
		Command:      v.GetString("runner_command"),
		Args:         v.GetStringSlice("runner_args"),
		ReporterArgs: v.GetStringSlice("runner_reporter_args"),
		Timeout:      v.GetDuration("runner_timeout"),
		WaitDelay:    v.GetDuration("runner_wait_delay"),
	}
}
