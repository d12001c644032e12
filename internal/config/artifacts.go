package config

import (
	"time"

	"github.com/spf13/viper"
)

// ArtifactConfig locates the script directory. Temp files older than
// StaleTempAge are swept every SweepInterval while serving.
type ArtifactConfig struct {
	Dir           string
	Suffix        string
	SweepInterval time.Duration
	StaleTempAge  time.Duration
}

func NewArtifactConfig(v *viper.Viper) *ArtifactConfig {
	v.SetDefault("artifacts_dir", "tests")
	v.SetDefault("artifact_suffix", ".spec.js")
	v.SetDefault("artifact_sweep_interval", 10*time.Minute)
	v.SetDefault("artifact_stale_temp_age", time.Hour)
	return &ArtifactConfig{
		Dir:           v.GetString("artifacts_dir"),
		Suffix:        v.GetString("artifact_suffix"),
		SweepInterval: v.GetDuration("artifact_sweep_interval"),
		StaleTempAge:  v.GetDuration("artifact_stale_temp_age"),
	}
}
