package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docforge/internal/flagx"
	"github.com/dmitrijs2005/docforge/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "300ms" or as integer nanoseconds. Pointer-free zero values
// mean "not set" and leave the current Config value untouched.
type JsonConfig struct {
	APIBaseURL       string         `json:"api_base_url"`
	OutputDir        string         `json:"output_dir"`
	WebAddr          string         `json:"web_addr"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	ProgressInterval timex.Duration `json:"progress_interval"`
	ProgressStep     float64        `json:"progress_step"`
	ProgressCeiling  float64        `json:"progress_ceiling"`
	RevealDelay      timex.Duration `json:"reveal_delay"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
	PublishTTL       timex.Duration `json:"publish_ttl"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseEnv -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.OutputDir, jc.OutputDir)
	setString(&cfg.WebAddr, jc.WebAddr)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ProgressInterval.Duration > 0 {
		cfg.ProgressInterval = jc.ProgressInterval.Duration
	}
	if jc.RevealDelay.Duration > 0 {
		cfg.RevealDelay = jc.RevealDelay.Duration
	}
	if jc.PublishTTL.Duration > 0 {
		cfg.PublishTTL = jc.PublishTTL.Duration
	}
	if jc.ProgressStep > 0 {
		cfg.ProgressStep = jc.ProgressStep
	}
	if jc.ProgressCeiling > 0 {
		cfg.ProgressCeiling = jc.ProgressCeiling
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
