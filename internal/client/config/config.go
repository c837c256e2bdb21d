package config

import (
	"time"

	"github.com/dmitrijs2005/docforge/internal/common"
)

// Config holds runtime settings for the docforge clients.
//
// Fields:
//   - APIBaseURL: base URL of the documentation backend; "/api/generate" is appended.
//   - OutputDir: directory (relative to the working directory) for saved archives.
//   - UploadFile: when set, the CLI runs once for this file instead of the REPL.
//   - WebAddr: listen address of the local web shell.
//   - Verbose: enables debug logging.
//   - RequestTimeout: overall HTTP timeout; zero leaves the request unbounded.
//   - ProgressInterval / ProgressStep / ProgressCeiling: simulated progress tuning.
//   - RevealDelay: pause between a successful response and the download becoming ready.
//   - S3*: optional publishing target for generated archives. Publishing is
//     disabled while S3Bucket is empty.
type Config struct {
	APIBaseURL       string
	OutputDir        string
	UploadFile       string
	WebAddr          string
	Verbose          bool
	RequestTimeout   time.Duration
	ProgressInterval time.Duration
	ProgressStep     float64
	ProgressCeiling  float64
	RevealDelay      time.Duration
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	S3AccessKey      string
	S3SecretKey      string
	PublishTTL       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = common.DefaultAPIBaseURL
	c.OutputDir = "download"
	c.WebAddr = "127.0.0.1:3000"
	c.ProgressInterval = 300 * time.Millisecond
	c.ProgressStep = 5
	c.ProgressCeiling = 90
	c.RevealDelay = 500 * time.Millisecond
	c.S3Region = "us-east-1"
	c.PublishTTL = 15 * time.Minute
}

// PublishEnabled reports whether an S3 bucket was configured.
func (c *Config) PublishEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
