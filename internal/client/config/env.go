package config

import (
	"os"
	"strings"

	"github.com/dmitrijs2005/docforge/internal/common"
)

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// parseEnv overlays the backend base URL from DOCFORGE_API_URL. Blank values
// are ignored so an exported-but-empty variable does not wipe the default.
func parseEnv(cfg *Config) {
	if v, ok := lookupEnv(common.APIBaseURLEnv); ok && strings.TrimSpace(v) != "" {
		cfg.APIBaseURL = strings.TrimSpace(v)
	}
}
