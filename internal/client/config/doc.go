// Package config loads runtime configuration for the docforge clients.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. The DOCFORGE_API_URL environment variable (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the documentation backend
//	-o string   output directory for saved archives
//	-f string   one-shot mode: generate for this file, save, exit
//	-l string   listen address of the web shell
//	-t int      request timeout in seconds (0 = none)
//	-v          verbose logging
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "300ms"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://docs.example.com/",
//	  "output_dir": "download",
//	  "progress_interval": "300ms",
//	  "reveal_delay": "500ms",
//	  "s3_bucket": "docforge",
//	  "s3_base_endpoint": "http://127.0.0.1:9000/"
//	}
package config
