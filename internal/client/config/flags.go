package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docforge/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the documentation backend
//	-o string   output directory for saved archives
//	-f string   generate documentation for this file and exit
//	-l string   listen address of the web shell
//	-t int      request timeout in seconds (0 disables the timeout)
//	-v          verbose (debug) logging
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgsWithBool, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgsWithBool(os.Args[1:], []string{"-a", "-o", "-f", "-l", "-t"}, []string{"-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the documentation backend")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "output directory for saved archives")
	fs.StringVar(&cfg.UploadFile, "f", cfg.UploadFile, "generate documentation for this file and exit")
	fs.StringVar(&cfg.WebAddr, "l", cfg.WebAddr, "listen address of the web shell")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 = none)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only overrides earlier layers when it was given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
