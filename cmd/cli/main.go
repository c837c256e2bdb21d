package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/docforge/internal/buildinfo"
	"github.com/dmitrijs2005/docforge/internal/client/cli"
	"github.com/dmitrijs2005/docforge/internal/client/config"
	"github.com/dmitrijs2005/docforge/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.Verbose)

	if cfg.UploadFile == "" {
		buildinfo.PrintBuildData(os.Stdout)
	}

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
