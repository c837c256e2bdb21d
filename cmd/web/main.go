package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/docforge/internal/buildinfo"
	"github.com/dmitrijs2005/docforge/internal/client/config"
	"github.com/dmitrijs2005/docforge/internal/client/web"
	"github.com/dmitrijs2005/docforge/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.Verbose)

	app, err := web.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
