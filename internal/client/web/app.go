// Package web serves a small local site for the docforge workflow: static
// pages, a JSON API driving the upload controller and the download endpoint
// for generated archives.
package web

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/docforge/internal/client/blob"
	"github.com/dmitrijs2005/docforge/internal/client/client"
	"github.com/dmitrijs2005/docforge/internal/client/config"
	"github.com/dmitrijs2005/docforge/internal/client/services"
	"github.com/dmitrijs2005/docforge/internal/client/workflow"
	"github.com/dmitrijs2005/docforge/internal/logging"
	"github.com/gin-gonic/gin"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	controller *workflow.Controller
	handler    *Handler
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	apiClient, err := client.NewDocforgeClientService(c.APIBaseURL, c.RequestTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("client init error: %w", err)
	}

	if !c.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	blobs := blob.NewStore()
	wc := workflow.NewController(apiClient, blobs, logger, workflow.OptionsFromConfig(c))
	ds := services.NewDownloadService(blobs, c.OutputDir, logger)
	ps := services.NewPublishService(c, blobs, logger)

	return &App{
		config:     c,
		logger:     logger,
		controller: wc,
		handler:    NewHandler(wc, blobs, ds, ps, apiClient.Endpoint(), logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the site until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.controller.Close()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.APIBaseURL)

	app.initSignalHandler(cancelFunc)

	s := NewServer(app.config.WebAddr, app.handler.NewRouter(), app.logger)

	var wg sync.WaitGroup
	var runErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	return runErr
}
