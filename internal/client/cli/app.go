package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/docforge/internal/client/blob"
	"github.com/dmitrijs2005/docforge/internal/client/client"
	"github.com/dmitrijs2005/docforge/internal/client/config"
	"github.com/dmitrijs2005/docforge/internal/client/services"
	"github.com/dmitrijs2005/docforge/internal/client/workflow"
	"github.com/dmitrijs2005/docforge/internal/logging"
)

// notifyInterrupt delivers Ctrl-C while a generation is running. Tests
// replace it to simulate an interrupt.
var notifyInterrupt = func() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	return ch, func() { signal.Stop(ch) }
}

type App struct {
	config          *config.Config
	logger          logging.Logger
	controller      *workflow.Controller
	downloadService services.DownloadService
	publishService  services.PublishService
	reader          *bufio.Reader
	out             io.Writer
	outFd           int
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	apiClient, err := client.NewDocforgeClientService(c.APIBaseURL, c.RequestTimeout, logger)
	if err != nil {
		log.Printf("error initializing client: %s", err.Error())
		return nil, err
	}

	blobs := blob.NewStore()
	wc := workflow.NewController(apiClient, blobs, logger, workflow.OptionsFromConfig(c))

	ds := services.NewDownloadService(blobs, c.OutputDir, logger)
	ps := services.NewPublishService(c, blobs, logger)

	return &App{
		config:          c,
		logger:          logger,
		controller:      wc,
		downloadService: ds,
		publishService:  ps,
		reader:          bufio.NewReader(os.Stdin),
		out:             os.Stdout,
		outFd:           int(os.Stdout.Fd()),
	}, nil
}

// Run starts the REPL, or generates once when the config names an upload
// file. The returned error is the one-shot failure, if any.
func (a *App) Run(ctx context.Context) error {
	defer a.controller.Close()

	if a.config.UploadFile != "" {
		return a.RunOnce(ctx, a.config.UploadFile)
	}

	a.Root(ctx)
	return nil
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to docforge CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) getStatus() string {
	s := a.controller.Snapshot()
	if s.File == nil {
		return fmt.Sprintf("(%s)", s.State)
	}
	return fmt.Sprintf("(%s %s)", s.File.Name, s.State)
}
