package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/docforge/internal/client/models"
	"github.com/dmitrijs2005/docforge/internal/client/services"
	"github.com/dmitrijs2005/docforge/internal/client/workflow"
	"github.com/dmitrijs2005/docforge/internal/common"
)

var errNoArchive = errors.New("no documentation to work with yet, run 'generate' first")

// showError renders msg as "Error: <msg>" unless it already reads that way.
func showError(msg string) {
	if strings.HasPrefix(msg, "Error:") {
		printlnFn(msg)
		return
	}
	printlnFn("Error:", msg)
}

func (a *App) Select(ctx context.Context, path string) error {
	f, err := models.SelectedFileFromPath(path)
	if err != nil {
		showError(err.Error())
		return err
	}

	if err := a.controller.Select(f); err != nil {
		showError(err.Error())
		return err
	}

	kind := models.KindFor(f.Name)
	label := kind.Language
	if label == "" {
		label = f.TypeLabel()
	}
	printlnFn(fmt.Sprintf("Selected %s (%s, %s)", f.Name, f.SizeKB(), label))
	return nil
}

func (a *App) Status(ctx context.Context) error {
	printStatus(a.controller.Snapshot())
	return nil
}

func printStatus(s workflow.Snapshot) {
	if s.File == nil {
		printlnFn("File:     none (use 'select <path>')")
	} else {
		printlnFn(fmt.Sprintf("File:     %s (%s, %s)", s.File.Name, s.File.SizeKB, s.File.Type))
	}
	printlnFn("State:   ", s.State)

	switch s.State {
	case models.StateUploading:
		printlnFn(fmt.Sprintf("Progress: %d%%", int(s.Progress)))
	case models.StateFailed:
		showError(s.Error)
	case models.StateSucceeded:
		if s.Resource != nil {
			printlnFn(fmt.Sprintf("Archive:  %s (%d bytes)", s.Resource.FileName, s.Resource.Size))
			printlnFn("SHA-256: ", s.Resource.SHA256)
		}
	}
}

// Generate submits the staged file and renders progress until the run
// settles. Ctrl-C during the upload resets the workflow.
func (a *App) Generate(ctx context.Context) error {
	changes, unsubscribe := a.controller.Subscribe()
	defer unsubscribe()

	if err := a.controller.Submit(ctx); err != nil {
		showError(err.Error())
		return err
	}

	interrupts, stop := notifyInterrupt()
	defer stop()

	bar := newProgressBar(a.out, a.outFd)
	for {
		s := a.controller.Snapshot()
		bar.Update(s.Progress)
		if s.Settled() {
			break
		}

		select {
		case <-ctx.Done():
			bar.Done()
			a.controller.Reset()
			return ctx.Err()
		case <-interrupts:
			bar.Done()
			a.controller.Reset()
			printlnFn("Cancelled.")
			return context.Canceled
		case _, ok := <-changes:
			if !ok {
				bar.Done()
				return common.ErrClosed
			}
		}
	}
	bar.Done()

	s := a.controller.Snapshot()
	switch s.State {
	case models.StateFailed:
		showError(s.Error)
		return errors.New(s.Error)
	case models.StateSucceeded:
		printlnFn(fmt.Sprintf("Documentation ready: %s (%d bytes). Use 'save', 'inspect' or 'publish'.",
			s.Resource.FileName, s.Resource.Size))
	}
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	a.controller.Reset()
	printlnFn("Workflow reset.")
	return nil
}

func (a *App) Save(ctx context.Context, path string) error {
	res, err := a.controller.Resource()
	if err != nil {
		showError(errNoArchive.Error())
		return errNoArchive
	}

	if path != "" {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			if !GetConfirmation(a.reader, fmt.Sprintf("%s exists, overwrite?", path), a.out) {
				printlnFn("Not saved.")
				return nil
			}
		}
	}

	saved, err := a.downloadService.Save(ctx, res, path)
	if err != nil {
		showError(err.Error())
		return err
	}
	printlnFn("Saved to", saved)
	return nil
}

func (a *App) Inspect(ctx context.Context) error {
	res, err := a.controller.Resource()
	if err != nil {
		showError(errNoArchive.Error())
		return errNoArchive
	}

	entries, err := a.downloadService.Inspect(ctx, res)
	if err != nil {
		showError(err.Error())
		return err
	}

	if len(entries) == 0 {
		printlnFn("The archive is empty.")
		return nil
	}
	for _, e := range entries {
		printlnFn(fmt.Sprintf("  %-32s %8d bytes", e.Name, e.Size))
	}
	return nil
}

func (a *App) Publish(ctx context.Context) error {
	if !a.publishService.Enabled() {
		showError(services.ErrPublishDisabled.Error())
		return services.ErrPublishDisabled
	}

	res, err := a.controller.Resource()
	if err != nil {
		showError(errNoArchive.Error())
		return errNoArchive
	}

	pub, err := a.publishService.Publish(ctx, res)
	if err != nil {
		showError(err.Error())
		return err
	}

	printlnFn("Published:", pub.URL)
	printlnFn("Link expires at", pub.ExpiresAt.Format(time.RFC1123))
	return nil
}

// RunOnce selects path, generates and saves the archive to the output
// directory. Any failure is returned so the caller can exit non-zero.
func (a *App) RunOnce(ctx context.Context, path string) error {
	if err := a.Select(ctx, path); err != nil {
		return err
	}
	if err := a.Generate(ctx); err != nil {
		return err
	}
	return a.Save(ctx, "")
}
