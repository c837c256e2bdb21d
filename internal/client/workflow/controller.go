package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/docforge/internal/client/blob"
	"github.com/dmitrijs2005/docforge/internal/client/client"
	"github.com/dmitrijs2005/docforge/internal/client/models"
	"github.com/dmitrijs2005/docforge/internal/common"
	"github.com/dmitrijs2005/docforge/internal/cryptox"
	"github.com/dmitrijs2005/docforge/internal/logging"
)

// Controller drives one upload session. It is safe for concurrent use.
type Controller struct {
	client client.Client
	blobs  *blob.Store
	log    logging.Logger
	opts   Options

	mu           sync.Mutex
	state        models.UploadState
	file         *models.SelectedFile
	progress     float64
	errMsg       string
	resource     *models.DownloadableResource
	ready        bool
	generation   uint64
	pickerResets uint64
	current      *run
	closed       bool
	subs         map[int]chan struct{}
	nextSub      int
}

// run holds everything owned by a single Uploading entry. ctx keeps the
// submitter's values (the request id) for logging and is never cancelled.
type run struct {
	generation uint64
	ctx        context.Context
	cancel     context.CancelFunc
	stopTick   chan struct{}
	tickOnce   sync.Once
	reveal     *time.Timer
}

func (r *run) stopProgress() {
	r.tickOnce.Do(func() { close(r.stopTick) })
}

// release stops the ticker and the reveal timer and cancels the request.
// Safe to call more than once.
func (r *run) release() {
	r.stopProgress()
	r.cancel()
	if r.reveal != nil {
		r.reveal.Stop()
	}
}

func NewController(c client.Client, blobs *blob.Store, log logging.Logger, opts Options) *Controller {
	return &Controller{
		client: c,
		blobs:  blobs,
		log:    log,
		opts:   opts.withDefaults(),
		state:  models.StateIdle,
		subs:   make(map[int]chan struct{}),
	}
}

// Select stages file for the next submission. It clears a previous error,
// and selecting after a finished run starts over from Idle.
func (c *Controller) Select(file *models.SelectedFile) error {
	if file == nil {
		return common.ErrNoFile
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return common.ErrClosed
	}
	if c.state == models.StateUploading {
		return common.ErrBusy
	}

	if c.state == models.StateSucceeded {
		c.releaseRun()
		c.revokeResource()
		c.progress = 0
	}
	if c.state != models.StateIdle {
		c.setState(models.StateIdle)
	}

	c.file = file
	c.errMsg = ""
	c.notify()
	return nil
}

// Submit starts uploading the staged file and returns without waiting for
// the response. Without a staged file it records and returns
// common.ErrNoFile and contacts nobody.
//
// The request is detached from ctx cancellation; only Reset and Close
// abandon it. Values carried by ctx are kept.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return common.ErrClosed
	}
	if c.state == models.StateUploading {
		return common.ErrBusy
	}
	if c.file == nil {
		c.setState(models.StateFailed)
		c.errMsg = common.ErrNoFile.Error()
		c.notify()
		return common.ErrNoFile
	}

	c.releaseRun()
	c.revokeResource()

	c.generation++
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r := &run{
		generation: c.generation,
		ctx:        context.WithoutCancel(ctx),
		cancel:     cancel,
		stopTick:   make(chan struct{}),
	}
	c.current = r

	c.setState(models.StateUploading)
	c.progress = 0
	c.errMsg = ""
	c.ready = false
	file := c.file
	c.notify()

	c.log.Info(ctx, "upload started", "file", file.Name, "size", file.Size, "generation", r.generation)

	go c.tick(r)
	go c.execute(runCtx, r, file)

	return nil
}

// Reset returns to Idle from any state: the run is released, the staged
// file and error are cleared, progress drops to 0 and the archive is revoked.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// Close resets the controller and rejects any further use. Subscribers are
// released.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.resetLocked()
	c.closed = true
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}

func (c *Controller) resetLocked() {
	c.releaseRun()
	c.revokeResource()

	// Anything still in flight belongs to an older generation now.
	c.generation++
	c.file = nil
	c.progress = 0
	c.errMsg = ""
	c.ready = false
	c.setState(models.StateIdle)
	c.pickerResets++
	c.notify()
}

// Snapshot returns the current visible state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:         c.state,
		File:          fileInfo(c.file),
		Progress:      c.progress,
		Error:         c.errMsg,
		DownloadReady: c.ready,
		Generation:    c.generation,
		PickerResets:  c.pickerResets,
	}
	s.Icon = models.IconNoFile
	if s.File != nil {
		s.Icon = s.File.Icon
	}
	if c.resource != nil {
		res := *c.resource
		s.Resource = &res
	}
	return s
}

// Subscribe returns a channel that receives a signal after state changes.
// Signals coalesce: read Snapshot after each one. The channel is closed by
// Close; call the returned function to unsubscribe earlier.
func (c *Controller) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan struct{}, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

// Wait blocks until the current run has settled (see Snapshot.Settled) or
// ctx is done.
func (c *Controller) Wait(ctx context.Context) (Snapshot, error) {
	ch, unsubscribe := c.Subscribe()
	defer unsubscribe()

	for {
		s := c.Snapshot()
		if s.Settled() {
			return s, nil
		}
		select {
		case <-ctx.Done():
			return s, ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return c.Snapshot(), common.ErrClosed
			}
		}
	}
}

// Resource returns the ready archive, or common.ErrorNotFound when no
// download is on offer.
func (c *Controller) Resource() (models.DownloadableResource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resource == nil || !c.ready {
		return models.DownloadableResource{}, common.ErrorNotFound
	}
	return *c.resource, nil
}

func (c *Controller) tick(r *run) {
	t := time.NewTicker(c.opts.ProgressInterval)
	defer t.Stop()

	for {
		select {
		case <-r.stopTick:
			return
		case <-t.C:
			if !c.advance(r) {
				return
			}
		}
	}
}

// advance adds one random step and reports whether ticking should continue.
func (c *Controller) advance(r *run) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.generation != c.generation || c.state != models.StateUploading {
		return false
	}
	// A resolved run sits at 100 until its body is read.
	if c.progress >= c.opts.ProgressCeiling {
		return false
	}

	next := c.progress + c.opts.Rand()*c.opts.ProgressStep
	if next >= c.opts.ProgressCeiling {
		c.progress = c.opts.ProgressCeiling
		c.notify()
		return false
	}
	if next > c.progress {
		c.progress = next
		c.notify()
	}
	return true
}

func (c *Controller) execute(ctx context.Context, r *run, file *models.SelectedFile) {
	resp, err := c.client.SubmitFile(ctx, file)
	if err != nil {
		c.fail(r, err)
		return
	}
	defer resp.Body.Close()

	if !c.resolved(r) {
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.fail(r, fmt.Errorf("read response: %w", err))
		return
	}

	contentType := resp.ContentType()
	if contentType == "" {
		contentType = common.ArchiveContentType
	}
	c.succeed(r, data, contentType)
}

// resolved records a successful response: the ticker stops and progress is
// forced to 100. It reports false when the run is stale.
func (c *Controller) resolved(r *run) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.generation != c.generation || c.state != models.StateUploading {
		c.log.Debug(r.ctx, "discarding stale response", "generation", r.generation)
		return false
	}

	r.stopProgress()
	c.progress = 100
	c.notify()
	return true
}

func (c *Controller) succeed(r *run, data []byte, contentType string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.generation != c.generation || c.state != models.StateUploading {
		common.WipeByteArray(data)
		c.log.Debug(r.ctx, "discarding stale archive", "generation", r.generation)
		return
	}

	locator := c.blobs.Create(data, contentType)
	c.resource = &models.DownloadableResource{
		Locator:     locator,
		FileName:    common.ArchiveFileName,
		Size:        int64(len(data)),
		ContentType: contentType,
		SHA256:      cryptox.Checksum(data),
		CreatedAt:   time.Now(),
	}
	c.setState(models.StateSucceeded)
	r.cancel()

	c.log.Info(r.ctx, "archive ready", "locator", locator, "size", len(data), "generation", r.generation)

	if c.opts.RevealDelay <= 0 {
		c.ready = true
	} else {
		r.reveal = time.AfterFunc(c.opts.RevealDelay, func() { c.reveal(r) })
	}
	c.notify()
}

func (c *Controller) reveal(r *run) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.generation != c.generation || c.state != models.StateSucceeded {
		return
	}
	c.ready = true
	c.notify()
}

func (c *Controller) fail(r *run, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.generation != c.generation || c.state != models.StateUploading {
		c.log.Debug(r.ctx, "discarding stale failure", "generation", r.generation, "error", err)
		return
	}

	r.release()
	msg := err.Error()
	if msg == "" {
		msg = common.GenericFailureMessage
	}
	if errors.Is(err, client.ErrUnavailable) {
		c.log.Warn(r.ctx, "backend unreachable", "error", err)
	} else {
		c.log.Warn(r.ctx, "generation failed", "error", err)
	}

	c.errMsg = msg
	c.setState(models.StateFailed)
	c.notify()
}

func (c *Controller) releaseRun() {
	if c.current == nil {
		return
	}
	c.current.release()
	c.current = nil
}

func (c *Controller) revokeResource() {
	if c.resource == nil {
		return
	}
	c.blobs.Revoke(c.resource.Locator)
	c.resource = nil
	c.ready = false
}

func (c *Controller) setState(to models.UploadState) {
	if err := models.ValidateTransition(c.state, to); err != nil {
		c.log.Error(context.Background(), "unexpected transition", "error", err)
	}
	c.state = to
}

func (c *Controller) notify() {
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
