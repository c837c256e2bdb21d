package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/dmitrijs2005/docforge/internal/client/blob"
	"github.com/dmitrijs2005/docforge/internal/client/models"
	"github.com/dmitrijs2005/docforge/internal/client/services"
	"github.com/dmitrijs2005/docforge/internal/client/workflow"
	"github.com/dmitrijs2005/docforge/internal/common"
	"github.com/dmitrijs2005/docforge/internal/logging"
	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

//go:embed templates/*.html
var templatesFS embed.FS

// Handler wires HTTP routes to the upload workflow and the archive services.
type Handler struct {
	controller *workflow.Controller
	blobs      *blob.Store
	download   services.DownloadService
	publish    services.PublishService
	backend    string
	logger     logging.Logger
}

func NewHandler(wc *workflow.Controller, blobs *blob.Store, ds services.DownloadService, ps services.PublishService, backend string, l logging.Logger) *Handler {
	return &Handler{
		controller: wc,
		blobs:      blobs,
		download:   ds,
		publish:    ps,
		backend:    backend,
		logger:     l,
	}
}

// stateResponse is a workflow snapshot plus the link the page downloads from.
type stateResponse struct {
	workflow.Snapshot
	DownloadURL string `json:"download_url,omitempty"`
}

func downloadURL(s workflow.Snapshot) string {
	if s.Resource == nil || !s.DownloadReady {
		return ""
	}
	return "/blob/" + blob.ID(s.Resource.Locator)
}

func (h *Handler) state() stateResponse {
	s := h.controller.Snapshot()
	return stateResponse{Snapshot: s, DownloadURL: downloadURL(s)}
}

// detail writes the error body shape the backend uses.
func detail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"detail": msg})
}

// NewRouter builds the gin engine with pages, API routes and middleware.
func (h *Handler) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	h.RegisterRoutes(router)
	return router
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.page("index.html", "Home", "home"))
	router.GET("/about", h.page("about.html", "About", "about"))
	router.GET("/generate", h.page("generate.html", "Generate", "generate"))
	router.GET("/blob/:id", h.serveBlob)

	api := router.Group("/api")
	api.GET("/state", h.getState)
	api.POST("/file", h.selectFile)
	api.POST("/generate", h.generate)
	api.POST("/reset", h.reset)
	api.GET("/archive", h.inspect)
	api.POST("/publish", h.publishArchive)
}

func (h *Handler) page(name, title, active string) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := h.state()
		c.HTML(http.StatusOK, name, gin.H{
			"Title":       title,
			"Active":      active,
			"Archive":     common.ArchiveFileName,
			"Backend":     h.backend,
			"Accept":      models.AcceptList(),
			"State":       st.Snapshot,
			"DownloadURL": st.DownloadURL,
		})
	}
}

func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.state())
}

func (h *Handler) selectFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+1<<20)

	fh, err := c.FormFile(common.UploadFieldName)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			detail(c, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		detail(c, http.StatusBadRequest, common.ErrNoFile.Error())
		return
	}
	if fh.Size > maxUploadBytes {
		detail(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		detail(c, http.StatusBadRequest, "open file failed")
		return
	}
	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		detail(c, http.StatusBadRequest, "read file failed")
		return
	}

	file := models.NewSelectedFile(fh.Filename, fh.Header.Get("Content-Type"), data)
	if err := h.controller.Select(file); err != nil {
		h.workflowError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "file staged", "file", file.Name, "size", file.Size)
	c.JSON(http.StatusOK, h.state())
}

func (h *Handler) generate(c *gin.Context) {
	if err := h.controller.Submit(c.Request.Context()); err != nil {
		h.workflowError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, h.state())
}

func (h *Handler) reset(c *gin.Context) {
	h.controller.Reset()
	c.JSON(http.StatusOK, h.state())
}

func (h *Handler) workflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNoFile):
		detail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrBusy):
		detail(c, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrClosed):
		detail(c, http.StatusServiceUnavailable, err.Error())
	default:
		detail(c, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) serveBlob(c *gin.Context) {
	r, contentType, err := h.blobs.Open(blob.Locator(c.Param("id")))
	if err != nil {
		detail(c, http.StatusNotFound, "not found")
		return
	}

	c.DataFromReader(http.StatusOK, r.Size(), contentType, r, map[string]string{
		"Content-Disposition": `attachment; filename="` + common.ArchiveFileName + `"`,
		"Cache-Control":       "no-store",
	})
}

func (h *Handler) inspect(c *gin.Context) {
	res, err := h.controller.Resource()
	if err != nil {
		detail(c, http.StatusNotFound, "no documentation available")
		return
	}

	entries, err := h.download.Inspect(c.Request.Context(), res)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			detail(c, http.StatusNotFound, "no documentation available")
			return
		}
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"file_name": res.FileName, "entries": entries})
}

func (h *Handler) publishArchive(c *gin.Context) {
	if !h.publish.Enabled() {
		detail(c, http.StatusNotImplemented, services.ErrPublishDisabled.Error())
		return
	}

	res, err := h.controller.Resource()
	if err != nil {
		detail(c, http.StatusNotFound, "no documentation available")
		return
	}

	pub, err := h.publish.Publish(c.Request.Context(), res)
	if err != nil {
		h.logger.Error(c.Request.Context(), "publish failed", "error", err)
		detail(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, pub)
}
