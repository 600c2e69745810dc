package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pedal/internal/engine"
	"pedal/internal/models"
	"pedal/internal/render"
)

const defaultPreviewLimit = 50

type Options struct {
	PreviewLimit   int
	MaxUploadBytes int64
	Render         render.Options
}

type Handler struct {
	registry *engine.Registry
	loader   *engine.Loader
	sessions sessions.Store
	log      *zap.Logger
	opts     Options
}

func NewHandler(reg *engine.Registry, loader *engine.Loader, store sessions.Store, log *zap.Logger, opts Options) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.PreviewLimit <= 0 {
		opts.PreviewLimit = defaultPreviewLimit
	}
	return &Handler{registry: reg, loader: loader, sessions: store, log: log, opts: opts}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.Health)

	api.GET("/dataset", h.GetDataset)
	api.POST("/dataset", h.UploadDataset)
	api.DELETE("/dataset", h.ResetDataset)
	api.GET("/dataset/rows", h.GetRows)
	api.GET("/dataset/describe", h.Describe)
	api.GET("/dataset/columns/:name/distinct", h.GetDistinct)

	api.GET("/charts", h.ListCharts)
	api.POST("/charts/:type/resolve", h.ResolveChart)
	api.POST("/charts/:type/render", h.RenderChart)
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDataset(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewDatasetSummary(ds))
}

// UploadDataset replaces the session's dataset with the file in the
// multipart field "file".
func (h *Handler) UploadDataset(c echo.Context) error {
	id, err := h.sessionID(c)
	if err != nil {
		return err
	}
	if h.opts.MaxUploadBytes > 0 {
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.opts.MaxUploadBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooBig.Limit))
		}
		return echo.NewHTTPError(http.StatusBadRequest, "missing upload field \"file\"")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	ds, err := h.loader.Load(c.Request().Context(), f, fh.Filename)
	if err != nil {
		h.log.Info("upload rejected", zap.String("file", fh.Filename), zap.Error(err))
		return httpError(err)
	}
	h.registry.Put(id, ds)
	h.log.Info("dataset uploaded",
		zap.String("session", id),
		zap.String("file", fh.Filename),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Columns)),
	)
	return c.JSON(http.StatusCreated, models.NewDatasetSummary(ds))
}

func (h *Handler) ResetDataset(c echo.Context) error {
	id, err := h.sessionID(c)
	if err != nil {
		return err
	}
	h.registry.Reset(id)
	return c.JSON(http.StatusOK, models.NewDatasetSummary(h.registry.Get(id)))
}

func (h *Handler) GetRows(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	limit, offset := getPaginationParams(c, h.opts.PreviewLimit)
	return c.JSON(http.StatusOK, models.RowsPage{
		Columns: ds.Names(),
		Data:    ds.Rows(offset, limit),
		Total:   ds.Len(),
		Limit:   limit,
		Offset:  offset,
	})
}

func (h *Handler) Describe(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	sums := ds.Describe()
	out := make([]models.ColumnStats, len(sums))
	for i, s := range sums {
		out[i] = models.NewColumnStats(s)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetDistinct(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	vals, err := ds.Distinct(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vals)
}
