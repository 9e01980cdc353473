package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	"worldcup/internal/engine"
	"worldcup/internal/logging"
	"worldcup/internal/metrics"
	"worldcup/internal/models"
)

// ProjectionCache stores encoded projections. Implementations must be safe for
// concurrent use; failures are logged and never fail a request.
type ProjectionCache interface {
	Key(fingerprint uint64, selection string) string
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
}

type Handler struct {
	data   atomic.Pointer[engine.Dataset]
	cache  ProjectionCache
	logger *zerolog.Logger
}

// NewHandler builds the API over data, which may be nil until SetData is called.
// cache may be nil.
func NewHandler(data *engine.Dataset, cache ProjectionCache, logger *zerolog.Logger) *Handler {
	if logger == nil {
		logger = logging.L()
	}
	h := &Handler{cache: cache, logger: logger}
	if data != nil {
		h.data.Store(data)
	}
	return h
}

// SetData publishes the loaded dataset. Requests before this answer 503.
func (h *Handler) SetData(data *engine.Dataset) {
	h.data.Store(data)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.GetHealth)

	api := e.Group("/api")
	api.GET("/projection", h.GetProjection)
	api.GET("/controls", h.GetControls)
	api.GET("/countries", h.GetCountries)
	api.GET("/years", h.GetYears)
	api.GET("/wins", h.GetWins)
	api.GET("/runner-ups", h.GetRunnerUps)
	api.GET("/editions", h.GetEditions)
}

const unknownModeLabel = "unknown"

type errorResponse struct {
	Error   engine.Code `json:"error"`
	Message string      `json:"message"`
}

// placeholderResponse is a projection the UI can render as-is, plus the reason.
type placeholderResponse struct {
	models.Projection
	Error engine.Code `json:"error"`
}

// --- HELPERS ---

func loading(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "LOADING", Message: "results are still loading"})
}

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

func paginate[T any](c echo.Context, items []T) error {
	total := len(items)
	limit, offset := getPaginationParams(c, total)

	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   items[offset:end],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func rankingOrder(c echo.Context) engine.RankingOrder {
	switch c.QueryParam("sort") {
	case "wins", "runner_ups", "count":
		return engine.ByCountDesc
	default:
		return engine.ByCountryName
	}
}

// advisory is the short message shown in place of a detail panel.
func advisory(sel engine.Selection, err error) string {
	if errors.Is(err, engine.ErrNotFound) {
		switch s := sel.(type) {
		case engine.ByCountry:
			return "No data available for " + s.Country
		case engine.ByYear:
			return fmt.Sprintf("No data available for %d", s.Year)
		}
	}
	return "Please select a view option"
}

// --- HANDLERS ---

// GetProjection resolves the selection in the query string. Unresolvable selections
// get an empty placeholder projection, not an HTTP error.
func (h *Handler) GetProjection(c echo.Context) error {
	ds := h.data.Load()
	if ds == nil {
		return loading(c)
	}

	mode := c.QueryParam("mode")
	sel, err := engine.ParseSelection(mode, c.QueryParam("country"), c.QueryParam("year"))
	if err != nil {
		return h.placeholder(c, models.Mode(mode), nil, err)
	}

	ctx := c.Request().Context()
	var key string
	if h.cache != nil {
		key = h.cache.Key(ds.Fingerprint, sel.Key())
		body, hit, err := h.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.CacheErrorsTotal.Inc()
			h.logger.Warn().Err(err).Str("key", key).Msg("projection cache read failed")
		case hit:
			metrics.CacheHitsTotal.Inc()
			return sendProjection(c, body)
		default:
			metrics.CacheMissesTotal.Inc()
		}
	}

	start := time.Now()
	p, err := ds.Resolve(sel)
	metrics.ResolveDurationMs.WithLabelValues(string(sel.Mode())).Observe(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		return h.placeholder(c, sel.Mode(), sel, err)
	}
	metrics.ResolveTotal.WithLabelValues(string(sel.Mode()), "ok").Inc()

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode projection: %w", err)
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, key, body); err != nil {
			metrics.CacheErrorsTotal.Inc()
			h.logger.Warn().Err(err).Str("key", key).Msg("projection cache write failed")
		}
	}
	return sendProjection(c, body)
}

func (h *Handler) placeholder(c echo.Context, mode models.Mode, sel engine.Selection, err error) error {
	code := engine.ErrorCode(err)
	// mode is client input until it parses; keep the label set bounded
	label := unknownModeLabel
	if sel != nil {
		label = string(sel.Mode())
	}
	metrics.ResolveTotal.WithLabelValues(label, string(code)).Inc()
	h.logger.Debug().Err(err).Str("mode", string(mode)).Msg("selection fell back to placeholder")

	return c.JSON(http.StatusOK, placeholderResponse{
		Projection: models.Placeholder(mode, advisory(sel, err)),
		Error:      code,
	})
}

// sendProjection answers with body and an ETag derived from it.
func sendProjection(c echo.Context, body []byte) error {
	etag := fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSONBlob(http.StatusOK, body)
}

func (h *Handler) GetControls(c echo.Context) error {
	ds := h.data.Load()
	if ds == nil {
		return loading(c)
	}
	controls, err := ds.Controls(models.Mode(c.QueryParam("mode")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: engine.ErrorCode(err), Message: err.Error()})
	}
	return c.JSON(http.StatusOK, controls)
}

func (h *Handler) GetCountries(c echo.Context) error {
	ds := h.data.Load()
	if ds == nil {
		return loading(c)
	}
	return c.JSON(http.StatusOK, ds.Summary.DistinctCountries())
}

func (h *Handler) GetYears(c echo.Context) error {
	ds := h.data.Load()
	if ds == nil {
		return loading(c)
	}
	return c.JSON(http.StatusOK, ds.Summary.DistinctYears())
}

// GetWins returns the win ranking, by country name or (sort=wins) by count.
func (h *Handler) GetWins(c echo.Context) error {
	ds := h.data.Load()
	if ds == nil {
		return loading(c)
	}
	return paginate(c, ds.Summary.WinRanking(rankingOrder(c)))
}

func (h *Handler) GetRunnerUps(c echo.Context) error {
	ds := h.data.Load()
	if ds == nil {
		return loading(c)
	}
	return paginate(c, ds.Summary.RunnerUpRanking(rankingOrder(c)))
}

// GetEditions returns the raw rows in table order.
func (h *Handler) GetEditions(c echo.Context) error {
	ds := h.data.Load()
	if ds == nil {
		return loading(c)
	}
	return paginate(c, ds.Table.Editions())
}

func (h *Handler) GetHealth(c echo.Context) error {
	if h.data.Load() == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
