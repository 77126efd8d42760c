package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"copydesk/internal/domain/models"
	"copydesk/internal/service/live"
	"copydesk/internal/service/ratelimit"
	"copydesk/internal/usecase"
	xhttp "copydesk/pkg/http"
	xlogger "copydesk/pkg/logger"
	"copydesk/pkg/util"
)

const (
	defaultActivityLimit = 20

	// Queue submissions are bursty but low-volume; throttle hard.
	submitBurst  = 5.0
	submitRefill = 1.0
)

// Handler wires the copydesk pipeline to Echo routes.
type Handler struct {
	logger  *xlogger.Logger
	signals *usecase.SignalsUseCase
	cot     *usecase.COTUseCase
	copy    *usecase.CopyUseCase
	hub     *live.Hub
	limiter *ratelimit.Limiter
}

func NewHandler(
	l *xlogger.Logger,
	signals *usecase.SignalsUseCase,
	cot *usecase.COTUseCase,
	copyUC *usecase.CopyUseCase,
	hub *live.Hub,
) *Handler {
	return &Handler{
		logger:  l,
		signals: signals,
		cot:     cot,
		copy:    copyUC,
		hub:     hub,
		limiter: ratelimit.New(),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.POST("/signals/parse", h.ParseSignals)
	g.POST("/cot/parse", h.ParseCOT)
	g.POST("/cot/merge", h.MergeCOT)
	g.POST("/copy/preview", h.CopyPreview)
	g.POST("/copy/queue", h.CopyQueue)
	g.POST("/sizing/preview", h.SizingPreview)
	g.GET("/accounts", h.Accounts)
	g.GET("/artifacts/:key", h.GetArtifact)
	g.PUT("/artifacts/:key", h.PutArtifact)
	g.DELETE("/artifacts/:key", h.DeleteArtifact)
	g.GET("/activity", h.Activity)
	g.GET("/live", h.hub.Handle)
}

func (h *Handler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *Handler) ParseSignals(c echo.Context) error {
	req := &models.ParseSignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.signals.Parse(c.Request().Context(), req.Text, req.CacheKey)
	if err != nil {
		h.logger.Error("signals parse error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) ParseCOT(c echo.Context) error {
	req := &models.ParseCOTRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	obs, err := h.cot.Parse(c.Request().Context(), req.Source, req.Text, req.CacheKey)
	if err != nil {
		h.logger.Error("cot parse error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"source":       req.Source,
		"observations": obs,
	})
}

func (h *Handler) MergeCOT(c echo.Context) error {
	req := &models.MergeCOTRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	merged, err := h.cot.MergeRequest(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("cot merge error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{"items": merged})
}

func (h *Handler) CopyPreview(c echo.Context) error {
	req := &models.CopyPreviewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows, err := h.copy.Preview(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("copy preview error", xlogger.Error(err))
		return xhttp.BadRequestResponse(c, map[string]string{"error": err.Error()})
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{"rows": rows})
}

func (h *Handler) CopyQueue(c echo.Context) error {
	req := &models.CopyQueueRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !req.DryRun && !h.limiter.Allow("copy_queue", submitBurst, submitRefill) {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, map[string]string{
			"error": "too many queue submissions, retry shortly",
		})
	}

	res, err := h.copy.Queue(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("copy queue error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) SizingPreview(c echo.Context) error {
	req := &models.SizingPreviewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.copy.SizingPreview(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("sizing preview error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Accounts(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{"accounts": h.copy.Accounts()})
}

func (h *Handler) GetArtifact(c echo.Context) error {
	key := c.Param("key")
	raw, err := h.signals.Artifact(c.Request().Context(), key)
	if err != nil {
		return xhttp.NotFoundResponse(c, map[string]string{"key": key})
	}
	return xhttp.SuccessResponse(c, raw)
}

func (h *Handler) PutArtifact(c echo.Context) error {
	req := &models.PutArtifactRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := c.Param("key")
	if err := h.signals.PutArtifact(c.Request().Context(), key, req.Value); err != nil {
		h.logger.Error("put artifact error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, map[string]string{"key": key})
}

func (h *Handler) DeleteArtifact(c echo.Context) error {
	key := c.Param("key")
	if err := h.signals.DeleteArtifact(c.Request().Context(), key); err != nil {
		return xhttp.NotFoundResponse(c, map[string]string{"key": key})
	}
	return xhttp.NoContentResponse(c)
}

func (h *Handler) Activity(c echo.Context) error {
	limit := util.ParseIntDefault(c.QueryParam("limit"), defaultActivityLimit)
	events := h.hub.Recent(limit)

	if since, ok := util.ParseTime(c.QueryParam("since")); ok {
		filtered := events[:0]
		for _, ev := range events {
			if ev.At.After(since) {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{"events": events})
}
