package api

import (
	"errors"
	"net/http"

	"FundPulse/internal/domain/models"
	"FundPulse/internal/usecase"
	xhttp "FundPulse/pkg/http"
	xlogger "FundPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketEchoHandler serves the latest aggregated market summary.
type MarketEchoHandler struct {
	logger *xlogger.Logger
	state  *usecase.SummaryState
}

func NewMarketEchoHandler(logger *xlogger.Logger, state *usecase.SummaryState) *MarketEchoHandler {
	return &MarketEchoHandler{logger: logger, state: state}
}

func (h *MarketEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/market")
	g.GET("/summary", h.Summary)
	g.GET("/signals", h.Signals)
	e.GET("/healthz", h.Health)
}

func (h *MarketEchoHandler) Summary(c echo.Context) error {
	s, err := h.state.Latest()
	if err != nil {
		return xhttp.AppErrorResponse(c, mapStateError(err))
	}
	return xhttp.SuccessResponse(c, s)
}

func (h *MarketEchoHandler) Signals(c echo.Context) error {
	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	list, err := h.state.Signals(models.Direction(req.Direction))
	if err != nil {
		return xhttp.AppErrorResponse(c, mapStateError(err))
	}
	return xhttp.SuccessResponse(c, list)
}

type healthStatus struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
}

// Health is a liveness probe; ready turns true after the first cycle.
func (h *MarketEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthStatus{Status: "ok", Ready: h.state.Ready()})
}

func mapStateError(err error) error {
	if errors.Is(err, usecase.ErrSummaryNotReady) {
		return xhttp.ServiceUnavailableError("market summary is not available yet").WithError(err)
	}
	return err
}
