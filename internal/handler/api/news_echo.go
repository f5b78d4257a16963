package api

import (
	"errors"

	"FundPulse/internal/domain/models"
	"FundPulse/internal/service/newsapi"
	"FundPulse/internal/service/ratelimit"
	"FundPulse/internal/usecase"
	xhttp "FundPulse/pkg/http"
	xlogger "FundPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HeaderCache tells the caller whether the articles came from the cache.
const HeaderCache = "X-Cache"

// NewsEchoHandler proxies news searches.
type NewsEchoHandler struct {
	logger *xlogger.Logger
	news   *usecase.NewsSearch
	rl     *ratelimit.Limiter
}

func NewNewsEchoHandler(logger *xlogger.Logger, news *usecase.NewsSearch, rl *ratelimit.Limiter) *NewsEchoHandler {
	return &NewsEchoHandler{logger: logger, news: news, rl: rl}
}

func (h *NewsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/news", h.Search)
}

func (h *NewsEchoHandler) Search(c echo.Context) error {
	if !h.rl.Allow(c.RealIP()) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests"))
	}

	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	articles, cached, err := h.news.Search(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("news search failed", xlogger.String("query", req.Query), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapNewsError(err))
	}

	if cached {
		c.Response().Header().Set(HeaderCache, "HIT")
	} else {
		c.Response().Header().Set(HeaderCache, "MISS")
	}
	return xhttp.SuccessResponse(c, articles)
}

func mapNewsError(err error) error {
	if errors.Is(err, newsapi.ErrNotConfigured) {
		return xhttp.ConfigurationError("news API key is not configured").WithError(err)
	}
	var ue *newsapi.UpstreamError
	if errors.As(err, &ue) {
		return xhttp.UpstreamError(ue.Status, "failed to fetch news: "+ue.Message).WithError(err)
	}
	return xhttp.InternalError("failed to fetch news").WithError(err)
}
