package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"FundPulse/internal/domain/models"
	"FundPulse/internal/service/cache"
	"FundPulse/internal/service/newsapi"
	"FundPulse/internal/service/ratelimit"
	"FundPulse/internal/usecase"
	"FundPulse/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, register func(e *echo.Echo), target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	register(e)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

type fakeNews struct {
	calls    int32
	articles []models.Article
	err      error
}

func (f *fakeNews) Search(context.Context, string, string, string) ([]models.Article, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.articles, f.err
}

func newsHandler(src *fakeNews, rl *ratelimit.Limiter) *NewsEchoHandler {
	c := cache.NewTTLCache("news", time.Hour)
	return NewNewsEchoHandler(logger.Nop(), usecase.NewNewsSearch(src, c), rl)
}

func TestNewsSearchValidation(t *testing.T) {
	h := newsHandler(&fakeNews{}, ratelimit.New(0, 0))

	for _, target := range []string{
		"/api/news",
		"/api/news?query=",
		"/api/news?query=btc&sort=oldest",
		"/api/news?query=btc&pageSize=ten",
	} {
		rec, env := serve(t, h.RegisterRoutes, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, http.StatusBadRequest, env.Status, target)
	}
}

func TestNewsSearchCachesRepeatedQuery(t *testing.T) {
	src := &fakeNews{articles: []models.Article{{Title: "BTC", URL: "https://x", Source: "Wire", PublishedAt: "2024-01-01T00:00:00Z"}}}
	h := newsHandler(src, ratelimit.New(0, 0))

	rec, env := serve(t, h.RegisterRoutes, "/api/news?query=bitcoin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get(HeaderCache))

	var got []models.Article
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Wire", got[0].Source)

	rec, _ = serve(t, h.RegisterRoutes, "/api/news?query=bitcoin&sort=relevancy&pageSize=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get(HeaderCache))
	assert.EqualValues(t, 1, src.calls)
}

func TestNewsSearchErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing key", newsapi.ErrNotConfigured, http.StatusInternalServerError},
		{"upstream status", &newsapi.UpstreamError{Status: http.StatusUnauthorized, Message: "apiKeyInvalid"}, http.StatusUnauthorized},
		{"upstream unreachable", &newsapi.UpstreamError{Message: "dial tcp"}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newsHandler(&fakeNews{err: tt.err}, ratelimit.New(0, 0))
			rec, env := serve(t, h.RegisterRoutes, "/api/news?query=bitcoin")
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.want, env.Status)
		})
	}
}

func TestNewsSearchRateLimited(t *testing.T) {
	h := newsHandler(&fakeNews{}, ratelimit.New(0.001, 1))

	rec, _ := serve(t, h.RegisterRoutes, "/api/news?query=bitcoin")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := serve(t, h.RegisterRoutes, "/api/news?query=bitcoin")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, http.StatusTooManyRequests, env.Status)
}

func TestMarketSummaryNotReady(t *testing.T) {
	h := NewMarketEchoHandler(logger.Nop(), usecase.NewSummaryState())

	rec, env := serve(t, h.RegisterRoutes, "/api/market/summary")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, http.StatusServiceUnavailable, env.Status)

	rec, _ = serve(t, h.RegisterRoutes, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","ready":false}`, rec.Body.String())
}

func readyState() *usecase.SummaryState {
	entry := 100.0
	state := usecase.NewSummaryState()
	state.Store(&models.MarketSummary{
		SymbolCount: 2,
		Signals: []models.TradeSignal{
			{Symbol: "BTCUSDT", Direction: models.DirectionLong, Entry: &entry},
			{Symbol: "XRPUSDT", Direction: models.DirectionNone},
		},
		Sentiment: models.Sentiment{Code: "neutral"},
	})
	return state
}

func TestMarketSummaryAndSignals(t *testing.T) {
	h := NewMarketEchoHandler(logger.Nop(), readyState())

	rec, env := serve(t, h.RegisterRoutes, "/api/market/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	var s models.MarketSummary
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Equal(t, 2, s.SymbolCount)

	rec, env = serve(t, h.RegisterRoutes, "/api/market/signals?direction=long")
	require.Equal(t, http.StatusOK, rec.Code)
	var sigs []models.TradeSignal
	require.NoError(t, json.Unmarshal(env.Data, &sigs))
	require.Len(t, sigs, 1)
	assert.Equal(t, "BTCUSDT", sigs[0].Symbol)

	rec, _ = serve(t, h.RegisterRoutes, "/api/market/signals?direction=sideways")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
