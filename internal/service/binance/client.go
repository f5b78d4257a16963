package binance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FundPulse/internal/domain/models"
	drepo "FundPulse/internal/domain/repository"
	svcmetrics "FundPulse/internal/service/metrics"
	xhttp "FundPulse/pkg/http"
	"FundPulse/pkg/logger"

	"github.com/sony/gobreaker"
)

const (
	pathExchangeInfo = "/fapi/v1/exchangeInfo"
	pathTicker24h    = "/fapi/v1/ticker/24hr"
	pathPremiumIndex = "/fapi/v1/premiumIndex"

	provider = "binance"
)

// ErrBreakerOpen is returned while the breaker rejects calls.
var ErrBreakerOpen = errors.New("binance: circuit open")

// Config holds client settings.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxFailures uint32
	OpenTimeout time.Duration
}

// Client reads USD-M futures market data over REST. It implements
// repository.MarketDataSource.
type Client struct {
	http    *xhttp.Client
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
}

var _ drepo.MarketDataSource = (*Client)(nil)

// New creates a Binance futures client. The breaker opens after MaxFailures
// consecutive failures and only fails fast; it never retries.
func New(cfg Config, log *logger.Logger) *Client {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	st := gobreaker.Settings{
		Name:    provider,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	}

	return &Client{
		http:    xhttp.NewClient(cfg.BaseURL, xhttp.WithTimeout(cfg.Timeout)),
		breaker: gobreaker.NewCircuitBreaker(st),
		log:     log,
	}
}

type exchangeInfo struct {
	Symbols []models.InstrumentRef `json:"symbols"`
}

// Instruments returns contract metadata for every listed symbol.
func (c *Client) Instruments(ctx context.Context) ([]models.InstrumentRef, error) {
	var out exchangeInfo
	if err := c.get(ctx, "exchange_info", pathExchangeInfo, &out); err != nil {
		return nil, err
	}
	return out.Symbols, nil
}

// Tickers returns 24h statistics for every symbol.
func (c *Client) Tickers(ctx context.Context) ([]models.TickerStat, error) {
	var out []models.TickerStat
	if err := c.get(ctx, "ticker_24h", pathTicker24h, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FundingRates returns the current funding rate of every symbol.
func (c *Client) FundingRates(ctx context.Context) ([]models.FundingRate, error) {
	var out []models.FundingRate
	if err := c.get(ctx, "premium_index", pathPremiumIndex, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, dest interface{}) (err error) {
	defer svcmetrics.ObserveCall(provider, endpoint, time.Now(), &err)

	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.http.GetJSON(ctx, path, nil, dest)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w", endpoint, ErrBreakerOpen)
	}
	if err != nil {
		return fmt.Errorf("binance %s: %w", endpoint, err)
	}
	return nil
}
