package di

import (
	"context"
	"fmt"
	"io"

	"FundPulse/internal/domain/repository"
	"FundPulse/internal/handler/api"
	internalrepo "FundPulse/internal/repository"
	"FundPulse/internal/service/binance"
	"FundPulse/internal/service/cache"
	svcmetrics "FundPulse/internal/service/metrics"
	"FundPulse/internal/service/newsapi"
	"FundPulse/internal/service/ratelimit"
	"FundPulse/internal/usecase"
	"FundPulse/pkg/config"
	xhttp "FundPulse/pkg/http"
	pkgkafka "FundPulse/pkg/kafka"
	"FundPulse/pkg/logger"
	"FundPulse/pkg/metrics"
	"FundPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	svcmetrics.Register()
	return metrics.New(nil)
}

// ProvideMarketSource creates the Binance futures client.
func ProvideMarketSource(cfg *config.Config, log *logger.Logger) repository.MarketDataSource {
	return binance.New(binance.Config{
		BaseURL:     cfg.Market.BaseURL,
		Timeout:     cfg.Market.Timeout,
		MaxFailures: cfg.Market.Breaker.MaxFailures,
		OpenTimeout: cfg.Market.Breaker.OpenTimeout,
	}, log.With(logger.String("component", "binance")))
}

// ProvideNewsSource creates the NewsAPI client.
func ProvideNewsSource(cfg *config.Config, log *logger.Logger) repository.NewsSource {
	if cfg.News.APIKey == "" {
		log.Warn("news api key not set, /api/news will report a configuration error")
	}
	return newsapi.New(cfg.News.BaseURL, cfg.News.APIKey, cfg.News.Timeout, log.With(logger.String("component", "newsapi")))
}

// ProvideRedisCache connects the shared cache tier. It returns nil when disabled.
// The cleanup closes the client if a later provider fails.
func ProvideRedisCache(cfg *config.Config, log *logger.Logger) (*cache.RedisCache, func(), error) {
	if !cfg.News.Redis.Enabled {
		return nil, func() {}, nil
	}
	rc, err := cache.NewRedisCache(context.Background(), cache.RedisConfig{
		Addr:     cfg.News.Redis.Addr,
		Password: cfg.News.Redis.Password,
		DB:       cfg.News.Redis.DB,
		Prefix:   cfg.News.Redis.Prefix,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, closeQuietly(log, "redis cache", rc), nil
}

// ProvideNewsCache creates the news response cache.
func ProvideNewsCache(cfg *config.Config, log *logger.Logger, m repository.Metrics, rc *cache.RedisCache) *cache.TTLCache {
	opts := []cache.Option{cache.WithLogger(log), cache.WithMetrics(m)}
	if rc != nil {
		opts = append(opts, cache.WithSecondTier(rc))
	}
	return cache.NewTTLCache("news", cfg.News.CacheTTL, opts...)
}

// ProvideSummaryPublishers creates the downstream summary fan-out.
func ProvideSummaryPublishers(cfg *config.Config, log *logger.Logger) ([]repository.SummaryPublisher, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithTopic(cfg.Kafka.Topic),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	pub := internalrepo.NewKafkaSummaryPublisher(producer, cfg.Market.QuoteAsset)
	return []repository.SummaryPublisher{pub}, closeQuietly(log, "kafka publisher", pub), nil
}

// closeQuietly adapts c to a wire cleanup. Closers are idempotent, so the
// App closing them on shutdown first is harmless.
func closeQuietly(log *logger.Logger, name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn("cleanup failed", logger.String("resource", name), logger.Error(err))
		}
	}
}

// ProvideMarketCycle creates the aggregation cycle use case.
func ProvideMarketCycle(
	source repository.MarketDataSource,
	state *usecase.SummaryState,
	pubs []repository.SummaryPublisher,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.MarketCycle {
	return usecase.NewMarketCycle(source, state, pubs, m, log.With(logger.String("component", "cycle")),
		cfg.Market.QuoteAsset, cfg.Market.TopN)
}

// ProvideScheduler creates the cycle scheduler.
func ProvideScheduler(cycle *usecase.MarketCycle, m repository.Metrics, log *logger.Logger, cfg *config.Config) *usecase.Scheduler {
	return usecase.NewScheduler(cycle, cfg.Market.Interval, m, log.With(logger.String("component", "scheduler")))
}

// ProvideRateLimiter creates the per-client news limiter.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.News.RateLimit.RPS, cfg.News.RateLimit.Burst)
}

// ProvideHandlers collects every HTTP route group.
func ProvideHandlers(
	log *logger.Logger,
	state *usecase.SummaryState,
	news *usecase.NewsSearch,
	rl *ratelimit.Limiter,
) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewMarketEchoHandler(log, state),
		api.NewNewsEchoHandler(log, news, rl),
	}
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, log *logger.Logger, handlers []xhttp.Handler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
	}
	return xhttp.NewServer(log, handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithMetricsPath(metricsPath),
	)
}

// ProvideClosers lists resources released on shutdown.
func ProvideClosers(pubs []repository.SummaryPublisher, rc *cache.RedisCache) server.Closers {
	var closers server.Closers
	for _, p := range pubs {
		closers = append(closers, p)
	}
	if rc != nil {
		closers = append(closers, rc)
	}
	return closers
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	cycle *usecase.MarketCycle,
	scheduler *usecase.Scheduler,
	httpServer *xhttp.Server,
	closers server.Closers,
) *server.App {
	return server.New(cfg, log, cycle, scheduler, httpServer, closers)
}
