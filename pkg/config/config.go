package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		SlowRequest     time.Duration `yaml:"slow_request"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Market struct {
		BaseURL    string        `yaml:"base_url"`
		QuoteAsset string        `yaml:"quote_asset"`
		Interval   time.Duration `yaml:"interval"`
		TopN       int           `yaml:"top_n"`
		Timeout    time.Duration `yaml:"timeout"`
		Breaker    struct {
			MaxFailures uint32        `yaml:"max_failures"`
			OpenTimeout time.Duration `yaml:"open_timeout"`
		} `yaml:"breaker"`
	} `yaml:"market"`
	News struct {
		BaseURL   string        `yaml:"base_url"`
		APIKey    string        `yaml:"api_key"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
		Timeout   time.Duration `yaml:"timeout"`
		RateLimit struct {
			RPS   float64 `yaml:"rps"`
			Burst int     `yaml:"burst"`
		} `yaml:"rate_limit"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"news"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, fills defaults and validates.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.News.APIKey = v
	}
	if v := os.Getenv("MARKET_BASE_URL"); v != "" {
		c.Market.BaseURL = v
	}
	if v := os.Getenv("QUOTE_ASSET"); v != "" {
		c.Market.QuoteAsset = strings.ToUpper(v)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.News.Redis.Addr = v
		c.News.Redis.Enabled = true
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Market.BaseURL == "" {
		c.Market.BaseURL = "https://fapi.binance.com"
	}
	if c.Market.QuoteAsset == "" {
		c.Market.QuoteAsset = "USDT"
	}
	if c.Market.Interval == 0 {
		c.Market.Interval = 30 * time.Second
	}
	if c.Market.TopN == 0 {
		c.Market.TopN = 5
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = 15 * time.Second
	}
	if c.Market.Breaker.MaxFailures == 0 {
		c.Market.Breaker.MaxFailures = 3
	}
	if c.Market.Breaker.OpenTimeout == 0 {
		c.Market.Breaker.OpenTimeout = time.Minute
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://newsapi.org"
	}
	if c.News.CacheTTL == 0 {
		c.News.CacheTTL = time.Hour
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 10 * time.Second
	}
	if c.News.RateLimit.RPS == 0 {
		c.News.RateLimit.RPS = 2
	}
	if c.News.RateLimit.Burst == 0 {
		c.News.RateLimit.Burst = 5
	}
	if c.News.Redis.Prefix == "" {
		c.News.Redis.Prefix = "fundpulse:news"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "market.summary"
	}
	if c.Kafka.RequiredAcks == 0 {
		c.Kafka.RequiredAcks = -1
	}
}

// Validate checks if the configuration is valid. A missing news API key is allowed:
// the proxy reports it per request.
func (c *Config) Validate() error {
	var err error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Market.BaseURL == "" {
		err = multierr.Append(err, fmt.Errorf("market.base_url is required"))
	}
	if c.Market.QuoteAsset == "" {
		err = multierr.Append(err, fmt.Errorf("market.quote_asset is required"))
	}
	if c.Market.Interval <= 0 {
		err = multierr.Append(err, fmt.Errorf("market.interval must be positive"))
	}
	if c.Market.TopN < 0 {
		err = multierr.Append(err, fmt.Errorf("market.top_n cannot be negative"))
	}
	if c.News.CacheTTL <= 0 {
		err = multierr.Append(err, fmt.Errorf("news.cache_ttl must be positive"))
	}
	if c.News.Redis.Enabled && c.News.Redis.Addr == "" {
		err = multierr.Append(err, fmt.Errorf("news.redis.addr is required when redis is enabled"))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		err = multierr.Append(err, fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled"))
	}
	return err
}
