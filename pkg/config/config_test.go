package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte("environment: test\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "USDT", c.Market.QuoteAsset)
	assert.Equal(t, 30*time.Second, c.Market.Interval)
	assert.Equal(t, 5, c.Market.TopN)
	assert.Equal(t, time.Hour, c.News.CacheTTL)
	assert.Equal(t, "market.summary", c.Kafka.Topic)
	assert.Empty(t, c.News.APIKey)
}

func TestParseReadsDurations(t *testing.T) {
	c, err := Parse([]byte("market:\n  interval: 5s\nnews:\n  cache_ttl: 90m\n"))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.Market.Interval)
	assert.Equal(t, 90*time.Minute, c.News.CacheTTL)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	_, err := Parse([]byte("server:\n  port: 70000\nkafka:\n  enabled: true\nnews:\n  redis:\n    enabled: true\n"))
	require.Error(t, err)

	errs := multierr.Errors(errorsUnwrap(err))
	assert.Len(t, errs, 3)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: test\n"), 0o644))

	t.Setenv("NEWS_API_KEY", "secret")
	t.Setenv("QUOTE_ASSET", "usdc")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", c.News.APIKey)
	assert.Equal(t, "USDC", c.Market.QuoteAsset)
	assert.True(t, c.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// errorsUnwrap strips the "validate config" wrapper.
func errorsUnwrap(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return err
}
