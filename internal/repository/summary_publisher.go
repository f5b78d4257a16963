package repository

import (
	"context"
	"sync"

	"FundPulse/internal/domain/models"
	"FundPulse/internal/domain/repository"
)

// Producer is the message sink behind KafkaSummaryPublisher.
type Producer interface {
	Publish(ctx context.Context, key []byte, value interface{}) error
	Close() error
}

// KafkaSummaryPublisher implements SummaryPublisher for Kafka. Every summary
// is keyed by the tracked quote asset so consumers see them in order.
type KafkaSummaryPublisher struct {
	producer Producer
	key      []byte

	closeOnce sync.Once
	closeErr  error
}

// NewKafkaSummaryPublisher creates a Kafka summary publisher.
func NewKafkaSummaryPublisher(producer Producer, quoteAsset string) repository.SummaryPublisher {
	return &KafkaSummaryPublisher{producer: producer, key: []byte("summary:" + quoteAsset)}
}

func (p *KafkaSummaryPublisher) Publish(ctx context.Context, s *models.MarketSummary) error {
	if s == nil {
		return nil
	}
	return p.producer.Publish(ctx, p.key, s)
}

// Close closes the producer once. Repeated calls return the first result.
func (p *KafkaSummaryPublisher) Close() error {
	if p.producer == nil {
		return nil
	}
	p.closeOnce.Do(func() { p.closeErr = p.producer.Close() })
	return p.closeErr
}
