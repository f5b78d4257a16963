package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishMarshalsJSON(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "market.summary", "gzip")

	err := p.Publish(context.Background(), []byte("summary"), map[string]int{"symbolCount": 2})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "summary", string(w.msgs[0].Key))
	assert.JSONEq(t, `{"symbolCount":2}`, string(w.msgs[0].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishWrapsWriteError(t *testing.T) {
	boom := errors.New("broker down")
	p := newProducer(&fakeWriter{err: boom}, "market.summary", "gzip")

	err := p.Publish(context.Background(), nil, []byte("x"))
	require.ErrorIs(t, err, boom)
}

func TestNewProducerRequiresBrokersAndTopic(t *testing.T) {
	_, err := NewProducer(WithTopic("t"))
	require.Error(t, err)

	_, err = NewProducer(WithBrokers([]string{"localhost:9092"}))
	require.Error(t, err)

	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithTopic("t"), WithCompression("zstd"))
	require.NoError(t, err)
	assert.Equal(t, "t", p.Topic())
	require.NoError(t, p.Close())
}
