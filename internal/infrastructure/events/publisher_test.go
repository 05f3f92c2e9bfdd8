package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/pos-api/internal/infrastructure/events"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
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

func TestKafkaPublisher_SobreConClaveDeTienda(t *testing.T) {
	w := &fakeWriter{}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := events.NewKafkaPublisherWithWriter(w, zerolog.Nop(), at)

	err := p.Publish(context.Background(), "new-sale", "tienda-1", map[string]string{"id": "v1"})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "tienda-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "new-sale", string(msg.Headers[0].Value))

	var env struct {
		Kind       string            `json:"kind"`
		StoreID    string            `json:"store_id"`
		Payload    map[string]string `json:"payload"`
		OccurredAt time.Time         `json:"occurred_at"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "new-sale", env.Kind)
	assert.Equal(t, "tienda-1", env.StoreID)
	assert.Equal(t, "v1", env.Payload["id"])
	assert.True(t, at.Equal(env.OccurredAt))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PropagaErrorDelWriter(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker caído")}
	p := events.NewKafkaPublisherWithWriter(w, zerolog.Nop(), time.Now())

	err := p.Publish(context.Background(), "order-update", "tienda-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order-update")
}

func TestKafkaPublisher_PayloadNoSerializable(t *testing.T) {
	p := events.NewKafkaPublisherWithWriter(&fakeWriter{}, zerolog.Nop(), time.Now())
	err := p.Publish(context.Background(), "shift-update", "tienda-1", make(chan int))
	require.Error(t, err)
}

func TestLogPublisher_RegistraYNuncaFalla(t *testing.T) {
	var buf bytes.Buffer
	p := events.NewLogPublisher(zerolog.New(&buf).Level(zerolog.DebugLevel))

	require.NoError(t, p.Publish(context.Background(), "shift-update", "tienda-9", map[string]int{"n": 1}))
	assert.Contains(t, buf.String(), `"kind":"shift-update"`)
	assert.Contains(t, buf.String(), `"store_id":"tienda-9"`)
}
