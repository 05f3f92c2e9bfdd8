package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// Envelope mensaje publicado en el tópico; Kind distingue order-update, new-sale y shift-update.
type Envelope struct {
	Kind       string    `json:"kind"`
	StoreID    string    `json:"store_id"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

// messageWriter lo que el publicador usa de *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher publica eventos de la tienda en un único tópico con clave = storeID,
// de modo que los eventos de una tienda conservan su orden dentro de la partición.
type KafkaPublisher struct {
	w   messageWriter
	log zerolog.Logger
	now func() time.Time
}

// NewKafkaPublisher crea un writer asíncrono; los errores de entrega se registran en el log.
func NewKafkaPublisher(cfg config.KafkaConfig, log zerolog.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafkago.Message, err error) {
			if err != nil {
				log.Warn().Err(err).Int("messages", len(messages)).Msg("entrega de eventos fallida")
			}
		},
	}
	return newKafkaPublisher(w, log)
}

func newKafkaPublisher(w messageWriter, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{w: w, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Publish serializa el sobre y lo entrega al writer.
func (p *KafkaPublisher) Publish(ctx context.Context, kind, storeID string, payload any) error {
	body, err := json.Marshal(Envelope{Kind: kind, StoreID: storeID, Payload: payload, OccurredAt: p.now()})
	if err != nil {
		return fmt.Errorf("serializar evento %s: %w", kind, err)
	}
	msg := kafkago.Message{
		Key:     []byte(storeID),
		Value:   body,
		Headers: []kafkago.Header{{Key: "kind", Value: []byte(kind)}},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publicar evento %s: %w", kind, err)
	}
	return nil
}

// Close vacía los mensajes pendientes y cierra las conexiones.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
