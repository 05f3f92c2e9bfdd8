package events

import (
	"time"

	"github.com/rs/zerolog"
)

// NewKafkaPublisherWithWriter expone el constructor con writer inyectable para las pruebas.
func NewKafkaPublisherWithWriter(w messageWriter, log zerolog.Logger, now time.Time) *KafkaPublisher {
	p := newKafkaPublisher(w, log)
	p.now = func() time.Time { return now }
	return p
}
