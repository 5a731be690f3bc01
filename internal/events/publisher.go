// Package events publishes entity change notifications over NATS so other
// services (notification senders, report builders) can react to them.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Publisher publishes entity events. A nil Publisher is safe to use and
// publishes nothing, so NATS stays optional.
type Publisher struct {
	nc *nats.Conn
}

// NewPublisher creates a publisher over an established NATS connection
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

// Event is the envelope published on every subject
type Event struct {
	Entity    string      `json:"entity"`
	Action    string      `json:"action"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Publish publishes an event on rental.<entity>.<action>. Publishing is
// best-effort: failures are logged and never propagated to the caller, a
// slow or absent broker must not fail API requests.
func (p *Publisher) Publish(entity, action string, payload interface{}) {
	if p == nil || p.nc == nil {
		return
	}

	event := Event{
		Entity:    entity,
		Action:    action,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).
			Str("entity", entity).
			Str("action", action).
			Msg("Failed to marshal event")
		return
	}

	subject := fmt.Sprintf("rental.%s.%s", entity, action)
	if err := p.nc.Publish(subject, data); err != nil {
		log.Error().Err(err).
			Str("subject", subject).
			Msg("Failed to publish event")
		return
	}

	log.Debug().
		Str("subject", subject).
		Msg("Event published")
}
