package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// Publisher provides typed methods for publishing events to NATS JetStream.
// A nil Publisher is valid and publishes nothing, so the engine can run
// without a broker.
type Publisher struct {
	js jetstream.JetStream
}

// NewPublisher creates a new Publisher.
func NewPublisher(js jetstream.JetStream) *Publisher {
	return &Publisher{js: js}
}

// PublishTurn publishes a processed-turn event.
func (p *Publisher) PublishTurn(ctx context.Context, event TurnEvent) error {
	return p.publish(ctx, SubjectTurn, event)
}

// PublishSearch publishes a listing-search event.
func (p *Publisher) PublishSearch(ctx context.Context, event SearchEvent) error {
	return p.publish(ctx, SubjectSearch, event)
}

// PublishContradiction publishes a requirement-contradiction event.
func (p *Publisher) PublishContradiction(ctx context.Context, event ContradictionEvent) error {
	return p.publish(ctx, SubjectContradiction, event)
}

func (p *Publisher) publish(ctx context.Context, subject string, data any) error {
	if p == nil || p.js == nil {
		return nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling event for %s: %w", subject, err)
	}
	_, err = p.js.Publish(ctx, subject, payload)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	return nil
}
