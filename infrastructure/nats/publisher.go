package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"study-tracker/pkg/logger"
)

// Publisher publishes JSON events to JetStream
type Publisher struct {
	js jetstream.JetStream
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{js: client.js}
}

// PublishJSON marshals v and publishes it on subject
func (p *Publisher) PublishJSON(ctx context.Context, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ack, err := p.js.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	logger.Debug("Event published", "subject", subject, "stream", ack.Stream, "sequence", ack.Sequence)
	return nil
}
