// Package event provides event publishing abstractions.
//
// Services publish account and article events through Publisher and never
// depend on the transport. Only the logging publisher is implemented; a broker
// backed one would be added next to it and selected in main.go.
package event

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mvaleed/quill/internal/domain"
)

// Publisher is the interface for publishing domain events.
// Implementations can be swapped without changing business logic.
type Publisher interface {
	// Publish sends an event to the message broker.
	// Implementations should handle retries and error logging internally.
	Publish(ctx context.Context, event domain.Event) error

	// Close cleanly shuts down the publisher.
	Close() error
}

// New returns the logging publisher, or a no-op one when publishing is
// disabled.
func New(enabled bool, logger *slog.Logger) Publisher {
	if !enabled {
		return NewNoopPublisher()
	}
	return NewLoggingPublisher(logger)
}

// LoggingPublisher implements Publisher by logging events.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger.With("component", "events")}
}

func (p *LoggingPublisher) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "event published",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("actor_id", event.ActorID.String()),
		slog.String("data", string(data)),
	)
	return nil
}

func (p *LoggingPublisher) Close() error {
	return nil
}

// NoopPublisher is a no-op implementation for when event publishing is disabled.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(ctx context.Context, event domain.Event) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
