package pubsub

import "context"

// PubSubClient publishes domain events.
type PubSubClient interface {
	SendMessage(ctx context.Context, eventType EventType, data any) error
	Close() error
}
