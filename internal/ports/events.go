package ports

import "context"

// EventPublisher delivers outbox payloads to the transport. Delivery is
// advisory and at-least-once; consistency never depends on it.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error
}
