package port

import "context"

// EventPublisher emits prediction lifecycle events for downstream consumers.
type EventPublisher interface {
	PublishPrediction(ctx context.Context, msg []byte) error
}
