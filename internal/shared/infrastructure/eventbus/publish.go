package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/felixgeelhaar/cascal/internal/shared/domain"
)

// PublishEvent marshals a domain event and publishes it under its routing
// key. Failures are logged and swallowed: event delivery is advisory and must
// never fail the operation that produced the event.
func PublishEvent(ctx context.Context, pub Publisher, logger *slog.Logger, event domain.DomainEvent) {
	if pub == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal event",
			"routing_key", event.RoutingKey(),
			"error", err,
		)
		return
	}

	if err := pub.Publish(ctx, event.RoutingKey(), payload); err != nil {
		logger.Error("failed to publish event",
			"routing_key", event.RoutingKey(),
			"aggregate_id", event.AggregateID(),
			"error", err,
		)
	}
}
