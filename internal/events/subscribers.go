package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/stories-service/internal/observability"
)

// RegisterSubscribers attaches the audit logger and the metrics recorder to
// every known event type. Payloads never contain secrets or digests.
func RegisterSubscribers(dispatcher Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	for _, eventType := range []EventType{EventAccountRegistered, EventStoryCreated} {
		dispatcher.Subscribe(eventType, auditLog(logger))
		dispatcher.Subscribe(eventType, recordMetric(metrics))
	}
}

func auditLog(logger *zap.Logger) EventHandler {
	return func(_ context.Context, event Event) error {
		logger.Info("domain event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Int64("account_id", event.AccountID),
			zap.Time("timestamp", event.Timestamp),
		)
		return nil
	}
}

func recordMetric(metrics *observability.Metrics) EventHandler {
	return func(_ context.Context, event Event) error {
		metrics.RecordEvent(string(event.Type))
		return nil
	}
}
