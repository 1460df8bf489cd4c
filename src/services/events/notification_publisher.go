package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cantdoitbye/backend-sub007/src/infra/kafka"

	"github.com/google/uuid"
)

// NotificationPublisher implementa domain.Notifier sobre Kafka: cada
// notificação vira um evento no tópico de push, particionado pelo usuário
// alvo para preservar ordem por destinatário.
type NotificationPublisher struct {
	logger      *slog.Logger
	kafkaClient *kafka.KafkaClient
	topic       string
}

func NewNotificationPublisher(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	topic string,
) *NotificationPublisher {
	return &NotificationPublisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

type notificationEvent struct {
	Kind       string                 `json:"kind"`
	TargetID   string                 `json:"target_id"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (p *NotificationPublisher) Notify(ctx context.Context, kind string, targetID string, payload map[string]interface{}) error {
	event := notificationEvent{
		Kind:       kind,
		TargetID:   targetID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("NotificationPublisher.Notify - failed to marshal event: %w", err)
	}

	eventID := uuid.NewString()
	message := kafka.Message{
		Key:   targetID, // Partition by target user for ordering
		Value: eventBytes,
		Headers: map[string]string{
			"event_type":     kind,
			"source_service": "connection-graph-api",
			"schema_version": "v1",
			"event_id":       eventID,
		},
	}

	if err := p.kafkaClient.Producer([]kafka.Message{message}, p.topic); err != nil {
		return fmt.Errorf("NotificationPublisher.Notify - failed to publish to topic %s: %w", p.topic, err)
	}

	p.logger.Debug("Notification published",
		"event_id", eventID,
		"kind", kind,
		"target_id", targetID,
		"topic", p.topic)

	return nil
}
