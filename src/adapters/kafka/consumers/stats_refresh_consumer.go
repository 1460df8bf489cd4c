package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cantdoitbye/backend-sub007/src/infra/kafka"
	"github.com/cantdoitbye/backend-sub007/src/services/stats"
)

// StatsRefreshMessage representa o schema da mensagem Kafka que pede o
// recálculo dos contadores sent/received de um usuário.
type StatsRefreshMessage struct {
	UserID string `json:"user_id"`
}

type StatsRefreshConsumer struct {
	logger       *slog.Logger
	statsService *stats.StatsService
}

func NewStatsRefreshConsumer(
	logger *slog.Logger,
	statsService *stats.StatsService,
) *StatsRefreshConsumer {
	return &StatsRefreshConsumer{
		logger:       logger,
		statsService: statsService,
	}
}

func (c *StatsRefreshConsumer) Start(ctx context.Context, kafkaClient *kafka.KafkaClient, topic string) error {
	c.logger.Info("Starting stats refresh consumer", "topic", topic)

	handler := func(messages []kafka.Message) error {
		return c.handleMessages(ctx, messages)
	}

	return kafkaClient.Consumer(ctx, handler, topic)
}

func (c *StatsRefreshConsumer) handleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	c.logger.Info("Processing stats refresh batch", "count", len(messages))

	// Deduplica por usuário: o recálculo é overwrite, rodar uma vez por
	// lote basta.
	userIDs := make(map[string]struct{}, len(messages))
	for _, msg := range messages {
		var refreshMsg StatsRefreshMessage
		if err := json.Unmarshal(msg.Value, &refreshMsg); err != nil {
			c.logger.Error("Failed to unmarshal stats refresh message",
				"error", err,
				"key", msg.Key,
				"value", string(msg.Value))
			return fmt.Errorf("failed to unmarshal stats refresh message with key %s: %w", msg.Key, err)
		}

		if refreshMsg.UserID == "" {
			c.logger.Error("Invalid stats refresh message: missing user_id", "key", msg.Key)
			continue
		}

		userIDs[refreshMsg.UserID] = struct{}{}
	}

	for userID := range userIDs {
		if _, err := c.statsService.RefreshSentReceived(ctx, userID); err != nil {
			return fmt.Errorf("failed to refresh stats for user %s: %w", userID, err)
		}
	}

	c.logger.Info("Stats refresh batch processed", "users", len(userIDs))
	return nil
}
