package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cantdoitbye/backend-sub007/src/adapters/kafka/consumers"
	"github.com/cantdoitbye/backend-sub007/src/helper/env"
	"github.com/cantdoitbye/backend-sub007/src/infra/kafka"
	"github.com/cantdoitbye/backend-sub007/src/infra/postgres"
	"github.com/cantdoitbye/backend-sub007/src/repositories"
	"github.com/cantdoitbye/backend-sub007/src/services/stats"

	"go.uber.org/fx"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting stats refresh consumer with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newKafkaClient,
			newUserStatsRepository,
			newStatsService,
			newStatsRefreshConsumer,
		),

		// Invocations
		fx.Invoke(startConsumer),
	)

	// Start the application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start consumer application: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down stats refresh consumer...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}

	log.Println("Stats refresh consumer shutdown complete")
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbReadHost := env.MustGetString("DB_READ_HOST")
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbReadPort := env.GetString("DB_READ_PORT", "5432")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

func newKafkaClient() (*kafka.KafkaClient, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")
	groupID := env.MustGetString("KAFKA_STATS_REFRESH_CONSUMER_GROUP_ID")
	batchSize := env.MustGetInt("KAFKA_BATCH_SIZE")

	return kafka.NewKafkaClient(brokers, groupID, batchSize)
}

func newUserStatsRepository(rwClient *postgres.ReadWriteClient) *repositories.UserStatsRepository {
	return repositories.NewUserStatsRepository(rwClient.GetReadPool(), rwClient.GetWritePool())
}

func newStatsService(
	logger *slog.Logger,
	userStatsRepository *repositories.UserStatsRepository,
) *stats.StatsService {
	return stats.NewStatsService(logger, userStatsRepository)
}

func newStatsRefreshConsumer(
	logger *slog.Logger,
	statsService *stats.StatsService,
) *consumers.StatsRefreshConsumer {
	return consumers.NewStatsRefreshConsumer(logger, statsService)
}

func startConsumer(lc fx.Lifecycle, consumer *consumers.StatsRefreshConsumer, kafkaClient *kafka.KafkaClient) {
	topic := env.MustGetString("KAFKA_STATS_REFRESH_TOPIC")

	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := consumer.Start(ctx, kafkaClient, topic); err != nil {
					log.Fatalf("Consumer failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return kafkaClient.Close()
		},
	})
}
