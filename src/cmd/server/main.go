package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	adapterhttp "github.com/cantdoitbye/backend-sub007/src/adapters/http"
	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/helper/env"
	"github.com/cantdoitbye/backend-sub007/src/infra/identity"
	"github.com/cantdoitbye/backend-sub007/src/infra/kafka"
	"github.com/cantdoitbye/backend-sub007/src/infra/postgres"
	"github.com/cantdoitbye/backend-sub007/src/infra/redis"
	"github.com/cantdoitbye/backend-sub007/src/repositories"
	"github.com/cantdoitbye/backend-sub007/src/services/connections"
	"github.com/cantdoitbye/backend-sub007/src/services/events"
	"github.com/cantdoitbye/backend-sub007/src/services/stats"

	"go.uber.org/fx"
)

func main() {
	// Configurar logger
	log.SetOutput(os.Stdout)
	log.Println("Starting connection graph API with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newRedisClient,
			newKafkaClient,
			newTaxonomyRepository,
			newCachedTaxonomyRepository,
			newConnectionRepository,
			newConnectionV2Repository,
			newUserStatsRepository,
			newNotificationPublisher,
			newIdentityDirectory,
			newConnectionService,
			newStatsService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()
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

func newRedisClient() *redis.RedisClient {
	redisHosts := env.MustGetString("REDIS_HOSTS")
	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	redisDefaultTTLSeconds := env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 300)
	redisDefaultTTL := time.Duration(redisDefaultTTLSeconds) * time.Second

	return redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL)
}

func newKafkaClient() (*kafka.KafkaClient, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")
	groupID := env.GetString("KAFKA_CONSUMER_GROUP_ID", "connection-graph-api")
	batchSize := env.GetInt("KAFKA_BATCH_SIZE", 100)

	return kafka.NewKafkaClient(brokers, groupID, batchSize)
}

func newTaxonomyRepository(rwClient *postgres.ReadWriteClient) *repositories.TaxonomyRepository {
	return repositories.NewTaxonomyRepository(rwClient.GetReadPool())
}

func newCachedTaxonomyRepository(
	taxonomyRepository *repositories.TaxonomyRepository,
	redisClient *redis.RedisClient,
) *repositories.CachedTaxonomyRepository {
	return repositories.NewCachedTaxonomyRepository(taxonomyRepository, redisClient.WithPrefix("taxonomy:"))
}

func newConnectionRepository(rwClient *postgres.ReadWriteClient) *repositories.ConnectionRepository {
	return repositories.NewConnectionRepository(rwClient.GetReadPool(), rwClient.GetWritePool())
}

func newConnectionV2Repository(rwClient *postgres.ReadWriteClient) *repositories.ConnectionV2Repository {
	return repositories.NewConnectionV2Repository(rwClient.GetReadPool(), rwClient.GetWritePool())
}

func newUserStatsRepository(rwClient *postgres.ReadWriteClient) *repositories.UserStatsRepository {
	return repositories.NewUserStatsRepository(rwClient.GetReadPool(), rwClient.GetWritePool())
}

func newNotificationPublisher(logger *slog.Logger, kafkaClient *kafka.KafkaClient) domain.Notifier {
	topic := env.GetString("KAFKA_NOTIFICATIONS_TOPIC", "user-notifications")
	return events.NewNotificationPublisher(logger, kafkaClient, topic)
}

func newIdentityDirectory(logger *slog.Logger) domain.IdentityDirectory {
	baseURL := env.MustGetString("IDENTITY_SERVICE_URL")
	return identity.NewHTTPDirectory(logger, baseURL)
}

func newConnectionService(
	logger *slog.Logger,
	taxonomyRepository *repositories.CachedTaxonomyRepository,
	connectionRepository *repositories.ConnectionRepository,
	connectionV2Repository *repositories.ConnectionV2Repository,
	notifier domain.Notifier,
	identityDirectory domain.IdentityDirectory,
) *connections.ConnectionService {
	v2Enabled := env.GetBool("CONNECTIONS_V2_ENABLED", false)

	return connections.NewConnectionService(
		logger,
		taxonomyRepository,
		connectionRepository,
		connectionV2Repository,
		notifier,
		identityDirectory,
		v2Enabled,
	)
}

func newStatsService(
	logger *slog.Logger,
	userStatsRepository *repositories.UserStatsRepository,
) *stats.StatsService {
	return stats.NewStatsService(logger, userStatsRepository)
}

func newServer(
	logger *slog.Logger,
	connectionService *connections.ConnectionService,
	statsService *stats.StatsService,
) *adapterhttp.Server {
	port := env.GetInt("SERVER_PORT", 8888)

	return adapterhttp.NewServer(logger, port, connectionService, statsService)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *adapterhttp.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			log.Println("Shutting down server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}
