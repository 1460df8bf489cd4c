package stats_test

import (
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/helper/env"
	"github.com/cantdoitbye/backend-sub007/src/infra/postgres"
	"github.com/cantdoitbye/backend-sub007/src/repositories"
	"github.com/cantdoitbye/backend-sub007/src/services/stats"
	"github.com/cantdoitbye/backend-sub007/src/test_artefacts/stubs"
	"github.com/cantdoitbye/backend-sub007/src/test_artefacts/test_seeder"
)

var _ = Describe("UserStats", func() {
	var (
		readWriteClient *postgres.ReadWriteClient
		testSeeder      test_seeder.TestSeeder
		statsService    *stats.StatsService
		ctx             context.Context
		err             error
	)

	dbReadHost := env.MustGetString("TEST_DB_READ_HOST")
	dbWriteHost := env.MustGetString("TEST_DB_WRITE_HOST")
	dbReadPort := env.GetString("TEST_DB_READ_PORT", "5432")
	dbWritePort := env.GetString("TEST_DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("TEST_DB_NAME")
	dbUser := env.MustGetString("TEST_DB_USER")
	dbPassword := env.MustGetString("TEST_DB_PASSWORD")
	maxConnections := env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 25)

	BeforeEach(func() {
		ctx = context.Background()

		readWriteClient, err = postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
		if err != nil {
			panic(err)
		}

		userStatsRepository := repositories.NewUserStatsRepository(readWriteClient.GetReadPool(), readWriteClient.GetWritePool())
		logger := slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		statsService = stats.NewStatsService(logger, userStatsRepository)
		testSeeder = test_seeder.New(readWriteClient.GetWritePool())

		testSeeder.TruncateTables(ctx)
	})

	AfterEach(func() {
		if readWriteClient.GetReadPool() != nil {
			readWriteClient.GetReadPool().Close()
		}
		if readWriteClient.GetWritePool() != nil {
			readWriteClient.GetWritePool().Close()
		}
	})

	Context("when reading stats for a user without a row", func() {
		It("returns zeroed counters instead of an error", func() {
			// ACT
			userStats, err := statsService.GetUserStats(ctx, "user-unknown")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(userStats.UserID).To(Equal("user-unknown"))
			Expect(userStats.SentCount).To(BeZero())
			Expect(userStats.AcceptedCount).To(BeZero())
		})
	})

	Context("when refreshing sent/received", func() {
		It("counts edges from both connection variants", func() {
			// ARRANGE
			v1Sent := stubs.NewConnectionStub().WithInitiator("user-a").WithRecipient("user-b").Get()
			v1Received := stubs.NewConnectionStub().WithInitiator("user-c").WithRecipient("user-a").Get()
			v2Sent := stubs.NewConnectionV2Stub().WithInitiator("user-a").WithRecipient("user-d").Get()
			testSeeder.InsertConnection(ctx, &v1Sent)
			testSeeder.InsertConnection(ctx, &v1Received)
			testSeeder.InsertConnectionV2(ctx, &v2Sent)

			// ACT
			userStats, err := statsService.RefreshSentReceived(ctx, "user-a")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(userStats.SentCount).To(Equal(2))
			Expect(userStats.ReceivedCount).To(Equal(1))
		})

		It("only counts pending requests as received", func() {
			// ARRANGE
			pending := stubs.NewConnectionStub().WithInitiator("user-b").WithRecipient("user-a").Get()
			accepted := stubs.NewConnectionStub().
				WithInitiator("user-c").
				WithRecipient("user-a").
				WithStatus(entities.StatusAccepted).
				Get()
			testSeeder.InsertConnection(ctx, &pending)
			testSeeder.InsertConnection(ctx, &accepted)

			// ACT
			userStats, err := statsService.RefreshSentReceived(ctx, "user-a")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(userStats.ReceivedCount).To(Equal(1))
		})

		It("overwrites instead of accumulating on repeated runs", func() {
			// ARRANGE
			sent := stubs.NewConnectionStub().WithInitiator("user-a").WithRecipient("user-b").Get()
			testSeeder.InsertConnection(ctx, &sent)

			// ACT
			first, err := statsService.RefreshSentReceived(ctx, "user-a")
			Expect(err).NotTo(HaveOccurred())

			second, err := statsService.RefreshSentReceived(ctx, "user-a")
			Expect(err).NotTo(HaveOccurred())

			// ASSERT
			Expect(first.SentCount).To(Equal(1))
			Expect(second.SentCount).To(Equal(1))
			Expect(second.ReceivedCount).To(Equal(first.ReceivedCount))
		})

		It("preserves the incrementally maintained counters", func() {
			// ARRANGE
			testSeeder.InsertUserStats(ctx, entities.UserStats{
				UserID:        "user-a",
				AcceptedCount: 3,
				InnerCount:    2,
			})
			sent := stubs.NewConnectionStub().WithInitiator("user-a").WithRecipient("user-b").Get()
			testSeeder.InsertConnection(ctx, &sent)

			// ACT
			userStats, err := statsService.RefreshSentReceived(ctx, "user-a")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(userStats.SentCount).To(Equal(1))
			Expect(userStats.AcceptedCount).To(Equal(3))
			Expect(userStats.InnerCount).To(Equal(2))
		})
	})
})
