package connections_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/test_artefacts/stubs"
)

var _ = Describe("UpdateConnectionV2Status", func() {
	var (
		harness *testHarness
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		harness = newTestHarness(true)
		harness.testSeeder.SeedTaxonomy(ctx, defaultTaxonomy())
	})

	AfterEach(func() {
		harness.close()
	})

	pendingEdge := func(initiatorID, recipientID string) entities.ConnectionV2 {
		connection := stubs.NewConnectionV2Stub().
			WithInitiator(initiatorID).
			WithRecipient(recipientID).
			Get()
		harness.testSeeder.InsertConnectionV2(ctx, &connection)
		return connection
	}

	Context("when the recipient accepts", func() {
		It("persists the new status and notifies the initiator", func() {
			// ARRANGE
			connection := pendingEdge("user-a", "user-b")

			// ACT
			updated, err := harness.service.UpdateConnectionV2Status(ctx, connection.ID, entities.StatusAccepted, "user-b")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(entities.StatusAccepted))

			Eventually(harness.notifier.All, 2*time.Second).Should(ContainElement(HaveField("Kind", domain.NotificationConnectionAccepted)))
		})

		It("leaves the participant states untouched", func() {
			// ARRANGE
			connection := pendingEdge("user-a", "user-b")

			// ACT
			_, err := harness.service.UpdateConnectionV2Status(ctx, connection.ID, entities.StatusAccepted, "user-b")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())

			states, err := harness.testSeeder.SelectParticipantStates(ctx, connection.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(states["user-a"].ModificationCount).To(Equal(0))
			Expect(states["user-b"].ModificationCount).To(Equal(0))
		})

		It("does not touch the bucket counters", func() {
			// ARRANGE
			// Diferente da V1, aceitar uma aresta V2 não mexe em user_stats.
			connection := pendingEdge("user-a", "user-b")

			// ACT
			_, err := harness.service.UpdateConnectionV2Status(ctx, connection.ID, entities.StatusAccepted, "user-b")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())

			_, err = harness.testSeeder.SelectUserStats(ctx, "user-a")
			Expect(err).To(HaveOccurred())
			_, err = harness.testSeeder.SelectUserStats(ctx, "user-b")
			Expect(err).To(HaveOccurred())
		})
	})

	Context("when the recipient rejects", func() {
		It("persists the rejection", func() {
			// ARRANGE
			connection := pendingEdge("user-a", "user-b")

			// ACT
			updated, err := harness.service.UpdateConnectionV2Status(ctx, connection.ID, entities.StatusRejected, "user-b")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(entities.StatusRejected))
		})
	})

	Context("when the initiator cancels", func() {
		It("persists the cancellation without notifying anyone", func() {
			// ARRANGE
			connection := pendingEdge("user-a", "user-b")

			// ACT
			updated, err := harness.service.UpdateConnectionV2Status(ctx, connection.ID, entities.StatusCancelled, "user-a")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(entities.StatusCancelled))
			Consistently(harness.notifier.All, 500*time.Millisecond).Should(BeEmpty())
		})
	})

	Context("when the actor is not allowed to transition", func() {
		It("rejects the initiator accepting their own request", func() {
			// ARRANGE
			connection := pendingEdge("user-a", "user-b")

			// ACT
			_, err := harness.service.UpdateConnectionV2Status(ctx, connection.ID, entities.StatusAccepted, "user-a")

			// ASSERT
			Expect(err).To(HaveOccurred())
			Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindUnauthorized))
		})

		It("rejects a third user", func() {
			// ARRANGE
			connection := pendingEdge("user-a", "user-b")

			// ACT
			_, err := harness.service.UpdateConnectionV2Status(ctx, connection.ID, entities.StatusAccepted, "user-c")

			// ASSERT
			Expect(err).To(HaveOccurred())
			Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindUnauthorized))
		})
	})

	Context("when the edge is already settled", func() {
		It("returns a conflict", func() {
			// ARRANGE
			connection := stubs.NewConnectionV2Stub().
				WithInitiator("user-a").
				WithRecipient("user-b").
				WithStatus(entities.StatusAccepted).
				Get()
			harness.testSeeder.InsertConnectionV2(ctx, &connection)

			// ACT
			_, err := harness.service.UpdateConnectionV2Status(ctx, connection.ID, entities.StatusRejected, "user-b")

			// ASSERT
			Expect(err).To(HaveOccurred())
			Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
		})
	})

	Context("when the edge does not exist", func() {
		It("returns not found", func() {
			// ACT
			_, err := harness.service.UpdateConnectionV2Status(ctx, 987654, entities.StatusAccepted, "user-b")

			// ASSERT
			Expect(err).To(HaveOccurred())
			Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindNotFound))
		})
	})
})
