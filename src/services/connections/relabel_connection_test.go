package connections_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/test_artefacts/stubs"
)

var _ = Describe("RelabelConnection", func() {
	var (
		harness *testHarness
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		harness = newTestHarness(true)
	})

	AfterEach(func() {
		harness.close()
	})

	acceptConnection := func(connection *entities.Connection) {
		_, err := harness.service.UpdateConnectionStatus(ctx, connection.ID, entities.StatusAccepted, connection.RecipientID)
		Expect(err).NotTo(HaveOccurred())
	}

	Context("when moving an accepted edge to another bucket", func() {
		It("updates the shared bucket and shifts both users' counters", func() {
			// ARRANGE
			connection := stubs.NewConnectionStub().
				WithInitiator("user-a").
				WithRecipient("user-b").
				WithBucket(entities.BucketInner).
				Get()
			harness.testSeeder.InsertConnection(ctx, &connection)
			acceptConnection(&connection)

			newBucket := entities.BucketOuter

			// ACT
			updated, err := harness.service.RelabelConnection(ctx, connection.ID, "user-a", domain.RelabelConnectionRequest{
				BucketType: &newBucket,
			})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.BucketType).To(Equal(entities.BucketOuter))

			initiatorStats, err := harness.testSeeder.SelectUserStats(ctx, "user-a")
			Expect(err).NotTo(HaveOccurred())
			Expect(initiatorStats.InnerCount).To(Equal(0))
			Expect(initiatorStats.OuterCount).To(Equal(1))

			recipientStats, err := harness.testSeeder.SelectUserStats(ctx, "user-b")
			Expect(err).NotTo(HaveOccurred())
			Expect(recipientStats.InnerCount).To(Equal(0))
			Expect(recipientStats.OuterCount).To(Equal(1))
		})

		It("accepts relabels from either participant", func() {
			// ARRANGE
			connection := stubs.NewConnectionStub().
				WithInitiator("user-a").
				WithRecipient("user-b").
				WithBucket(entities.BucketOuter).
				Get()
			harness.testSeeder.InsertConnection(ctx, &connection)
			acceptConnection(&connection)

			newBucket := entities.BucketUniversal

			// ACT
			updated, err := harness.service.RelabelConnection(ctx, connection.ID, "user-b", domain.RelabelConnectionRequest{
				BucketType: &newBucket,
			})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.BucketType).To(Equal(entities.BucketUniversal))
		})
	})

	Context("when only changing the sub relation label", func() {
		It("keeps the bucket counters untouched", func() {
			// ARRANGE
			connection := stubs.NewConnectionStub().
				WithInitiator("user-a").
				WithRecipient("user-b").
				WithBucket(entities.BucketInner).
				Get()
			harness.testSeeder.InsertConnection(ctx, &connection)
			acceptConnection(&connection)

			newLabel := "best friend"

			// ACT
			updated, err := harness.service.RelabelConnection(ctx, connection.ID, "user-a", domain.RelabelConnectionRequest{
				SubRelationLabel: &newLabel,
			})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.SubRelationLabel).To(Equal("best friend"))
			Expect(updated.BucketType).To(Equal(entities.BucketInner))

			initiatorStats, err := harness.testSeeder.SelectUserStats(ctx, "user-a")
			Expect(err).NotTo(HaveOccurred())
			Expect(initiatorStats.InnerCount).To(Equal(1))
			Expect(initiatorStats.OuterCount).To(Equal(0))
		})
	})

	Context("when the relabel is not allowed", func() {
		When("the connection is still pending", func() {
			It("refuses with a conflict", func() {
				// ARRANGE
				connection := stubs.NewConnectionStub().WithInitiator("user-a").WithRecipient("user-b").Get()
				harness.testSeeder.InsertConnection(ctx, &connection)

				newBucket := entities.BucketOuter

				// ACT
				_, err := harness.service.RelabelConnection(ctx, connection.ID, "user-a", domain.RelabelConnectionRequest{
					BucketType: &newBucket,
				})

				// ASSERT
				Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
				Expect(err.Error()).To(ContainSubstring("not accepted"))
			})
		})

		When("the actor is not a participant", func() {
			It("is unauthorized", func() {
				// ARRANGE
				connection := stubs.NewConnectionStub().
					WithInitiator("user-a").
					WithRecipient("user-b").
					WithStatus(entities.StatusAccepted).
					Get()
				harness.testSeeder.InsertConnection(ctx, &connection)

				newBucket := entities.BucketOuter

				// ACT
				_, err := harness.service.RelabelConnection(ctx, connection.ID, "user-c", domain.RelabelConnectionRequest{
					BucketType: &newBucket,
				})

				// ASSERT
				Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindUnauthorized))
			})
		})

		When("no field is provided", func() {
			It("refuses with a conflict", func() {
				// ARRANGE
				connection := stubs.NewConnectionStub().
					WithInitiator("user-a").
					WithRecipient("user-b").
					WithStatus(entities.StatusAccepted).
					Get()
				harness.testSeeder.InsertConnection(ctx, &connection)

				// ACT
				_, err := harness.service.RelabelConnection(ctx, connection.ID, "user-a", domain.RelabelConnectionRequest{})

				// ASSERT
				Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
				Expect(err.Error()).To(ContainSubstring("nothing to update"))
			})
		})
	})
})
