package connections_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/test_artefacts/stubs"
)

var _ = Describe("CreateConnection", func() {
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

	Context("when creating a fresh connection", func() {
		When("calling CreateConnection between two unrelated users", func() {
			It("persists the edge with Received status", func() {
				// ACT
				connection, err := harness.service.CreateConnection(ctx, domain.CreateConnectionRequest{
					InitiatorID:      "user-a",
					RecipientID:      "user-b",
					BucketType:       entities.BucketInner,
					RelationLabel:    "Friend",
					SubRelationLabel: "close friend",
				})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(connection.ID).NotTo(BeZero())
				Expect(connection.Status).To(Equal(entities.StatusReceived))
				Expect(connection.BucketType).To(Equal(entities.BucketInner))

				databaseConnections, err := harness.testSeeder.SelectConnectionsByUsers(ctx, []string{"user-a"})
				Expect(err).NotTo(HaveOccurred())
				Expect(databaseConnections).To(HaveLen(1))
				Expect(databaseConnections[0].Status).To(Equal(entities.StatusReceived))
			})

			It("notifies the recipient", func() {
				// ACT
				_, err := harness.service.CreateConnection(ctx, domain.CreateConnectionRequest{
					InitiatorID:   "user-a",
					RecipientID:   "user-b",
					BucketType:    entities.BucketOuter,
					RelationLabel: "Friend",
				})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Eventually(harness.notifier.All).Should(ContainElement(
					HaveField("TargetID", "user-b"),
				))
			})
		})
	})

	Context("when the pair already has an edge", func() {
		When("a Received request exists in the same direction", func() {
			It("rejects the duplicate with a conflict", func() {
				// ARRANGE
				existing := stubs.NewConnectionStub().WithInitiator("user-a").WithRecipient("user-b").Get()
				harness.testSeeder.InsertConnection(ctx, &existing)

				// ACT
				_, err := harness.service.CreateConnection(ctx, domain.CreateConnectionRequest{
					InitiatorID: "user-a",
					RecipientID: "user-b",
					BucketType:  entities.BucketOuter,
				})

				// ASSERT
				Expect(err).To(HaveOccurred())
				Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
				Expect(err.Error()).To(ContainSubstring("connection request already sent"))
			})
		})

		When("a Received request exists in the opposite direction", func() {
			It("rejects the duplicate regardless of direction", func() {
				// ARRANGE
				existing := stubs.NewConnectionStub().WithInitiator("user-b").WithRecipient("user-a").Get()
				harness.testSeeder.InsertConnection(ctx, &existing)

				// ACT
				_, err := harness.service.CreateConnection(ctx, domain.CreateConnectionRequest{
					InitiatorID: "user-a",
					RecipientID: "user-b",
					BucketType:  entities.BucketOuter,
				})

				// ASSERT
				Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
			})
		})

		When("the pair is already Accepted", func() {
			It("says the users are already connected", func() {
				// ARRANGE
				existing := stubs.NewConnectionStub().
					WithInitiator("user-a").
					WithRecipient("user-b").
					WithStatus(entities.StatusAccepted).
					Get()
				harness.testSeeder.InsertConnection(ctx, &existing)

				// ACT
				_, err := harness.service.CreateConnection(ctx, domain.CreateConnectionRequest{
					InitiatorID: "user-a",
					RecipientID: "user-b",
					BucketType:  entities.BucketOuter,
				})

				// ASSERT
				Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
				Expect(err.Error()).To(ContainSubstring("users are already connected"))
			})
		})

		When("a previous edge was Rejected", func() {
			It("allows a new request", func() {
				// ARRANGE
				rejected := stubs.NewConnectionStub().
					WithInitiator("user-a").
					WithRecipient("user-b").
					WithStatus(entities.StatusRejected).
					Get()
				harness.testSeeder.InsertConnection(ctx, &rejected)

				// ACT
				connection, err := harness.service.CreateConnection(ctx, domain.CreateConnectionRequest{
					InitiatorID: "user-a",
					RecipientID: "user-b",
					BucketType:  entities.BucketOuter,
				})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(connection.Status).To(Equal(entities.StatusReceived))
			})
		})
	})

	Context("when the request is invalid", func() {
		When("initiator and recipient are the same user", func() {
			It("rejects the self connection", func() {
				// ACT
				_, err := harness.service.CreateConnection(ctx, domain.CreateConnectionRequest{
					InitiatorID: "user-a",
					RecipientID: "user-a",
					BucketType:  entities.BucketOuter,
				})

				// ASSERT
				Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
				Expect(err.Error()).To(ContainSubstring("yourself"))
			})
		})

		When("the bucket type is unknown", func() {
			It("rejects the request", func() {
				// ACT
				_, err := harness.service.CreateConnection(ctx, domain.CreateConnectionRequest{
					InitiatorID: "user-a",
					RecipientID: "user-b",
					BucketType:  entities.BucketType("Sideways"),
				})

				// ASSERT
				Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
			})
		})
	})
})
