package connections_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/test_artefacts/comparer"
	"github.com/cantdoitbye/backend-sub007/src/test_artefacts/stubs"
)

var _ = Describe("Connection queries", func() {
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

	Context("when listing a user's connections", func() {
		It("returns edges from both directions", func() {
			// ARRANGE
			sent := stubs.NewConnectionStub().WithInitiator("user-a").WithRecipient("user-b").Get()
			received := stubs.NewConnectionStub().WithInitiator("user-c").WithRecipient("user-a").Get()
			unrelated := stubs.NewConnectionStub().WithInitiator("user-x").WithRecipient("user-y").Get()
			harness.testSeeder.InsertConnection(ctx, &sent)
			harness.testSeeder.InsertConnection(ctx, &received)
			harness.testSeeder.InsertConnection(ctx, &unrelated)

			// ACT
			connections, err := harness.service.ListConnections(ctx, "user-a", domain.ConnectionFilter{})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(connections).To(HaveLen(2))
		})

		It("filters by status", func() {
			// ARRANGE
			pending := stubs.NewConnectionStub().WithInitiator("user-a").WithRecipient("user-b").Get()
			accepted := stubs.NewConnectionStub().
				WithInitiator("user-a").
				WithRecipient("user-c").
				WithStatus(entities.StatusAccepted).
				Get()
			harness.testSeeder.InsertConnection(ctx, &pending)
			harness.testSeeder.InsertConnection(ctx, &accepted)

			status := entities.StatusAccepted

			// ACT
			connections, err := harness.service.ListConnections(ctx, "user-a", domain.ConnectionFilter{Status: &status})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(connections).To(HaveLen(1))
			Expect(connections[0].ID).To(Equal(accepted.ID))
		})

		It("filters by bucket", func() {
			// ARRANGE
			inner := stubs.NewConnectionStub().
				WithInitiator("user-a").
				WithRecipient("user-b").
				WithBucket(entities.BucketInner).
				Get()
			outer := stubs.NewConnectionStub().
				WithInitiator("user-a").
				WithRecipient("user-c").
				WithBucket(entities.BucketOuter).
				Get()
			harness.testSeeder.InsertConnection(ctx, &inner)
			harness.testSeeder.InsertConnection(ctx, &outer)

			bucket := entities.BucketInner

			// ACT
			connections, err := harness.service.ListConnections(ctx, "user-a", domain.ConnectionFilter{BucketType: &bucket})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(connections).To(HaveLen(1))
			Expect(connections[0].ID).To(Equal(inner.ID))
		})
	})

	Context("when fetching a single edge", func() {
		It("returns the stored connection", func() {
			// ARRANGE
			connection := stubs.NewConnectionStub().WithInitiator("user-a").WithRecipient("user-b").Get()
			harness.testSeeder.InsertConnection(ctx, &connection)

			// ACT
			found, err := harness.service.GetConnection(ctx, connection.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeComparableTo(connection, comparer.TimeWithinTolerance(200)))
		})

		It("returns not found for an unknown id", func() {
			// ACT
			_, err := harness.service.GetConnection(ctx, 424242)

			// ASSERT
			Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindNotFound))
		})
	})

	Context("when fetching a v2 edge", func() {
		It("returns the edge with the full participant map", func() {
			// ARRANGE
			connection := stubs.NewConnectionV2Stub().WithInitiator("user-a").WithRecipient("user-b").Get()
			harness.testSeeder.InsertConnectionV2(ctx, &connection)

			// ACT
			found, err := harness.service.GetConnectionV2(ctx, connection.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ParticipantState).To(HaveLen(2))
			Expect(found.ParticipantState).To(HaveKey("user-a"))
			Expect(found.ParticipantState).To(HaveKey("user-b"))
		})
	})

	Context("when deleting an edge", func() {
		It("removes it together with its bucket assignment", func() {
			// ARRANGE
			connection := stubs.NewConnectionStub().WithInitiator("user-a").WithRecipient("user-b").Get()
			harness.testSeeder.InsertConnection(ctx, &connection)

			// ACT
			err := harness.service.DeleteConnection(ctx, connection.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())

			_, err = harness.service.GetConnection(ctx, connection.ID)
			Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindNotFound))
		})

		It("returns not found for an unknown id", func() {
			// ACT
			err := harness.service.DeleteConnection(ctx, 424242)

			// ASSERT
			Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindNotFound))
		})
	})
})
