package connections_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// Cenário completo: atravessa o ciclo de vida das duas variantes de aresta
// numa sequência única, conferindo contadores e propagação a cada passo.
var _ = Describe("Connection lifecycle", func() {
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

	It("walks a pair of users through request, accept, relabel and delete", func() {
		// user-a pede conexão a user-b.
		connection, err := harness.service.CreateConnection(ctx, domain.CreateConnectionRequest{
			InitiatorID:      "user-a",
			RecipientID:      "user-b",
			BucketType:       entities.BucketOuter,
			RelationLabel:    "Friend",
			SubRelationLabel: "friend",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(connection.Status).To(Equal(entities.StatusReceived))

		// user-b aceita: bucket conta para os dois, aceito só para quem aceitou.
		accepted, err := harness.service.UpdateConnectionStatus(ctx, connection.ID, entities.StatusAccepted, "user-b")
		Expect(err).NotTo(HaveOccurred())
		Expect(accepted.Status).To(Equal(entities.StatusAccepted))

		statsA, err := harness.testSeeder.SelectUserStats(ctx, "user-a")
		Expect(err).NotTo(HaveOccurred())
		Expect(statsA.OuterCount).To(Equal(1))
		Expect(statsA.AcceptedCount).To(Equal(0))

		statsB, err := harness.testSeeder.SelectUserStats(ctx, "user-b")
		Expect(err).NotTo(HaveOccurred())
		Expect(statsB.OuterCount).To(Equal(1))
		Expect(statsB.AcceptedCount).To(Equal(1))

		// user-a move a conexão para Inner: o contador desloca nos dois lados.
		newBucket := entities.BucketInner
		_, err = harness.service.RelabelConnection(ctx, connection.ID, "user-a", domain.RelabelConnectionRequest{
			BucketType: &newBucket,
		})
		Expect(err).NotTo(HaveOccurred())

		statsA, err = harness.testSeeder.SelectUserStats(ctx, "user-a")
		Expect(err).NotTo(HaveOccurred())
		Expect(statsA.OuterCount).To(Equal(0))
		Expect(statsA.InnerCount).To(Equal(1))

		statsB, err = harness.testSeeder.SelectUserStats(ctx, "user-b")
		Expect(err).NotTo(HaveOccurred())
		Expect(statsB.OuterCount).To(Equal(0))
		Expect(statsB.InnerCount).To(Equal(1))

		// Em paralelo, user-a abre uma aresta V2 bidirecional com user-c.
		edge, err := harness.service.CreateConnectionV2(ctx, "user-a", "user-c", "mentor")
		Expect(err).NotTo(HaveOccurred())

		_, err = harness.service.UpdateConnectionV2Status(ctx, edge.ID, entities.StatusAccepted, "user-c")
		Expect(err).NotTo(HaveOccurred())

		states, err := harness.testSeeder.SelectParticipantStates(ctx, edge.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(states["user-a"].SubRelation).To(Equal("mentor"))
		Expect(states["user-c"].SubRelation).To(Equal("mentee"))

		// user-c renomeia o próprio rótulo: a troca dele é cobrada, o reflexo
		// em user-a é gratuito.
		newLabel := "friend"
		updated, err := harness.service.RelabelConnectionV2(ctx, edge.ID, "user-c", domain.RelabelConnectionV2Request{
			SubRelation: &newLabel,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.ParticipantState["user-c"].ModificationCount).To(Equal(1))
		Expect(updated.ParticipantState["user-a"].ModificationCount).To(Equal(0))

		// A aresta V2 não mexe nos agregados existentes.
		statsA, err = harness.testSeeder.SelectUserStats(ctx, "user-a")
		Expect(err).NotTo(HaveOccurred())
		Expect(statsA.InnerCount).To(Equal(1))
		Expect(statsA.OuterCount).To(Equal(0))

		// Por fim user-a remove a conexão V1.
		Expect(harness.service.DeleteConnection(ctx, connection.ID)).To(Succeed())

		_, err = harness.service.GetConnection(ctx, connection.ID)
		Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindNotFound))
	})
})
