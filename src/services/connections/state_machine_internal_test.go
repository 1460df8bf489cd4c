package connections

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

var _ = Describe("validateTransition", func() {
	const (
		initiatorID = "user-initiator"
		recipientID = "user-recipient"
	)

	DescribeTable("allowed transitions from Received",
		func(next entities.ConnectionStatus, actorID string) {
			err := validateTransition(initiatorID, recipientID, entities.StatusReceived, next, actorID)
			Expect(err).NotTo(HaveOccurred())
		},
		Entry("recipient accepts", entities.StatusAccepted, recipientID),
		Entry("recipient rejects", entities.StatusRejected, recipientID),
		Entry("initiator cancels", entities.StatusCancelled, initiatorID),
	)

	DescribeTable("transitions denied by actor",
		func(next entities.ConnectionStatus, actorID string) {
			err := validateTransition(initiatorID, recipientID, entities.StatusReceived, next, actorID)
			Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindUnauthorized))
		},
		Entry("initiator accepts own request", entities.StatusAccepted, initiatorID),
		Entry("initiator rejects own request", entities.StatusRejected, initiatorID),
		Entry("recipient cancels", entities.StatusCancelled, recipientID),
		Entry("outsider accepts", entities.StatusAccepted, "user-outsider"),
	)

	DescribeTable("transitions out of a settled state",
		func(current entities.ConnectionStatus) {
			err := validateTransition(initiatorID, recipientID, current, entities.StatusAccepted, recipientID)
			Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
		},
		Entry("already accepted", entities.StatusAccepted),
		Entry("already rejected", entities.StatusRejected),
		Entry("already cancelled", entities.StatusCancelled),
	)

	It("refuses Received as a transition target", func() {
		err := validateTransition(initiatorID, recipientID, entities.StatusReceived, entities.StatusReceived, recipientID)
		Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
	})

	It("refuses unknown target statuses", func() {
		err := validateTransition(initiatorID, recipientID, entities.StatusReceived, entities.ConnectionStatus("Archived"), recipientID)
		Expect(domain.KindOf(err)).To(Equal(domain.ErrorKindConflict))
	})
})
