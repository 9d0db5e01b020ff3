package ipn

import (
	"github.com/gofrs/uuid"
)

// OutcomeType is a enum describing what processing a notification resulted
// in. Outcomes exist for observability and tests; the sender only ever sees
// an HTTP acknowledgement.
type OutcomeType int

const (
	// OutcomePublished means a sale notification created an order and the
	// order was published
	OutcomePublished OutcomeType = iota

	// OutcomeDuplicateDiscarded means a sale notification created an order,
	// but another order for the same transaction id was already published,
	// so the new order was deleted again
	OutcomeDuplicateDiscarded

	// OutcomeRefunded means a refund-like notification moved one or more
	// orders to refunded status
	OutcomeRefunded

	// OutcomeNoOp means the notification was acknowledged but intentionally
	// did not touch the ledger (unknown transaction type, refund without a
	// receipt id, malformed amount)
	OutcomeNoOp

	// OutcomeVerificationFailed means the claimed signature did not match
	// and the notification was dropped without any ledger access
	OutcomeVerificationFailed
)

var outcomeTypeToStringMap = map[OutcomeType]string{
	OutcomePublished:          "published",
	OutcomeDuplicateDiscarded: "duplicate-discarded",
	OutcomeRefunded:           "refunded",
	OutcomeNoOp:               "no-op",
	OutcomeVerificationFailed: "verification-failed",
}

func (ot OutcomeType) String() string {
	outcomeStr, ok := outcomeTypeToStringMap[ot]
	if !ok {
		return "invalid"
	}
	return outcomeStr
}

// Outcome describes the result of processing one notification.
type Outcome struct {
	Type OutcomeType

	// OrderID is the order created by a sale notification. For
	// OutcomePublished it is the published order, for
	// OutcomeDuplicateDiscarded the deleted one
	OrderID uuid.UUID

	// OrderIDs lists every order moved to refunded status by a refund-like
	// notification
	OrderIDs []uuid.UUID
}
