package ipn

import (
	"log"

	"github.com/gofrs/uuid"

	"github.com/caffeinepress/ipn-processing/events"
	"github.com/caffeinepress/ipn-processing/ipn/types"
)

// OrderEventData is the payload attached to order lifecycle events.
type OrderEventData struct {
	OrderID       uuid.UUID `json:"order_id"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
}

// AccountEventData is the payload attached to account-provisioned events.
type AccountEventData struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// RejectedEventData is the payload attached to ipn-rejected events.
type RejectedEventData struct {
	TransactionID   string `json:"transaction_id"`
	TransactionType string `json:"transaction_type"`
}

// notify emits an event through the broker. Event delivery is observability,
// not correctness: a failure to store an event is logged and reconciliation
// continues.
func (e *Engine) notify(eventType events.EventType, data interface{}) {
	if e.eventBroker == nil {
		return
	}
	if err := e.eventBroker.Notify(eventType, data); err != nil {
		log.Printf(
			"Warning: failed to store event type %s with data %v: %s",
			eventType.String(),
			data,
			err,
		)
	}
}

func (e *Engine) notifyOrderEvent(eventType events.EventType, order *types.Order, status types.OrderStatus) {
	e.notify(eventType, OrderEventData{
		OrderID:       order.ID,
		TransactionID: order.TransactionID,
		Status:        status.String(),
	})
}
