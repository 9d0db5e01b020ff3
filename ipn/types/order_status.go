package types

import (
	"encoding/json"
	"errors"
)

// OrderStatus is a enum describing current state of an order in the ledger.
type OrderStatus int

const (
	// PendingOrder is a status for orders that have been created from a sale
	// notification, but not yet checked against the ledger for duplicates
	PendingOrder OrderStatus = iota

	// PublishedOrder is a status received by an order once the duplicate
	// check passed. At most one order per external transaction id may ever
	// be published
	PublishedOrder

	// RefundedOrder is a status received by an order when a refund,
	// chargeback or insufficient-funds notification arrives for its
	// transaction id. Orders become refunded from any prior status
	RefundedOrder

	// InvalidOrderStatus is a status value generated when converting status
	// from other type and value of source type is invalid
	InvalidOrderStatus
)

// Status strings match the post statuses the host shop platform uses, so that
// records written by this app read naturally in its admin tooling.
var orderStatusToStringMap = map[OrderStatus]string{
	PendingOrder:   "pending",
	PublishedOrder: "publish",
	RefundedOrder:  "refunded",
}

var stringToOrderStatusMap = make(map[string]OrderStatus)

func init() {
	for status, statusStr := range orderStatusToStringMap {
		stringToOrderStatusMap[statusStr] = status
	}
}

func (os OrderStatus) String() string {
	statusStr, ok := orderStatusToStringMap[os]
	if !ok {
		return "invalid"
	}
	return statusStr
}

// OrderStatusFromString converts string representation of order status to
// OrderStatus
func OrderStatusFromString(statusStr string) (OrderStatus, error) {
	status, ok := stringToOrderStatusMap[statusStr]
	if !ok {
		return InvalidOrderStatus, errors.New(
			"Failed to convert string '" + statusStr + "' to order status",
		)
	}
	return status, nil
}

// MarshalJSON serializes OrderStatus to JSON. Resulting JSON value is simply
// a string representation of status
func (os OrderStatus) MarshalJSON() ([]byte, error) {
	return []byte("\"" + os.String() + "\""), nil
}

// UnmarshalJSON deserializes OrderStatus from JSON. Resulting value is mapped
// from string representation of order status
func (os *OrderStatus) UnmarshalJSON(b []byte) error {
	var j string
	err := json.Unmarshal(b, &j)
	if err != nil {
		return err
	}
	*os, err = OrderStatusFromString(j)
	return err
}
