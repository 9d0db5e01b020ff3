package events

import (
	"encoding/json"
	"errors"
)

// Notification is a structure describing an event. It holds Type field
// telling what kind of event it is and Data which is an arbitrary data
// attached to this event.
type Notification struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// NotificationWithSeq is same as Notification, but also has a sequence
// number. NotificationWithSeq is produced when event is stored. Sequence
// numbers uniquely identify events and determine their order; clients can use
// them to tell if they have already seen a particular event or, on the
// contrary, have missed some events - and to request only needed portion of
// events.
type NotificationWithSeq struct {
	Notification
	Seq int `json:"seq"`
}

// EventType is a enum describing type of event.
type EventType int

const (
	// OrderCreatedEvent is emitted when a verified sale notification creates
	// a new pending order
	OrderCreatedEvent EventType = iota

	// OrderPublishedEvent is emitted when a pending order passes the
	// duplicate check and is published
	OrderPublishedEvent

	// DuplicateDiscardedEvent is emitted when a just-created order is deleted
	// because another order for the same transaction id was already published
	DuplicateDiscardedEvent

	// OrderRefundedEvent is emitted for every order moved to refunded status
	// by a refund, chargeback or insufficient-funds notification
	OrderRefundedEvent

	// AccountProvisionedEvent is emitted when a new customer account is
	// created for a purchase
	AccountProvisionedEvent

	// IPNRejectedEvent is emitted when an IPN callback fails signature
	// verification. No HTTP callback is sent for this event, it exists for
	// observability via /get_events and websocket subscribers
	IPNRejectedEvent

	// InvalidEvent is for convertion from other types when value of source
	// type is invalid
	InvalidEvent
)

var eventTypeToStringMap = map[EventType]string{
	OrderCreatedEvent:       "order-created",
	OrderPublishedEvent:     "order-published",
	DuplicateDiscardedEvent: "duplicate-discarded",
	OrderRefundedEvent:      "order-refunded",
	AccountProvisionedEvent: "account-provisioned",
	IPNRejectedEvent:        "ipn-rejected",
}

var stringToEventTypeMap = make(map[string]EventType)

func init() {
	for eventType, eventTypeStr := range eventTypeToStringMap {
		stringToEventTypeMap[eventTypeStr] = eventType
	}
}

func (et EventType) String() string {
	eventTypeStr, ok := eventTypeToStringMap[et]
	if !ok {
		return "invalid"
	}
	return eventTypeStr
}

// EventTypeFromString converts string representation of event type to
// EventType
func EventTypeFromString(eventTypeStr string) (EventType, error) {
	et, ok := stringToEventTypeMap[eventTypeStr]
	if !ok {
		return InvalidEvent, errors.New(
			"Failed to convert string '" + eventTypeStr + "' to event type",
		)
	}
	return et, nil
}

// MarshalJSON serializes EventType to JSON. Resulting JSON value is simply
// a string representation of event type
func (et EventType) MarshalJSON() ([]byte, error) {
	return []byte("\"" + et.String() + "\""), nil
}

// UnmarshalJSON deserializes EventType from JSON. Resulting value is mapped
// from string representation of event type
func (et *EventType) UnmarshalJSON(b []byte) error {
	var j string
	err := json.Unmarshal(b, &j)
	if err != nil {
		return err
	}
	*et, err = EventTypeFromString(j)
	return err
}
