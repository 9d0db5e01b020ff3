package events

import (
	"database/sql"
	"log"
	"sync"
)

type storedEvent = NotificationWithSeq

// EventStorage stores events with assigned sequence numbers and remembers
// how far HTTP callback delivery got.
type EventStorage interface {
	StoreEvent(event Notification) (*storedEvent, error)
	GetEventsFromSeq(seq int) ([]*storedEvent, error)

	GetLastHTTPSentSeq() (int, error)
	StoreLastHTTPSentSeq(seq int) error

	GetDB() *sql.DB
}

// NewEventStorage creates a storage for events: when db connection is nil,
// an in-memory storage suitable only for tests is returned, otherwise events
// are stored in postgres.
func NewEventStorage(db *sql.DB) EventStorage {
	if db == nil {
		log.Print("Warning: initializing in-memory event storage since no db " +
			"connection is passed. Note it should not be used in production")
		return &InMemoryEventStorage{
			mutex:  &sync.Mutex{},
			events: make([]*storedEvent, 0),
			// in-memory sequence numbers start at 0, postgres SERIAL at 1
			lastHTTPSentSeq: -1,
		}
	}
	return &PostgresEventStorage{db: db}
}
