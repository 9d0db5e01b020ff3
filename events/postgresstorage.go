package events

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/caffeinepress/ipn-processing/storage"
)

// PostgresEventStorage stores events in postgresql database. Methods directly
// execute SQL queries that store/fetch required data.
type PostgresEventStorage struct {
	db *sql.DB
}

// StoreEvent stores event in database, assigning a sequence number to it.
// Returned storedEvent has the same type and data as event arg, but also has
// a sequence number.
// Note that sequence numbers can have gaps in case of rollback: seq is an
// auto-incrementing SERIAL column and does not decrement when a transaction
// that consumed a value is rolled back.
func (s *PostgresEventStorage) StoreEvent(event Notification) (*storedEvent, error) {
	eventDataJSON, err := json.Marshal(&event.Data)
	if err != nil {
		return nil, err
	}

	var seq int
	err = s.db.QueryRow(`INSERT INTO events (type, data)
        VALUES ($1, $2) RETURNING seq`, event.Type.String(), eventDataJSON,
	).Scan(&seq)
	if err != nil {
		return nil, err
	}

	return &storedEvent{Notification: event, Seq: seq}, nil
}

// GetEventsFromSeq fetches events from DB starting with given sequence number
// and returns them as a slice.
func (s *PostgresEventStorage) GetEventsFromSeq(seq int) ([]*storedEvent, error) {
	var eventSeq int
	var eventTypeStr, marshaledData string
	var eventData interface{}

	result := make([]*storedEvent, 0, 20)

	rows, err := s.db.Query(`SELECT seq, type, data FROM events
        WHERE seq >= $1 ORDER BY seq`, seq,
	)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	for rows.Next() {
		err := rows.Scan(&eventSeq, &eventTypeStr, &marshaledData)
		if err != nil {
			return result, err
		}
		eventType, err := EventTypeFromString(eventTypeStr)
		if err != nil {
			return result, err
		}
		err = json.Unmarshal([]byte(marshaledData), &eventData)

		if err != nil {
			return result, err
		}
		result = append(result, &storedEvent{
			Notification: Notification{
				Type: eventType,
				Data: eventData,
			},
			Seq: eventSeq,
		})
	}
	err = rows.Err()
	if err != nil {
		return result, err
	}

	return result, nil
}

func (s *PostgresEventStorage) GetLastHTTPSentSeq() (int, error) {
	lastSeqStr, err := storage.GetMeta(s.db, "last_http_sent_seq", "0")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(lastSeqStr)
}

func (s *PostgresEventStorage) StoreLastHTTPSentSeq(seq int) error {
	return storage.SetMeta(s.db, "last_http_sent_seq", strconv.Itoa(seq))
}

func (s *PostgresEventStorage) GetDB() *sql.DB {
	return s.db
}
