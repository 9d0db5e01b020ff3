package ipn

import (
	"database/sql"
	"errors"
	"log"

	"github.com/gofrs/uuid"

	"github.com/caffeinepress/ipn-processing/ipn/types"
)

// ErrNoSuchOrder is returned by storage lookups and mutations that reference
// an order id not present in the ledger.
var ErrNoSuchOrder = errors.New("No order with such id in ledger")

// ErrDuplicatePublish is returned by PublishOrder when another order for the
// same external transaction id is already published. The ledger enforces this
// at the storage layer so that two concurrently processed copies of the same
// notification cannot both publish, regardless of what the engine's own
// duplicate check saw.
var ErrDuplicatePublish = errors.New(
	"Another order for this transaction id is already published",
)

// Storage is responsible for storing and fetching the order ledger: orders
// created from payment notifications, their audit notes and statuses. It is
// the transaction-ledger collaborator of the reconciliation engine, keyed by
// JVZoo's external transaction id.
type Storage interface {
	StoreOrder(order *types.Order) (*types.Order, error)
	GetOrderByID(id uuid.UUID) (*types.Order, error)
	GetOrdersByTransactionID(transactionID string) ([]*types.Order, error)
	GetOrdersWithFilter(statusFilter string, transactionIDFilter string) ([]*types.Order, error)
	SetOrderStatus(id uuid.UUID, status types.OrderStatus) error
	PublishOrder(id uuid.UUID) error
	DeleteOrder(id uuid.UUID) error
	AppendOrderNote(id uuid.UUID, note string) error
	GetOrderNotes(id uuid.UUID) ([]string, error)
	SetOrderTransactionID(id uuid.UUID, transactionID string) error

	WithTransaction(sqlTX *sql.Tx) Storage
	CurrentTransaction() *sql.Tx
	GetDB() *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	if db == nil {
		log.Print("Warning: initializing in-memory order storage since no db " +
			"connection is passed. Note it should not be used in production")
		return NewInMemoryOrderStorage()
	}

	return newPostgresOrderStorage(db)
}
