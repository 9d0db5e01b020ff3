package ipn

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"github.com/caffeinepress/ipn-processing/ipn/types"
)

// InMemoryOrderStorage stores the order ledger in memory, simply using a
// slice of pointers guarded by a mutex. It implements Storage interface.
// InMemoryOrderStorage is made for testing only (to get a working Storage
// implementation without external dependencies) and does not provide any
// kind of persistence. PostgresOrderStorage should be used in production.
type InMemoryOrderStorage struct {
	mutex  *sync.Mutex
	orders []*types.Order
	notes  map[uuid.UUID][]string
}

func NewInMemoryOrderStorage() *InMemoryOrderStorage {
	return &InMemoryOrderStorage{
		mutex:  &sync.Mutex{},
		orders: make([]*types.Order, 0),
		notes:  make(map[uuid.UUID][]string),
	}
}

func (s *InMemoryOrderStorage) findOrder(id uuid.UUID) *types.Order {
	for _, order := range s.orders {
		if order.ID == id {
			return order
		}
	}
	return nil
}

// StoreOrder adds a new order to the ledger. If the order has no id yet, a
// new uuid is generated for it.
func (s *InMemoryOrderStorage) StoreOrder(order *types.Order) (*types.Order, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.Must(uuid.NewV4())
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	stored := *order
	stored.Fresh = false
	s.orders = append(s.orders, &stored)
	return order, nil
}

func (s *InMemoryOrderStorage) GetOrderByID(id uuid.UUID) (*types.Order, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return nil, ErrNoSuchOrder
	}
	orderCopy := *order
	return &orderCopy, nil
}

func (s *InMemoryOrderStorage) GetOrdersByTransactionID(transactionID string) ([]*types.Order, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := make([]*types.Order, 0)
	for _, order := range s.orders {
		if order.TransactionID == transactionID {
			orderCopy := *order
			result = append(result, &orderCopy)
		}
	}
	return result, nil
}

// GetOrdersWithFilter gets orders filtered by status and/or transaction id.
// Empty values of filters mean do not use this filter.
func (s *InMemoryOrderStorage) GetOrdersWithFilter(statusFilter string, transactionIDFilter string) ([]*types.Order, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := make([]*types.Order, 0)
	for _, order := range s.orders {
		if statusFilter != "" && order.Status.String() != statusFilter {
			continue
		}
		if transactionIDFilter != "" && order.TransactionID != transactionIDFilter {
			continue
		}
		orderCopy := *order
		result = append(result, &orderCopy)
	}
	return result, nil
}

func (s *InMemoryOrderStorage) SetOrderStatus(id uuid.UUID, status types.OrderStatus) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return ErrNoSuchOrder
	}
	order.Status = status
	return nil
}

// PublishOrder moves an order to published status. Like the postgres
// implementation, it refuses to publish when another order with the same
// transaction id is already published, returning ErrDuplicatePublish.
func (s *InMemoryOrderStorage) PublishOrder(id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return ErrNoSuchOrder
	}
	for _, other := range s.orders {
		if other.ID != id && other.TransactionID == order.TransactionID &&
			other.TransactionID != "" &&
			other.Status == types.PublishedOrder {
			return ErrDuplicatePublish
		}
	}
	order.Status = types.PublishedOrder
	return nil
}

func (s *InMemoryOrderStorage) DeleteOrder(id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, order := range s.orders {
		if order.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			delete(s.notes, id)
			return nil
		}
	}
	return ErrNoSuchOrder
}

func (s *InMemoryOrderStorage) AppendOrderNote(id uuid.UUID, note string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.findOrder(id) == nil {
		return ErrNoSuchOrder
	}
	s.notes[id] = append(s.notes[id], note)
	return nil
}

func (s *InMemoryOrderStorage) GetOrderNotes(id uuid.UUID) ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.findOrder(id) == nil {
		return nil, ErrNoSuchOrder
	}
	return append([]string(nil), s.notes[id]...), nil
}

func (s *InMemoryOrderStorage) SetOrderTransactionID(id uuid.UUID, transactionID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return ErrNoSuchOrder
	}
	order.TransactionID = transactionID
	return nil
}

func (s *InMemoryOrderStorage) WithTransaction(sqlTX *sql.Tx) Storage {
	log.Printf(
		"Warning: WithTransaction called on memory order storage. Memory " +
			"storage does not support transactions, so it just does nothing.",
	)
	return s
}

func (s *InMemoryOrderStorage) CurrentTransaction() *sql.Tx {
	return nil
}

func (s *InMemoryOrderStorage) GetDB() *sql.DB {
	return nil
}
