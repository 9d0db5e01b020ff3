package ipn

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"

	"github.com/caffeinepress/ipn-processing/ipn/types"
	"github.com/caffeinepress/ipn-processing/money"
	"github.com/caffeinepress/ipn-processing/storage"
)

// PostgresOrderStorage is a Storage implementation that stores the order
// ledger in postgresql database. It is a primary Storage implementation that
// should be used in production. Most methods are implemented by directly
// making SQL queries to DB and returning their results.
//
// The orders table carries a partial unique index on transaction_id for rows
// with status 'publish', so that at most one order per external transaction
// id can ever be published even when two copies of the same notification are
// reconciled concurrently.
type PostgresOrderStorage struct {
	db storage.SQLQueryExecutor
}

type queryResult interface {
	Scan(dest ...interface{}) error
}

const pgUniqueViolation = "23505"

const orderFields string = `
	id,
	transaction_id,
	status,
	amount,
	currency,
	customer_name,
	customer_email,
	account_id,
	cart,
	created_at
`

func newPostgresOrderStorage(db *sql.DB) *PostgresOrderStorage {
	return &PostgresOrderStorage{db: db}
}

func orderFromDatabaseRow(row queryResult) (*types.Order, error) {
	var id uuid.UUID
	var transactionID, status, amountStr, currency string
	var customerName, customerEmail, accountID string
	var cartJSON string
	var createdAt time.Time

	err := row.Scan(
		&id,
		&transactionID,
		&status,
		&amountStr,
		&currency,
		&customerName,
		&customerEmail,
		&accountID,
		&cartJSON,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	orderStatus, err := types.OrderStatusFromString(status)
	if err != nil {
		return nil, err
	}
	amount, err := money.AmountFromString(amountStr)
	if err != nil {
		return nil, err
	}
	var cart []types.CartLine
	if err = json.Unmarshal([]byte(cartJSON), &cart); err != nil {
		return nil, err
	}

	order := &types.Order{
		ID:            id,
		TransactionID: transactionID,
		Status:        orderStatus,
		Amount:        amount,
		Currency:      currency,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		AccountID:     accountID,
		Cart:          cart,
		CreatedAt:     createdAt,
		Fresh:         false,
	}
	return order, nil
}

// StoreOrder inserts a new order record. If the order had no id, new uuid is
// generated. Orders are always inserted in the status the engine set on them
// (pending for fresh sale orders).
func (s *PostgresOrderStorage) StoreOrder(order *types.Order) (*types.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.Must(uuid.NewV4())
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	cartJSON, err := json.Marshal(order.Cart)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`INSERT INTO orders (%s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		orderFields,
	)
	_, err = s.db.Exec(
		query,
		order.ID,
		order.TransactionID,
		order.Status.String(),
		order.Amount.String(),
		order.Currency,
		order.CustomerName,
		order.CustomerEmail,
		order.AccountID,
		string(cartJSON),
		order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to insert new order into DB: %s. Order %#v",
			err, order)
	}
	return order, nil
}

// GetOrderByID fetches an order given its internal id (uuid assigned by
// processing app), which is a primary key in orders table.
func (s *PostgresOrderStorage) GetOrderByID(id uuid.UUID) (*types.Order, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM orders WHERE id = $1`,
		orderFields,
	)
	row := s.db.QueryRow(query, id)
	order, err := orderFromDatabaseRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrNoSuchOrder
	}
	return order, err
}

// GetOrdersByTransactionID fetches all orders carrying given external
// transaction id. Normally there is at most one, but refund processing fans
// out over all matches in case duplicates were not fully prevented.
func (s *PostgresOrderStorage) GetOrdersByTransactionID(transactionID string) ([]*types.Order, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM orders WHERE transaction_id = $1`,
		orderFields,
	)
	return s.queryOrders(query, transactionID)
}

// GetOrdersWithFilter gets orders filtered by status and/or transaction id.
// Empty values of filters mean do not use this filter, with non-empty filter
// only orders that have equal value of corresponding parameter will be
// included in resulting slice.
func (s *PostgresOrderStorage) GetOrdersWithFilter(statusFilter string, transactionIDFilter string) ([]*types.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders", orderFields)
	queryArgs := make([]interface{}, 0, 2)
	whereClause := make([]string, 0, 2)
	argc := 0

	if statusFilter != "" {
		argc++
		whereClause = append(whereClause, fmt.Sprintf("status = $%d", argc))
		queryArgs = append(queryArgs, statusFilter)
	}
	if transactionIDFilter != "" {
		argc++
		whereClause = append(whereClause, fmt.Sprintf("transaction_id = $%d", argc))
		queryArgs = append(queryArgs, transactionIDFilter)
	}
	for i, clause := range whereClause {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	return s.queryOrders(query, queryArgs...)
}

func (s *PostgresOrderStorage) queryOrders(query string, args ...interface{}) ([]*types.Order, error) {
	result := make([]*types.Order, 0, 4)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	for rows.Next() {
		order, err := orderFromDatabaseRow(rows)
		if err != nil {
			return result, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (s *PostgresOrderStorage) SetOrderStatus(id uuid.UUID, status types.OrderStatus) error {
	return s.execOnOrder(
		`UPDATE orders SET status = $1 WHERE id = $2`,
		status.String(),
		id,
	)
}

// PublishOrder moves an order to published status. The partial unique index
// on (transaction_id) WHERE status = 'publish' makes a concurrent competing
// publish fail with a unique violation, which is translated to
// ErrDuplicatePublish so the engine can discard the duplicate.
func (s *PostgresOrderStorage) PublishOrder(id uuid.UUID) error {
	err := s.execOnOrder(
		`UPDATE orders SET status = $1 WHERE id = $2`,
		types.PublishedOrder.String(),
		id,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pgUniqueViolation {
		return ErrDuplicatePublish
	}
	return err
}

func (s *PostgresOrderStorage) DeleteOrder(id uuid.UUID) error {
	if err := s.execOnOrder(`DELETE FROM orders WHERE id = $1`, id); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM order_notes WHERE order_id = $1`, id)
	return err
}

func (s *PostgresOrderStorage) AppendOrderNote(id uuid.UUID, note string) error {
	_, err := s.db.Exec(
		`INSERT INTO order_notes (order_id, note, created_at)
		VALUES ($1, $2, $3)`,
		id,
		note,
		time.Now(),
	)
	return err
}

func (s *PostgresOrderStorage) GetOrderNotes(id uuid.UUID) ([]string, error) {
	result := make([]string, 0, 4)

	rows, err := s.db.Query(
		`SELECT note FROM order_notes WHERE order_id = $1 ORDER BY created_at`,
		id,
	)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	for rows.Next() {
		var note string
		if err := rows.Scan(&note); err != nil {
			return result, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}

// SetOrderTransactionID records the external transaction id on an order. The
// id is set exactly once, right after the order is inserted.
func (s *PostgresOrderStorage) SetOrderTransactionID(id uuid.UUID, transactionID string) error {
	return s.execOnOrder(
		`UPDATE orders SET transaction_id = $1 WHERE id = $2`,
		transactionID,
		id,
	)
}

func (s *PostgresOrderStorage) execOnOrder(query string, args ...interface{}) error {
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoSuchOrder
	}
	return nil
}

func (s *PostgresOrderStorage) WithTransaction(sqlTX *sql.Tx) Storage {
	return &PostgresOrderStorage{db: sqlTX}
}

func (s *PostgresOrderStorage) CurrentTransaction() *sql.Tx {
	sqlTX, _ := s.db.(*sql.Tx)
	return sqlTX
}

func (s *PostgresOrderStorage) GetDB() *sql.DB {
	db, _ := s.db.(*sql.DB)
	return db
}
