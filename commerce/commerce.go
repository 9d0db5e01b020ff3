package commerce

import (
	"database/sql"
	"log"

	"github.com/caffeinepress/ipn-processing/settings"
)

// Context is the narrow interface to the host shop platform the
// reconciliation engine needs: the shop's display currency, product titles
// for cart lines, and clearing a customer's transient cart state after a
// purchase is recorded.
type Context interface {
	Currency() string
	ProductTitle(productID string) (string, error)
	ClearCart(email string) error
}

// NewContext creates a Context backed by settings and, when a db connection
// is given, the shop's product and cart tables. With a nil db an in-memory
// variant is returned for tests.
func NewContext(s settings.Settings, db *sql.DB) Context {
	currency := s.GetString("commerce.currency")

	if db == nil {
		log.Print("Warning: initializing in-memory commerce context since " +
			"no db connection is passed. Note it should not be used in " +
			"production")
		return NewInMemoryContext(currency)
	}
	return &postgresContext{currency: currency, db: db}
}

type postgresContext struct {
	currency string
	db       *sql.DB
}

func (c *postgresContext) Currency() string {
	return c.currency
}

// ProductTitle fetches the display title of a product. An unknown product id
// is not an error: JVZoo buttons can be configured before the product record
// exists, so the bare id is used as the title then.
func (c *postgresContext) ProductTitle(productID string) (string, error) {
	var title string
	err := c.db.QueryRow(
		`SELECT title FROM products WHERE id = $1`,
		productID,
	).Scan(&title)

	switch err {
	case nil:
		return title, nil
	case sql.ErrNoRows:
		return productID, nil
	default:
		return "", err
	}
}

func (c *postgresContext) ClearCart(email string) error {
	_, err := c.db.Exec(`DELETE FROM carts WHERE customer_email = $1`, email)
	return err
}
