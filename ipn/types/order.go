package types

import (
	"time"

	"github.com/gofrs/uuid"

	"github.com/caffeinepress/ipn-processing/money"
)

// CartLine is a single purchased item on an order. Orders created from IPN
// callbacks always carry exactly one line.
type CartLine struct {
	ProductID string       `json:"product_id"`
	Title     string       `json:"title"`
	Price     money.Amount `json:"price"`
	Quantity  int          `json:"quantity"`

	// PriceID is the 0-based variable-pricing tier of the product, -1 when
	// the purchase did not reference a package number
	PriceID int `json:"price_id"`
}

// Order is a ledger record for a purchase reported by the payment processor.
// Orders are owned by the ledger storage; the reconciliation engine only
// creates them and moves them between statuses.
type Order struct {
	ID uuid.UUID `json:"id"`

	// TransactionID is the external transaction (receipt) id the order was
	// created for. Set exactly once, used as the dedup key
	TransactionID string `json:"transaction_id"`

	Status OrderStatus `json:"status"`

	Amount   money.Amount `json:"amount"`
	Currency string       `json:"currency"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`

	// AccountID is the shop account the purchase is attached to, empty when
	// the customer has no account and provisioning is disabled
	AccountID string `json:"account_id"`

	Cart []CartLine `json:"cart"`

	CreatedAt time.Time `json:"created_at"`

	// Fresh is true for orders that were created by this process and have
	// not been read back from storage
	Fresh bool `json:"-"`
}
