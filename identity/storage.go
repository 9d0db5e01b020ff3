package identity

import (
	"database/sql"
	"log"
)

// Account is a shop customer account. Accounts are owned by the host shop
// platform; this app only looks them up by email and creates new ones when
// account provisioning on purchase is enabled.
type Account struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`

	// PasswordHash is the bcrypt hash of the account password. The cleartext
	// password exists only transiently, for the new-account email
	PasswordHash string `json:"-"`
}

// Storage is responsible for storing and fetching customer accounts. It is
// the identity collaborator of the reconciliation engine.
type Storage interface {
	GetAccountByEmail(email string) (*Account, error)
	AccountExists(email string) (bool, error)
	StoreAccount(account *Account) error
}

func NewStorage(db *sql.DB) Storage {
	if db == nil {
		log.Print("Warning: initializing in-memory identity storage since no " +
			"db connection is passed. Note it should not be used in production")
		return NewInMemoryIdentityStorage()
	}

	return &PostgresIdentityStorage{db: db}
}
