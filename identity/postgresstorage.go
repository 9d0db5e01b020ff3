package identity

import (
	"database/sql"

	"github.com/caffeinepress/ipn-processing/storage"
)

// PostgresIdentityStorage is a Storage implementation that stores accounts
// in postgresql database.
type PostgresIdentityStorage struct {
	db storage.SQLQueryExecutor
}

// GetAccountByEmail fetches the account registered for given email and
// returns resulting Account structure, or nil when there is none. A missing
// account is not an error.
func (s *PostgresIdentityStorage) GetAccountByEmail(email string) (*Account, error) {
	var account Account
	err := s.db.QueryRow(
		`SELECT id, email, username, display_name, password_hash FROM accounts
		WHERE email = $1`,
		email,
	).Scan(
		&account.ID,
		&account.Email,
		&account.Username,
		&account.DisplayName,
		&account.PasswordHash,
	)

	switch err {
	case nil:
		return &account, nil
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, err
	}
}

func (s *PostgresIdentityStorage) AccountExists(email string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

func (s *PostgresIdentityStorage) StoreAccount(account *Account) error {
	_, err := s.db.Exec(
		`INSERT INTO accounts (id, email, username, display_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)`,
		account.ID,
		account.Email,
		account.Username,
		account.DisplayName,
		account.PasswordHash,
	)
	return err
}
