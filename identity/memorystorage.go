package identity

import (
	"sync"
)

// InMemoryIdentityStorage stores accounts in memory keyed by email. It is
// made for testing only, PostgresIdentityStorage should be used in
// production.
type InMemoryIdentityStorage struct {
	mutex    *sync.Mutex
	accounts map[string]*Account
}

func NewInMemoryIdentityStorage() *InMemoryIdentityStorage {
	return &InMemoryIdentityStorage{
		mutex:    &sync.Mutex{},
		accounts: make(map[string]*Account),
	}
}

// GetAccountByEmail fetches the account registered for given email, or nil
// when there is none. A missing account is not an error.
func (s *InMemoryIdentityStorage) GetAccountByEmail(email string) (*Account, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	account, ok := s.accounts[email]
	if !ok {
		return nil, nil
	}
	accountCopy := *account
	return &accountCopy, nil
}

func (s *InMemoryIdentityStorage) AccountExists(email string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, ok := s.accounts[email]
	return ok, nil
}

func (s *InMemoryIdentityStorage) StoreAccount(account *Account) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	accountCopy := *account
	s.accounts[account.Email] = &accountCopy
	return nil
}
