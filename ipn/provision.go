package ipn

import (
	"log"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/caffeinepress/ipn-processing/events"
	"github.com/caffeinepress/ipn-processing/identity"
	"github.com/caffeinepress/ipn-processing/ipn/types"
	"github.com/caffeinepress/ipn-processing/mail"
)

const generatedPasswordLength = 12

// pendingNewAccountMail is a new-account message prepared during account
// provisioning but sent only after the order's ledger transition, so that
// mail delivery can neither block nor roll back order processing.
type pendingNewAccountMail struct {
	name     string
	email    string
	username string
	password string
}

func (m *pendingNewAccountMail) send(mailer mail.Mailer) {
	if mailer == nil {
		return
	}
	err := mailer.SendNewAccountEmail(m.name, m.email, m.username, m.password)
	if err != nil {
		log.Printf(
			"Warning: failed to send new-account email to %s: %s",
			m.email, err,
		)
	}
}

func generatePassword() string {
	password := strings.Replace(uuid.Must(uuid.NewV4()).String(), "-", "", -1)
	return password[:generatedPasswordLength]
}

// resolveAccount finds the shop account a purchase belongs to. When the
// customer has no account and provisioning is enabled, a new account with a
// generated password is created and a new-account message is prepared for
// sending after the order transition. Every failure here is non-fatal: an
// order can always be recorded without an account attached.
func (e *Engine) resolveAccount(notification *types.Notification) (string, *pendingNewAccountMail) {
	email := notification.CustomerEmail

	account, err := e.identity.GetAccountByEmail(email)
	if err != nil {
		log.Printf(
			"Warning: failed to look up account for %s: %s", email, err,
		)
		return "", nil
	}
	if account != nil {
		return account.ID, nil
	}
	if !e.config.CreateUserOnPurchase {
		return "", nil
	}

	exists, err := e.identity.AccountExists(email)
	if err != nil {
		log.Printf(
			"Warning: failed to check whether account %s exists: %s",
			email, err,
		)
		return "", nil
	}
	if exists {
		return "", nil
	}

	password := generatePassword()
	passwordHash, err := identity.HashPassword(password)
	if err != nil {
		log.Printf(
			"Warning: failed to hash password for %s: %s", email, err,
		)
		return "", nil
	}
	account = &identity.Account{
		ID:           uuid.Must(uuid.NewV4()).String(),
		Email:        email,
		Username:     email,
		DisplayName:  notification.CustomerName,
		PasswordHash: passwordHash,
	}
	if err := e.identity.StoreAccount(account); err != nil {
		log.Printf(
			"Warning: failed to provision account for %s: %s", email, err,
		)
		return "", nil
	}

	e.notify(events.AccountProvisionedEvent, AccountEventData{
		AccountID: account.ID,
		Email:     account.Email,
	})

	return account.ID, &pendingNewAccountMail{
		name:     notification.CustomerName,
		email:    email,
		username: account.Username,
		password: password,
	}
}
