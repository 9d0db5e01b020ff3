package mail

import (
	"strings"
)

// NewAccountMessageTemplates holds the configurable subject and body of the
// new-account message. Both may contain the tokens {name}, {username},
// {password} and {email}, which are replaced with the customer's values when
// the message is rendered.
type NewAccountMessageTemplates struct {
	Subject string
	Body    string
}

func replaceTokens(template, name, email, username, password string) string {
	replaced := strings.Replace(template, "{name}", name, -1)
	replaced = strings.Replace(replaced, "{username}", username, -1)
	replaced = strings.Replace(replaced, "{password}", password, -1)
	return strings.Replace(replaced, "{email}", email, -1)
}

// Render produces the final subject and body for given customer. The subject
// is trimmed of surrounding whitespace.
func (t NewAccountMessageTemplates) Render(name, email, username, password string) (subject, body string) {
	subject = strings.TrimSpace(
		replaceTokens(t.Subject, name, email, username, password),
	)
	body = replaceTokens(t.Body, name, email, username, password)
	return subject, body
}
