package mail

import (
	"testing"
)

func TestRenderReplacesAllTokens(t *testing.T) {
	templates := NewAccountMessageTemplates{
		Subject: "  Welcome {name}  ",
		Body:    "User: {username}\nPass: {password}\nMail: {email}\nHi {name}",
	}

	subject, body := templates.Render(
		"Jane Buyer", "jane@example.com", "jane@example.com", "hunter2",
	)

	if got, want := subject, "Welcome Jane Buyer"; got != want {
		t.Errorf("Expected subject %q, got %q", want, got)
	}
	wantBody := "User: jane@example.com\nPass: hunter2\n" +
		"Mail: jane@example.com\nHi Jane Buyer"
	if body != wantBody {
		t.Errorf("Expected body %q, got %q", wantBody, body)
	}
}

func TestRenderRepeatedToken(t *testing.T) {
	templates := NewAccountMessageTemplates{
		Subject: "{name} {name}",
		Body:    "",
	}
	subject, _ := templates.Render("Jane", "", "", "")
	if got, want := subject, "Jane Jane"; got != want {
		t.Errorf("Expected repeated token replacement %q, got %q", want, got)
	}
}
