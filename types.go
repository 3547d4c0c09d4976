package useradmin

import "fmt"

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds the tunables of the account workflow
type Config interface {
	GetMaxAccounts() int
	GetPasswordMinLength() int
	GetPasswordMaxLength() int
	GetSiteURL() string
	GetMailFrom() string
	GetMailReplyTo() string
	GetPrivateAreaRoute() string
	GetLoginRoute() string
}

// Mailer sends a single plaintext message. Implementations report failure
// through the returned error; the workflow engine never retries.
type Mailer interface {
	Send(to, subject, body string, headers map[string]string) error
}

// SessionWriter is the per-request view of the external session store the
// workflow engine needs: at most one principal and a queue of flash messages.
type SessionWriter interface {
	SetPrincipal(p *Principal) error
	ClearPrincipal() error
	Flash(msg Message) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] USERADMIN "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] USERADMIN "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] USERADMIN "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
