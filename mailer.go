package useradmin

import (
	"fmt"
	"net/smtp"
	"sort"
	"strings"
)

// SMTPMailer sends plaintext mail through a single SMTP endpoint. It
// implements Mailer; a send either fully succeeds or reports an error, there
// are no partial outcomes and no retries.
type SMTPMailer struct {
	Addr     string // host:port
	Username string
	Password string
	From     string
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates an SMTPMailer. Username may be empty for servers
// that accept unauthenticated submission.
func NewSMTPMailer(addr, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		Addr:     addr,
		Username: username,
		Password: password,
		From:     from,
	}
}

// Send delivers a single plaintext message
func (m *SMTPMailer) Send(to, subject, body string, headers map[string]string) error {
	if to == "" {
		return ErrNoEmptyString
	}

	from := m.From
	if v, ok := headers["From"]; ok && v != "" {
		from = v
	}

	var msg strings.Builder
	msg.WriteString("From: <" + from + ">\r\n")
	msg.WriteString("To: <" + to + ">\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")

	// extra headers in deterministic order
	keys := make([]string, 0, len(headers))
	for key := range headers {
		if key == "From" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		msg.WriteString(key + ": " + headers[key] + "\r\n")
	}

	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.Username != "" {
		host := m.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.Username, m.Password, host)
	}

	if err := smtp.SendMail(m.Addr, auth, from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %q: %w", to, err)
	}

	return nil
}
