package useradmin

import (
	"os"
	"strconv"
)

// AppConfig is the default Config implementation. Zero values fall back to
// sensible defaults through the getters, so an empty struct is usable.
type AppConfig struct {
	MaxAccounts       int
	PasswordMinLength int
	PasswordMaxLength int
	SiteURL           string
	MailFrom          string
	MailReplyTo       string
	PrivateAreaRoute  string
	LoginRoute        string
}

var _ Config = (*AppConfig)(nil)

// NewAppConfigFromEnv reads overrides from USERADMIN_* environment variables
func NewAppConfigFromEnv() *AppConfig {
	return &AppConfig{
		MaxAccounts:       envInt("USERADMIN_MAX_ACCOUNTS"),
		PasswordMinLength: envInt("USERADMIN_PASSWORD_MIN"),
		PasswordMaxLength: envInt("USERADMIN_PASSWORD_MAX"),
		SiteURL:           os.Getenv("USERADMIN_SITE_URL"),
		MailFrom:          os.Getenv("USERADMIN_MAIL_FROM"),
		MailReplyTo:       os.Getenv("USERADMIN_MAIL_REPLY_TO"),
	}
}

// GetMaxAccounts caps the number of registrations; we don't want the store
// crammed with an unnecessarily large number of accounts.
func (c *AppConfig) GetMaxAccounts() int {
	if c.MaxAccounts > 0 {
		return c.MaxAccounts
	}
	return 1000
}

func (c *AppConfig) GetPasswordMinLength() int {
	if c.PasswordMinLength > 0 {
		return c.PasswordMinLength
	}
	return 6
}

func (c *AppConfig) GetPasswordMaxLength() int {
	if c.PasswordMaxLength > 0 {
		return c.PasswordMaxLength
	}
	return 100
}

func (c *AppConfig) GetSiteURL() string {
	if c.SiteURL != "" {
		return c.SiteURL
	}
	return "http://localhost:8080"
}

func (c *AppConfig) GetMailFrom() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "mypage@email.com"
}

func (c *AppConfig) GetMailReplyTo() string {
	if c.MailReplyTo != "" {
		return c.MailReplyTo
	}
	return c.GetMailFrom()
}

func (c *AppConfig) GetPrivateAreaRoute() string {
	if c.PrivateAreaRoute != "" {
		return c.PrivateAreaRoute
	}
	return "/user"
}

func (c *AppConfig) GetLoginRoute() string {
	if c.LoginRoute != "" {
		return c.LoginRoute
	}
	return "/login"
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
