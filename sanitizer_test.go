package useradmin_test

import (
	"testing"

	useradmin "github.com/imanager/go-useradmin"
	"github.com/stretchr/testify/assert"
)

func TestSanitizerPageName(t *testing.T) {
	s := useradmin.NewSanitizer()

	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"alice", 100, "alice"},
		{"  Alice  ", 100, "alice"},
		{"My Cool Page", 100, "my-cool-page"},
		{"a    b", 100, "a-b"},
		{"snake_case_ok", 100, "snake_case_ok"},
		{"a@x.com", 100, "axcom"},
		{"../../etc/passwd", 100, "etcpasswd"},
		{"trailing---", 100, "trailing"},
		{"übermensch", 100, "bermensch"},
		{"abcdef", 3, "abc"},
		{"", 100, ""},
		{"!!!", 100, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.PageName(tt.in, tt.maxLen), "PageName(%q, %d)", tt.in, tt.maxLen)
	}
}

func TestSanitizerEmail(t *testing.T) {
	s := useradmin.NewSanitizer()

	tests := []struct {
		in   string
		want string
	}{
		{"a@x.com", "a@x.com"},
		{"  a@x.com  ", "a@x.com"},
		{"Alice <a@x.com>", "a@x.com"},
		{"not-an-email", ""},
		{"a@", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Email(tt.in), "Email(%q)", tt.in)
	}
}

func TestSanitizerText(t *testing.T) {
	s := useradmin.NewSanitizer()

	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 100, "hello"},
		{"  hello  ", 100, "hello"},
		{"he\x00llo\x1b", 100, "hello"},
		{"héllo wörld", 100, "héllo wörld"},
		{"héllo", 3, "hél"},
		{"", 100, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Text(tt.in, tt.maxLen), "Text(%q, %d)", tt.in, tt.maxLen)
	}
}
