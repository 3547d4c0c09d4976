package useradmin_test

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	useradmin "github.com/imanager/go-useradmin"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockAccounts implements useradmin.Accounts
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) GetByID(ctx context.Context, id uuid.UUID) (*useradmin.Account, error) {
	args := m.Called(ctx, id)
	return accountArg(args, 0), args.Error(1)
}

func (m *MockAccounts) GetByName(ctx context.Context, name string) (*useradmin.Account, error) {
	args := m.Called(ctx, name)
	return accountArg(args, 0), args.Error(1)
}

func (m *MockAccounts) GetByEmail(ctx context.Context, email string) (*useradmin.Account, error) {
	args := m.Called(ctx, email)
	return accountArg(args, 0), args.Error(1)
}

// Create echoes the record passed in when the expectation returns nil, so
// tests can assert against the account the engine actually built.
func (m *MockAccounts) Create(ctx context.Context, record *useradmin.Account) (*useradmin.Account, error) {
	args := m.Called(ctx, record)
	if acc := accountArg(args, 0); acc != nil {
		return acc, args.Error(1)
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return record, nil
}

func (m *MockAccounts) Update(ctx context.Context, record *useradmin.Account) (*useradmin.Account, error) {
	args := m.Called(ctx, record)
	if acc := accountArg(args, 0); acc != nil {
		return acc, args.Error(1)
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return record, nil
}

func (m *MockAccounts) Activate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccounts) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func accountArg(args mock.Arguments, index int) *useradmin.Account {
	if v := args.Get(index); v != nil {
		return v.(*useradmin.Account)
	}
	return nil
}

// testRepo wires the mocked account store into a RepositoryManager
type testRepo struct {
	accounts useradmin.Accounts
}

func (r testRepo) Validate() error { return nil }
func (r testRepo) MustValidate()   {}

func (r testRepo) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return errors.New("transactions not supported in tests")
}

func (r testRepo) Accounts() useradmin.Accounts { return r.accounts }

// MockMailer implements useradmin.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string, headers map[string]string) error {
	args := m.Called(to, subject, body, headers)
	return args.Error(0)
}

// memSession is a hand fake for the engine's session writer
type memSession struct {
	principal *useradmin.Principal
	flash     []useradmin.Message

	setErr   error
	flashErr error
}

func (s *memSession) SetPrincipal(p *useradmin.Principal) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.principal = p
	return nil
}

func (s *memSession) ClearPrincipal() error {
	s.principal = nil
	return nil
}

func (s *memSession) Flash(msg useradmin.Message) error {
	if s.flashErr != nil {
		return s.flashErr
	}
	s.flash = append(s.flash, msg)
	return nil
}

type silentLogger struct{}

func (silentLogger) Debug(format string, args ...any) {}
func (silentLogger) Info(format string, args ...any)  {}
func (silentLogger) Error(format string, args ...any) {}
