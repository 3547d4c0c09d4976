package useradmin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Accounts is the category-scoped account store: field-equality lookups,
// create, save and count. Single-row operations are atomic; the interface
// offers no cross-call guarantees.
type Accounts interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByName(ctx context.Context, name string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, record *Account) (*Account, error)
	Update(ctx context.Context, record *Account) (*Account, error)
	Activate(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type accounts struct {
	db bun.IDB
}

var _ Accounts = (*accounts)(nil)

// NewAccountsRepository creates the bun-backed account store
func NewAccountsRepository(db bun.IDB) Accounts {
	return &accounts{db: db}
}

func (a *accounts) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return a.getByColumn(ctx, "id", id)
}

func (a *accounts) GetByName(ctx context.Context, name string) (*Account, error) {
	return a.getByColumn(ctx, "name", name)
}

func (a *accounts) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return a.getByColumn(ctx, "email", email)
}

func (a *accounts) getByColumn(ctx context.Context, column string, value any) (*Account, error) {
	record := &Account{}

	err := a.db.NewSelect().
		Model(record).
		Where(fmt.Sprintf("?TableAlias.%s = ?", column), value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return record, nil
}

func (a *accounts) Create(ctx context.Context, record *Account) (*Account, error) {
	prepareAccountDefaults(record)

	if _, err := a.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

func (a *accounts) Update(ctx context.Context, record *Account) (*Account, error) {
	now := time.Now()
	record.UpdatedAt = &now

	res, err := a.db.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrAccountNotFound
	}

	return record, nil
}

func (a *accounts) Activate(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewUpdate().
		Model((*Account)(nil)).
		Set("active = ?", true).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (a *accounts) Count(ctx context.Context) (int, error) {
	return a.db.NewSelect().Model((*Account)(nil)).Count(ctx)
}

func prepareAccountDefaults(record *Account) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleGuest
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
