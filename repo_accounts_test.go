package useradmin_test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	useradmin "github.com/imanager/go-useradmin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	// one named in-memory database per test, shared across its connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	_, err = db.NewCreateTable().
		Model((*useradmin.Account)(nil)).
		Exec(context.Background())
	require.NoError(t, err)

	return db
}

func seedAccount(t *testing.T, repo useradmin.Accounts, name, email string) *useradmin.Account {
	t.Helper()

	record, err := repo.Create(context.Background(), &useradmin.Account{
		Name:         name,
		Email:        email,
		PasswordHash: "hash-" + name,
		Salt:         useradmin.NewSalt(),
	})
	require.NoError(t, err)
	return record
}

func TestAccountsCreate(t *testing.T) {
	repo := useradmin.NewAccountsRepository(newTestDB(t))

	record := seedAccount(t, repo, "alice", "a@x.com")

	// defaults applied on insert
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, useradmin.RoleGuest, record.Role)
	assert.False(t, record.Active)
}

func TestAccountsLookups(t *testing.T) {
	repo := useradmin.NewAccountsRepository(newTestDB(t))
	ctx := context.Background()

	record := seedAccount(t, repo, "alice", "a@x.com")

	t.Run("by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Name)
	})

	t.Run("by name", func(t *testing.T) {
		got, err := repo.GetByName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.Equal(t, "a@x.com", got.Email)
	})

	t.Run("by email", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
	})

	t.Run("missing rows map to not found", func(t *testing.T) {
		_, err := repo.GetByName(ctx, "nobody")
		assert.ErrorIs(t, err, useradmin.ErrAccountNotFound)
		assert.True(t, useradmin.IsRecordNotFound(err))

		_, err = repo.GetByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, useradmin.ErrAccountNotFound)

		_, err = repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, useradmin.ErrAccountNotFound)
	})
}

func TestAccountsUpdate(t *testing.T) {
	repo := useradmin.NewAccountsRepository(newTestDB(t))
	ctx := context.Background()

	record := seedAccount(t, repo, "alice", "a@x.com")
	record.Role = useradmin.RoleMember

	updated, err := repo.Update(ctx, record)
	require.NoError(t, err)
	assert.NotNil(t, updated.UpdatedAt)

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, useradmin.RoleMember, got.Role)
}

func TestAccountsUpdateMissingRecord(t *testing.T) {
	repo := useradmin.NewAccountsRepository(newTestDB(t))

	_, err := repo.Update(context.Background(), &useradmin.Account{
		ID:   uuid.New(),
		Name: "ghost",
	})
	assert.ErrorIs(t, err, useradmin.ErrAccountNotFound)
}

func TestAccountsActivate(t *testing.T) {
	repo := useradmin.NewAccountsRepository(newTestDB(t))
	ctx := context.Background()

	record := seedAccount(t, repo, "alice", "a@x.com")
	require.False(t, record.Active)

	require.NoError(t, repo.Activate(ctx, record.ID))

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)

	assert.ErrorIs(t, repo.Activate(ctx, uuid.New()), useradmin.ErrAccountNotFound)
}

func TestAccountsCount(t *testing.T) {
	repo := useradmin.NewAccountsRepository(newTestDB(t))
	ctx := context.Background()

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	seedAccount(t, repo, "alice", "a@x.com")
	seedAccount(t, repo, "bob", "b@x.com")

	total, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestRepositoryManagerValidate(t *testing.T) {
	assert.Error(t, useradmin.NewRepositoryManager(nil).Validate())

	repo := useradmin.NewRepositoryManager(newTestDB(t))
	assert.NoError(t, repo.Validate())
	assert.NotNil(t, repo.Accounts())
}
