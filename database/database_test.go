// database_test.go - Store tests against a throwaway SQLite file

package database

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"bistro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, out io.Writer) *gorm.DB {
	t.Helper()
	log := slog.New(slog.NewTextHandler(out, nil))
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func setupTestStores(t *testing.T) *Stores {
	t.Helper()
	return NewStores(setupTestDB(t, io.Discard))
}

// countRows counts every row of model's table.
func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestRegisterIsIdempotent(t *testing.T) {
	s := setupTestStores(t)
	ctx := context.Background()

	created, err := s.Users.Register(ctx, &models.User{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)
	assert.True(t, created)

	again := &models.User{Email: "a@x.com", Name: "Again"}
	created, err = s.Users.Register(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, again.ID)

	assert.EqualValues(t, 1, countRows(t, s.Users.db, &models.User{}))

	user, err := s.Users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A", user.Name)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.IsAdmin())
}

func TestConcurrentRegisterCreatesOneUser(t *testing.T) {
	s := setupTestStores(t)
	ctx := context.Background()

	for round := 0; round < 20; round++ {
		email := fmt.Sprintf("rush%d@x.com", round)
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
			errs    []error
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := s.Users.Register(ctx, &models.User{Email: email})
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
				}
				if ok {
					created++
				}
			}()
		}
		wg.Wait()

		require.Empty(t, errs, "round %d", round)
		assert.Equal(t, 1, created, "round %d", round)
	}
	assert.EqualValues(t, 20, countRows(t, s.Users.db, &models.User{}))
}

func TestMissesAreNotLogged(t *testing.T) {
	var buf bytes.Buffer
	s := NewStores(setupTestDB(t, &buf))
	ctx := context.Background()

	_, err := s.Users.FindByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Menu.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Users.Register(ctx, &models.User{Email: "a@x.com"})
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "record not found")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRegisterIgnoresRequestedRole(t *testing.T) {
	s := setupTestStores(t)
	ctx := context.Background()

	_, err := s.Users.Register(ctx, &models.User{Email: "sneaky@x.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	user, err := s.Users.FindByEmail(ctx, "sneaky@x.com")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin())
}

func TestFindByEmailIsExact(t *testing.T) {
	s := setupTestStores(t)
	ctx := context.Background()

	_, err := s.Users.Register(ctx, &models.User{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = s.Users.FindByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Users.FindByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPromoteAndDelete(t *testing.T) {
	s := setupTestStores(t)
	ctx := context.Background()

	user := &models.User{Email: "a@x.com"}
	_, err := s.Users.Register(ctx, user)
	require.NoError(t, err)

	matched, modified, err := s.Users.Promote(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)
	assert.EqualValues(t, 1, modified)

	matched, modified, err = s.Users.Promote(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)
	assert.EqualValues(t, 0, modified)

	got, err := s.Users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	deleted, err := s.Users.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	deleted, err = s.Users.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, deleted)
}

func TestEnsureAdmin(t *testing.T) {
	s := setupTestStores(t)
	ctx := context.Background()

	require.NoError(t, EnsureAdmin(ctx, s.Users, ""))
	assert.Zero(t, countRows(t, s.Users.db, &models.User{}))

	require.NoError(t, EnsureAdmin(ctx, s.Users, "boss@x.com"))
	require.NoError(t, EnsureAdmin(ctx, s.Users, "boss@x.com"))

	user, err := s.Users.FindByEmail(ctx, "boss@x.com")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
}

func TestMenuCRUD(t *testing.T) {
	s := setupTestStores(t)
	ctx := context.Background()

	item := &models.MenuItem{Name: "Soup", Category: "soup", Price: 4.5}
	require.NoError(t, s.Menu.Create(ctx, item))
	require.NotEmpty(t, item.ID)

	matched, err := s.Menu.Update(ctx, item.ID, &models.MenuItem{Name: "Tomato Soup", Category: "soup", Price: 0})
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)

	got, err := s.Menu.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", got.Name)
	assert.Zero(t, got.Price)

	_, err = s.Menu.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := s.Menu.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	items, err := s.Menu.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRecordPaymentClearsOwnCarts(t *testing.T) {
	s := setupTestStores(t)
	ctx := context.Background()

	mine := &models.CartItem{Name: "Soup", Price: 4, Email: "a@x.com"}
	also := &models.CartItem{Name: "Salad", Price: 6, Email: "a@x.com"}
	theirs := &models.CartItem{Name: "Pizza", Price: 9, Email: "b@x.com"}
	for _, c := range []*models.CartItem{mine, also, theirs} {
		require.NoError(t, s.Carts.Add(ctx, c))
	}

	payment := &models.Payment{
		Email:   "a@x.com",
		Price:   10,
		CartIDs: []string{mine.ID, also.ID, theirs.ID},
	}
	deleted, err := s.Payments.Record(ctx, payment)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
	assert.False(t, payment.Date.IsZero())

	left, err := s.Carts.ListByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Len(t, left, 1)

	payments, err := s.Payments.ListByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, []string{mine.ID, also.ID, theirs.ID}, payments[0].CartIDs)
}
