package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"usercontacts/internal/db"
	"usercontacts/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "repo.sqlite"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() { _ = db.Close(gormDB) })
	return gormDB
}

func seedUser(t *testing.T, repo UserRepository, username, first, last string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Password: "hash", FirstName: first, LastName: last}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_CreateFindAndDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u := seedUser(t, repo, "ion", "Ion", "Ionescu")
	assert.NotZero(t, u.ID)

	found, err := repo.FindByUsername(ctx, "ion")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "green", found.FavouriteColor)

	_, err = repo.FindByID(ctx, 9999)
	assert.True(t, IsNotFound(err))
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedUser(t, repo, "dup", "", "")

	err := repo.Create(context.Background(), &model.User{Username: "dup", Password: "hash"})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestUserRepository_DeleteCascadesContacts(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	contacts := NewContactRepository(gormDB)

	owner := seedUser(t, users, "owner", "O", "W")
	other := seedUser(t, users, "other", "X", "Y")
	require.NoError(t, contacts.Create(ctx, &model.Contact{Email: "a@x.io", Phone: "0712345678", UserID: owner.ID}))
	require.NoError(t, contacts.Create(ctx, &model.Contact{Email: "b@x.io", Phone: "0712345679", UserID: owner.ID}))
	require.NoError(t, contacts.Create(ctx, &model.Contact{Email: "c@x.io", Phone: "0712345670", UserID: other.ID}))

	require.NoError(t, users.Delete(ctx, owner.ID))

	left, err := contacts.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "c@x.io", left[0].Email)

	assert.True(t, IsNotFound(users.Delete(ctx, owner.ID)))
}

func TestUserRepository_FindByIDWithContacts(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	contacts := NewContactRepository(gormDB)

	u := seedUser(t, users, "maria", "Maria", "Pop")
	require.NoError(t, contacts.Create(ctx, &model.Contact{Email: "m@x.io", Phone: "0712345678", UserID: u.ID}))

	found, err := users.FindByIDWithContacts(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, found.Contacts, 1)
	assert.Equal(t, "m@x.io", found.Contacts[0].Email)

	all, err := users.ListWithContacts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Contacts, 1)
}

func TestContactRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	u := seedUser(t, NewUserRepository(gormDB), "u", "", "")
	contacts := NewContactRepository(gormDB)

	require.NoError(t, contacts.Create(ctx, &model.Contact{Email: "same@x.io", Phone: "0712345678", UserID: u.ID}))
	err := contacts.Create(ctx, &model.Contact{Email: "same@x.io", Phone: "0712345679", UserID: u.ID})
	assert.True(t, IsDuplicateKey(err))
}

func TestContactRepository_ListIncludesOwnerNames(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	u := seedUser(t, NewUserRepository(gormDB), "ion", "Ion", "Ionescu")
	contacts := NewContactRepository(gormDB)
	require.NoError(t, contacts.Create(ctx, &model.Contact{Email: "i@x.io", Phone: "0712345678", UserID: u.ID}))

	list, err := contacts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].User)
	assert.Equal(t, u.ID, list[0].User.ID)
	assert.Equal(t, "Ion", list[0].User.FirstName)
	assert.Equal(t, "Ionescu", list[0].User.LastName)
	assert.Empty(t, list[0].User.Username)
}

func TestContactRepository_ListByUserRawOrdersByIDDesc(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	u := seedUser(t, users, "ion", "Ion", "Ionescu")
	other := seedUser(t, users, "x", "X", "Y")
	contacts := NewContactRepository(gormDB)

	for _, email := range []string{"1@x.io", "2@x.io", "3@x.io"} {
		require.NoError(t, contacts.Create(ctx, &model.Contact{Email: email, Phone: "0712345678", UserID: u.ID}))
	}
	require.NoError(t, contacts.Create(ctx, &model.Contact{Email: "o@x.io", Phone: "0712345678", UserID: other.ID}))

	rows, err := contacts.ListByUserRaw(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "3@x.io", rows[0].Email)
	assert.Equal(t, "1@x.io", rows[2].Email)
	assert.Equal(t, "Ion", rows[0].FirstName)
	assert.Equal(t, "Ionescu", rows[0].LastName)
	assert.Greater(t, rows[0].ID, rows[1].ID)

	empty, err := contacts.ListByUserRaw(ctx, 4242)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestContactRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	u := seedUser(t, NewUserRepository(gormDB), "u", "", "")
	contacts := NewContactRepository(gormDB)

	c := &model.Contact{Email: "old@x.io", Phone: "0712345678", UserID: u.ID}
	require.NoError(t, contacts.Create(ctx, c))

	c.Email = "new@x.io"
	require.NoError(t, contacts.Update(ctx, c))
	found, err := contacts.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@x.io", found.Email)

	require.NoError(t, contacts.Delete(ctx, c.ID))
	assert.True(t, IsNotFound(contacts.Delete(ctx, c.ID)))
}

func TestTokenBlacklistRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenBlacklistRepository(newTestDB(t))
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &model.TokenBlacklist{Token: "expired", ExpiresAt: now.Add(-time.Minute).Unix()}))
	require.NoError(t, repo.Create(ctx, &model.TokenBlacklist{Token: "live", ExpiresAt: now.Add(time.Hour).Unix()}))

	ok, err := repo.Exists(ctx, "live")
	require.NoError(t, err)
	assert.True(t, ok)

	deleted, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	ok, err = repo.Exists(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, ok)

	err = repo.Create(ctx, &model.TokenBlacklist{Token: "live", ExpiresAt: now.Add(time.Hour).Unix()})
	assert.True(t, IsDuplicateKey(err))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
}
