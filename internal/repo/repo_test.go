package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-gin-bookmarks/internal/core/database"
	"go-gin-bookmarks/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewMemory()
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

func createUser(t *testing.T, r *UserRepo, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "h"}
	require.NoError(t, r.Create(context.Background(), u))
	require.NotZero(t, u.ID)
	return u
}

func TestUserRepo_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepo(newTestDB(t))

	u := createUser(t, r, "a@mail.test")
	assert.False(t, u.CreatedAt.IsZero())

	got, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@mail.test", got.Email)
	assert.Equal(t, "h", got.PasswordHash)

	got, err = r.FindByEmail(ctx, "a@mail.test")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = r.FindByID(ctx, u.ID+100)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.FindByEmail(ctx, "missing@mail.test")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	createUser(t, r, "dup@mail.test")

	err := r.Create(context.Background(), &domain.User{Email: "dup@mail.test", PasswordHash: "other"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepo(newTestDB(t))
	u := createUser(t, r, "p@mail.test")

	got, err := r.Update(ctx, u.ID, domain.UserPatch{FirstName: strPtr("John")})
	require.NoError(t, err)
	require.NotNil(t, got.FirstName)
	assert.Equal(t, "John", *got.FirstName)
	assert.Nil(t, got.LastName)

	got, err = r.Update(ctx, u.ID, domain.UserPatch{LastName: strPtr("Doe")})
	require.NoError(t, err)
	assert.Equal(t, "John", *got.FirstName)
	assert.Equal(t, "Doe", *got.LastName)
	assert.Equal(t, "p@mail.test", got.Email)

	got, err = r.Update(ctx, u.ID, domain.UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Doe", *got.LastName)

	_, err = r.Update(ctx, u.ID+100, domain.UserPatch{FirstName: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookmarkRepo_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepo(db)
	r := NewBookmarkRepo(db)

	alice := createUser(t, users, "alice@mail.test")
	bob := createUser(t, users, "bob@mail.test")

	list, err := r.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	b1 := &domain.Bookmark{Title: "one", Link: "https://one.test", UserID: alice.ID}
	b2 := &domain.Bookmark{Title: "two", Link: "https://two.test", UserID: alice.ID, Description: strPtr("d")}
	b3 := &domain.Bookmark{Title: "bob", Link: "https://bob.test", UserID: bob.ID}
	for _, b := range []*domain.Bookmark{b1, b2, b3} {
		require.NoError(t, r.Create(ctx, b))
	}

	list, err = r.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b1.ID, list[0].ID)
	assert.Equal(t, b2.ID, list[1].ID)

	_, err = r.FindOwned(ctx, bob.ID, b1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := r.FindOwned(ctx, alice.ID, b2.ID)
	require.NoError(t, err)
	assert.Equal(t, "d", *got.Description)

	assert.ErrorIs(t, r.Delete(ctx, bob.ID, b1.ID), domain.ErrNotFound)
	_, err = r.FindOwned(ctx, alice.ID, b1.ID)
	assert.NoError(t, err)
}

func TestBookmarkRepo_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	u := createUser(t, NewUserRepo(db), "u@mail.test")
	r := NewBookmarkRepo(db)

	b := &domain.Bookmark{Title: "old", Link: "https://old.test", UserID: u.ID}
	require.NoError(t, r.Create(ctx, b))

	got, err := r.Update(ctx, u.ID, b.ID, domain.BookmarkPatch{Title: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "https://old.test", got.Link)

	_, err = r.Update(ctx, u.ID+1, b.ID, domain.BookmarkPatch{Title: strPtr("hijack")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err = r.FindOwned(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)

	require.NoError(t, r.Delete(ctx, u.ID, b.ID))
	assert.ErrorIs(t, r.Delete(ctx, u.ID, b.ID), domain.ErrNotFound)
	_, err = r.FindOwned(ctx, u.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookmarkRepo_ClearDescription(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	u := createUser(t, NewUserRepo(db), "u@mail.test")
	r := NewBookmarkRepo(db)

	b := &domain.Bookmark{Title: "t", Description: strPtr("desc"), Link: "https://t.test", UserID: u.ID}
	require.NoError(t, r.Create(ctx, b))

	got, err := r.Update(ctx, u.ID, b.ID, domain.BookmarkPatch{Title: strPtr("t2")})
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "desc", *got.Description)

	got, err = r.Update(ctx, u.ID, b.ID, domain.BookmarkPatch{ClearDescription: true})
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Equal(t, "t2", got.Title)

	// 同时给了值时以值为准
	got, err = r.Update(ctx, u.ID, b.ID, domain.BookmarkPatch{Description: strPtr("back"), ClearDescription: true})
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "back", *got.Description)
}

func TestUserRepo_ListWithCounts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepo(db)
	bookmarks := NewBookmarkRepo(db)

	a := createUser(t, users, "a@corp.test")
	createUser(t, users, "b@corp.test")
	createUser(t, users, "c@home.test")
	for i := 0; i < 3; i++ {
		require.NoError(t, bookmarks.Create(ctx, &domain.Bookmark{Title: "t", Link: "https://x.test", UserID: a.ID}))
	}

	rows, total, err := users.List(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 3)
	assert.Equal(t, "a@corp.test", rows[0].Email)
	assert.EqualValues(t, 3, rows[0].BookmarkCount)
	assert.EqualValues(t, 0, rows[1].BookmarkCount)

	rows, total, err = users.List(ctx, "corp", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "b@corp.test", rows[0].Email)
}

func TestCleanDatabase(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepo(db)
	bookmarks := NewBookmarkRepo(db)

	u := createUser(t, users, "x@mail.test")
	require.NoError(t, bookmarks.Create(ctx, &domain.Bookmark{Title: "t", Link: "https://x.test", UserID: u.ID}))

	require.NoError(t, CleanDatabase(ctx, db))

	var n int64
	require.NoError(t, db.Model(&domain.User{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&domain.Bookmark{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestIsDupKey(t *testing.T) {
	assert.False(t, isDupKey(nil))
	assert.True(t, isDupKey(gorm.ErrDuplicatedKey))
	assert.False(t, isDupKey(assert.AnError))
}
