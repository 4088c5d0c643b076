package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-gin-bookmarks/internal/core/auth"
	"go-gin-bookmarks/internal/core/database"
	"go-gin-bookmarks/internal/domain"
	"go-gin-bookmarks/internal/repo"
)

type fixture struct {
	db        *gorm.DB
	jwt       *auth.JWTer
	auth      *AuthService
	users     *UserService
	bookmarks *BookmarkService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewMemory()
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))

	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: 15 * time.Minute}
	userRepo := repo.NewUserRepo(db)
	return &fixture{
		db:        db,
		jwt:       j,
		auth:      NewAuthService(userRepo, j, zap.NewNop(), WithBcryptCost(bcrypt.MinCost)),
		users:     NewUserService(userRepo),
		bookmarks: NewBookmarkService(repo.NewBookmarkRepo(db)),
	}
}

func (f *fixture) signup(t *testing.T, email string) *domain.User {
	t.Helper()
	tok, err := f.auth.Signup(context.Background(), email, "supersecret")
	require.NoError(t, err)
	u, err := f.auth.Authenticate(context.Background(), tok)
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }

func TestAuth_SignupThenSignin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tok, err := f.auth.Signup(ctx, "john.doe@mail.test", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	tok2, err := f.auth.Signin(ctx, "john.doe@mail.test", "supersecret")
	require.NoError(t, err)

	u, err := f.auth.Authenticate(ctx, tok2)
	require.NoError(t, err)
	assert.Equal(t, "john.doe@mail.test", u.Email)
	assert.NotEqual(t, "supersecret", u.PasswordHash)

	claims, err := f.jwt.Parse(tok2)
	require.NoError(t, err)
	assert.Equal(t, u.Email, claims.Email)
}

func TestAuth_SignupConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, "dup@mail.test", "one")
	require.NoError(t, err)

	_, err = f.auth.Signup(ctx, "dup@mail.test", "a-different-password")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuth_SignupRejectsOverlongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, "long@mail.test", strings.Repeat("x", domain.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, domain.ErrPasswordTooLong)

	var n int64
	require.NoError(t, f.db.Model(&domain.User{}).Count(&n).Error)
	assert.Zero(t, n)

	_, err = f.auth.Signup(ctx, "long@mail.test", strings.Repeat("x", domain.MaxPasswordBytes))
	assert.NoError(t, err)
}

func TestAuth_SigninFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signup(t, "known@mail.test")

	_, errWrongPw := f.auth.Signin(ctx, "known@mail.test", "wrong")
	_, errNoUser := f.auth.Signin(ctx, "nobody@mail.test", "supersecret")

	assert.ErrorIs(t, errWrongPw, domain.ErrCredentials)
	assert.ErrorIs(t, errNoUser, domain.ErrCredentials)
	assert.Equal(t, errWrongPw.Error(), errNoUser.Error())
}

func TestAuth_AuthenticateRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.signup(t, "gone@mail.test")

	_, err := f.auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	expired := &auth.JWTer{
		Secret: f.jwt.Secret, Issuer: f.jwt.Issuer, TTL: time.Minute,
		Now: func() time.Time { return time.Now().Add(-time.Hour) },
	}
	tok, err := expired.Issue(u.ID, u.Email)
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	tok, err = f.jwt.Issue(u.ID, u.Email)
	require.NoError(t, err)
	require.NoError(t, f.db.Delete(&domain.User{}, u.ID).Error)
	_, err = f.auth.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUser_EditUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.signup(t, "edit@mail.test")

	got, err := f.users.EditUser(ctx, u.ID, domain.UserPatch{FirstName: strPtr("John"), LastName: strPtr("Doe")})
	require.NoError(t, err)
	assert.Equal(t, "John", *got.FirstName)
	assert.Equal(t, "Doe", *got.LastName)
	assert.Equal(t, "edit@mail.test", got.Email)

	_, err = f.users.EditUser(ctx, u.ID+99, domain.UserPatch{FirstName: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUser_ListClampsPaging(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "a@mail.test")
	f.signup(t, "b@mail.test")

	rows, total, err := f.users.List(context.Background(), "", -5, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)
}

func TestBookmark_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.signup(t, "owner@mail.test")

	list, err := f.bookmarks.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := f.bookmarks.Create(ctx, u.ID, domain.BookmarkInput{
		Title: "Test Bookmark", Description: strPtr("Test Description"), Link: "https://example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, u.ID, created.UserID)

	list, err = f.bookmarks.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "Test Bookmark", list[0].Title)
	assert.Equal(t, "https://example.com", list[0].Link)

	edited, err := f.bookmarks.Edit(ctx, u.ID, created.ID, domain.BookmarkPatch{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", edited.Title)

	got, err := f.bookmarks.Get(ctx, u.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "Test Description", *got.Description)
	assert.Equal(t, "https://example.com", got.Link)

	require.NoError(t, f.bookmarks.Delete(ctx, u.ID, created.ID))

	list, err = f.bookmarks.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.bookmarks.Get(ctx, u.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestBookmark_CrossUserAccessDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u1 := f.signup(t, "u1@mail.test")
	u2 := f.signup(t, "u2@mail.test")

	b, err := f.bookmarks.Create(ctx, u1.ID, domain.BookmarkInput{Title: "mine", Link: "https://mine.test"})
	require.NoError(t, err)

	list, err := f.bookmarks.List(ctx, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.bookmarks.Get(ctx, u2.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	_, err = f.bookmarks.Edit(ctx, u2.ID, b.ID, domain.BookmarkPatch{Title: strPtr("stolen")})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.ErrorIs(t, f.bookmarks.Delete(ctx, u2.ID, b.ID), domain.ErrAccessDenied)

	got, err := f.bookmarks.Get(ctx, u1.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
}

func TestBookmark_MissingLooksLikeForeign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.signup(t, "solo@mail.test")

	_, errMissing := f.bookmarks.Get(ctx, u.ID, 12345)
	assert.ErrorIs(t, errMissing, domain.ErrAccessDenied)
	_, err := f.bookmarks.Edit(ctx, u.ID, 12345, domain.BookmarkPatch{})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.ErrorIs(t, f.bookmarks.Delete(ctx, u.ID, 12345), domain.ErrAccessDenied)
}

// 归属检查通过后记录被并发删除：第二次调用同样得到 ErrAccessDenied
type vanishingRepo struct {
	domain.BookmarkRepository
}

func (v vanishingRepo) Update(context.Context, uint, uint, domain.BookmarkPatch) (*domain.Bookmark, error) {
	return nil, domain.ErrNotFound
}

func (v vanishingRepo) Delete(context.Context, uint, uint) error { return domain.ErrNotFound }

func TestBookmark_DeletedBetweenCheckAndMutate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.signup(t, "race@mail.test")
	b, err := f.bookmarks.Create(ctx, u.ID, domain.BookmarkInput{Title: "t", Link: "https://t.test"})
	require.NoError(t, err)

	svc := NewBookmarkService(vanishingRepo{repo.NewBookmarkRepo(f.db)})
	_, err = svc.Edit(ctx, u.ID, b.ID, domain.BookmarkPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.ErrorIs(t, svc.Delete(ctx, u.ID, b.ID), domain.ErrAccessDenied)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, "conflict", outcomeOf(domain.ErrConflict))
	assert.Equal(t, "bad_credentials", outcomeOf(domain.ErrCredentials))
	assert.Equal(t, "unauthenticated", outcomeOf(domain.ErrUnauthenticated))
	assert.Equal(t, "invalid", outcomeOf(domain.ErrPasswordTooLong))
	assert.Equal(t, "error", outcomeOf(assert.AnError))
}
