package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-gin-bookmarks/internal/core/auth"
	"go-gin-bookmarks/internal/domain"
	"go-gin-bookmarks/pkg/utils"
)

type TokenCodec interface {
	Issue(uid uint, email string) (string, error)
	Parse(token string) (*auth.Claims, error)
}

type AuthService struct {
	users      domain.UserRepository
	tokens     TokenCodec
	log        *zap.Logger
	bcryptCost int
}

type AuthOption func(*AuthService)

// WithBcryptCost 测试里用 bcrypt.MinCost 提速
func WithBcryptCost(cost int) AuthOption { return func(s *AuthService) { s.bcryptCost = cost } }

func NewAuthService(users domain.UserRepository, tokens TokenCodec, l *zap.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{users: users, tokens: tokens, log: l}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *AuthService) Signup(ctx context.Context, email, password string) (token string, err error) {
	defer func() { observeAuth("signup", err) }()

	if len(password) > domain.MaxPasswordBytes {
		return "", domain.ErrPasswordTooLong
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	u := &domain.User{Email: strings.TrimSpace(email), PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	s.log.Info("user signed up", zap.Uint("user_id", u.ID))
	return s.tokens.Issue(u.ID, u.Email)
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (token string, err error) {
	defer func() { observeAuth("signin", err) }()

	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrCredentials
	}
	if err != nil {
		return "", err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.ErrCredentials
	}
	return s.tokens.Issue(u.ID, u.Email)
}

// Authenticate 校验 token 并回查用户；任何失败都归为 ErrUnauthenticated
func (s *AuthService) Authenticate(ctx context.Context, token string) (u *domain.User, err error) {
	defer func() { observeAuth("token", err) }()

	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.log.Debug("token rejected", zap.Error(err))
		return nil, domain.ErrUnauthenticated
	}
	uid, err := claims.UserID()
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	u, err = s.users.FindByID(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrCredentials):
		return "bad_credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrPasswordTooLong):
		return "invalid"
	default:
		return "error"
	}
}
