package service

import (
	"context"

	"go-gin-bookmarks/internal/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService { return &UserService{users: users} }

// EditUser 仅更新 patch 中非 nil 字段；用户不存在时返回 ErrNotFound
func (s *UserService) EditUser(ctx context.Context, userID uint, p domain.UserPatch) (*domain.User, error) {
	return s.users.Update(ctx, userID, p)
}

func (s *UserService) List(ctx context.Context, q string, offset, limit int) ([]domain.UserWithCount, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.users.List(ctx, q, offset, limit)
}
