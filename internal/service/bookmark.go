package service

import (
	"context"
	"errors"

	"go-gin-bookmarks/internal/domain"
)

// BookmarkService userID 一律来自鉴权身份，不读请求体
type BookmarkService struct {
	bookmarks domain.BookmarkRepository
}

func NewBookmarkService(bookmarks domain.BookmarkRepository) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks}
}

func (s *BookmarkService) List(ctx context.Context, userID uint) ([]domain.Bookmark, error) {
	return s.bookmarks.ListByOwner(ctx, userID)
}

// Get 不存在与不属于调用者都返回 ErrAccessDenied
func (s *BookmarkService) Get(ctx context.Context, userID, id uint) (*domain.Bookmark, error) {
	b, err := s.bookmarks.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, denyMissing(err)
	}
	return b, nil
}

func (s *BookmarkService) Create(ctx context.Context, userID uint, in domain.BookmarkInput) (*domain.Bookmark, error) {
	b := &domain.Bookmark{
		Title:       in.Title,
		Description: in.Description,
		Link:        in.Link,
		UserID:      userID,
	}
	if err := s.bookmarks.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Edit 先做归属检查再更新；两次调用之间被删除同样得到 ErrAccessDenied
func (s *BookmarkService) Edit(ctx context.Context, userID, id uint, p domain.BookmarkPatch) (*domain.Bookmark, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	b, err := s.bookmarks.Update(ctx, userID, id, p)
	if err != nil {
		return nil, denyMissing(err)
	}
	return b, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return denyMissing(s.bookmarks.Delete(ctx, userID, id))
}

func denyMissing(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrAccessDenied
	}
	return err
}
