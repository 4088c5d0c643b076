package repo

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"go-gin-bookmarks/internal/domain"
)

type BookmarkRepo struct{ db *gorm.DB }

func NewBookmarkRepo(db *gorm.DB) *BookmarkRepo { return &BookmarkRepo{db: db} }

var _ domain.BookmarkRepository = (*BookmarkRepo)(nil)

func (r *BookmarkRepo) Create(ctx context.Context, b *domain.Bookmark) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(b).Error, "create bookmark")
}

func (r *BookmarkRepo) ListByOwner(ctx context.Context, userID uint) ([]domain.Bookmark, error) {
	out := make([]domain.Bookmark, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "list bookmarks")
	}
	return out, nil
}

func (r *BookmarkRepo) FindOwned(ctx context.Context, userID, id uint) (*domain.Bookmark, error) {
	var b domain.Bookmark
	err := r.db.WithContext(ctx).First(&b, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, notFound(err, "find bookmark")
	}
	return &b, nil
}

func (r *BookmarkRepo) Update(ctx context.Context, userID, id uint, p domain.BookmarkPatch) (*domain.Bookmark, error) {
	if !p.Empty() {
		set := map[string]any{}
		if p.Title != nil {
			set["title"] = *p.Title
		}
		switch {
		case p.Description != nil:
			set["description"] = *p.Description
		case p.ClearDescription:
			set["description"] = nil
		}
		if p.Link != nil {
			set["link"] = *p.Link
		}
		err := r.db.WithContext(ctx).
			Model(&domain.Bookmark{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(set).Error
		if err != nil {
			return nil, errors.Wrap(err, "update bookmark")
		}
	}
	return r.FindOwned(ctx, userID, id)
}

func (r *BookmarkRepo) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Bookmark{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete bookmark")
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
