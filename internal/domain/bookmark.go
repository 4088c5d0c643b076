package domain

import (
	"context"
	"time"
)

type Bookmark struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Link        string    `gorm:"type:text;not null" json:"link"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Owner *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Bookmark) TableName() string { return "bookmarks" }

type BookmarkInput struct {
	Title       string
	Description *string
	Link        string
}

// BookmarkPatch nil 字段不改动；ClearDescription 把 description 置为 NULL
type BookmarkPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Link             *string
}

func (p BookmarkPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription && p.Link == nil
}

// BookmarkRepository 所有按 id 的读写都带 owner 过滤
type BookmarkRepository interface {
	Create(ctx context.Context, b *Bookmark) error
	ListByOwner(ctx context.Context, userID uint) ([]Bookmark, error)
	FindOwned(ctx context.Context, userID, id uint) (*Bookmark, error)
	Update(ctx context.Context, userID, id uint, p BookmarkPatch) (*Bookmark, error)
	Delete(ctx context.Context, userID, id uint) error
}
