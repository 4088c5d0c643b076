package domain

import (
	"context"
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"column:hash;size:100;not null" json:"-"`
	FirstName    *string   `gorm:"size:100" json:"firstName"`
	LastName     *string   `gorm:"size:100" json:"lastName"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserPatch 仅非 nil 字段会被写入
type UserPatch struct {
	FirstName *string
	LastName  *string
}

func (p UserPatch) Empty() bool { return p.FirstName == nil && p.LastName == nil }

// UserWithCount 管理端列表行
type UserWithCount struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	FirstName     *string   `json:"firstName"`
	LastName      *string   `json:"lastName"`
	CreatedAt     time.Time `json:"createdAt"`
	BookmarkCount int64     `json:"bookmarkCount"`
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id uint, p UserPatch) (*User, error)
	List(ctx context.Context, q string, offset, limit int) ([]UserWithCount, int64, error)
}
