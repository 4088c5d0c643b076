package repo

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"go-gin-bookmarks/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isDupKey(err) {
		return domain.ErrConflict
	}
	return errors.Wrap(err, "create user")
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "find user by id")
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if err != nil {
		return nil, notFound(err, "find user by email")
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, id uint, p domain.UserPatch) (*domain.User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Empty() {
		return u, nil
	}
	set := map[string]any{}
	if p.FirstName != nil {
		set["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		set["last_name"] = *p.LastName
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(set).Error; err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return r.FindByID(ctx, id)
}

// List 管理端：按 id 升序分页，附带书签数量；q 按 email 模糊匹配
func (r *UserRepo) List(ctx context.Context, q string, offset, limit int) ([]domain.UserWithCount, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.User{})
	if s := strings.TrimSpace(q); s != "" {
		base = base.Where("users.email LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}

	rows := make([]domain.UserWithCount, 0)
	err := base.Session(&gorm.Session{}).
		Select("users.id, users.email, users.first_name, users.last_name, users.created_at, COUNT(bookmarks.id) AS bookmark_count").
		Joins("LEFT JOIN bookmarks ON bookmarks.user_id = users.id").
		Group("users.id").
		Order("users.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}
	return rows, total, nil
}
