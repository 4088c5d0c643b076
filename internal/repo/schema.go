package repo

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"go-gin-bookmarks/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(&domain.User{}, &domain.Bookmark{}), "automigrate")
}

// CleanDatabase 清空所有表（子表先删）。仅供集成测试 setup 使用，不挂任何路由。
func CleanDatabase(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&domain.Bookmark{}).Error; err != nil {
			return errors.Wrap(err, "clean bookmarks")
		}
		if err := all.Delete(&domain.User{}).Error; err != nil {
			return errors.Wrap(err, "clean users")
		}
		return nil
	})
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return errors.Wrap(err, op)
}

// isDupKey 兼容 TranslateError 与未翻译的驱动报错
func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
