package repository

import (
	"context"

	"github.com/smallbiznis/shopmeter/internal/notification/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO notifications (id, shop_domain, message, created_at)
		 VALUES (?, ?, ?, ?)`,
		notification.ID,
		notification.ShopDomain,
		notification.Message,
		notification.CreatedAt,
	).Error
}
