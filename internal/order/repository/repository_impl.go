package repository

import (
	"context"

	"github.com/smallbiznis/shopmeter/internal/order/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertIgnoreDuplicate(ctx context.Context, db *gorm.DB, order *domain.Order) (bool, error) {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shop_domain"}, {Name: "shopify_order_id"}},
		DoNothing: true,
	}).Create(order)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) Refresh(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Exec(
		`UPDATE orders SET financial_status = ?, details = ?, updated_at = ?
		 WHERE shop_domain = ? AND shopify_order_id = ?`,
		order.FinancialStatus,
		order.Details,
		order.UpdatedAt,
		order.ShopDomain,
		order.ShopifyOrderID,
	).Error
}

func (r *repo) IncrementOrderCount(ctx context.Context, db *gorm.DB, shopDomain string) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE shops SET order_count = order_count + 1, updated_at = CURRENT_TIMESTAMP
		 WHERE shop_domain = ?`,
		shopDomain,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) OrderCount(ctx context.Context, db *gorm.DB, shopDomain string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT order_count FROM shops WHERE shop_domain = ?`,
		shopDomain,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
