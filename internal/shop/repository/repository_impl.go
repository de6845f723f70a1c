package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/shopmeter/internal/shop/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, shop *domain.Shop) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_domain"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "charge_id", "plan_name", "updated_at",
		}),
	}).Create(shop).Error
}

func (r *repo) FindByDomain(ctx context.Context, db *gorm.DB, shopDomain string) (*domain.Shop, error) {
	var shop domain.Shop
	err := db.WithContext(ctx).
		Where("shop_domain = ?", shopDomain).
		First(&shop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

func (r *repo) LockBilledCount(ctx context.Context, db *gorm.DB, shopDomain string) (int64, bool, error) {
	// An UPDATE takes the row's write lock on both supported dialects,
	// so the watermark read below stays stable until the transaction
	// ends.
	result := db.WithContext(ctx).Exec(
		`UPDATE shops SET updated_at = CURRENT_TIMESTAMP WHERE shop_domain = ?`,
		shopDomain,
	)
	if result.Error != nil {
		return 0, false, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}

	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT last_billed_count FROM shops WHERE shop_domain = ?`,
		shopDomain,
	).Scan(&count).Error
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (r *repo) AdvanceLastBilled(ctx context.Context, db *gorm.DB, shopDomain string, count int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE shops SET last_billed_count = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE shop_domain = ? AND last_billed_count < ?`,
		count,
		shopDomain,
		count,
	).Error
}
