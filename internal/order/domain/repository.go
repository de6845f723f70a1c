package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// InsertIgnoreDuplicate inserts the order and reports whether a new
	// row was created. An existing (shop, order id) pair leaves the row
	// untouched and returns false.
	InsertIgnoreDuplicate(ctx context.Context, db *gorm.DB, order *Order) (bool, error)
	// Refresh replaces the mutable fields of an existing order.
	Refresh(ctx context.Context, db *gorm.DB, order *Order) error
	// IncrementOrderCount bumps the shop's order counter by one and
	// reports whether the shop row exists.
	IncrementOrderCount(ctx context.Context, db *gorm.DB, shopDomain string) (bool, error)
	OrderCount(ctx context.Context, db *gorm.DB, shopDomain string) (int64, error)
}
