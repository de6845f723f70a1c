package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, shop *Shop) error
	FindByDomain(ctx context.Context, db *gorm.DB, shopDomain string) (*Shop, error)
	// LockBilledCount takes the shop row's write lock for the duration
	// of the surrounding transaction and returns the current
	// last_billed_count. Callers that bill from the watermark must read
	// it through here, never from a snapshot.
	LockBilledCount(ctx context.Context, db *gorm.DB, shopDomain string) (int64, bool, error)
	// AdvanceLastBilled moves last_billed_count forward to count. It never
	// moves the watermark backwards.
	AdvanceLastBilled(ctx context.Context, db *gorm.DB, shopDomain string, count int64) error
}
