package domain

import (
	"context"
	"errors"
	"time"
)

type IngestRequest struct {
	ShopDomain      string
	ShopifyOrderID  string
	FinancialStatus string
	// Details carries the raw order payload as delivered.
	Details   []byte
	UpdatedAt time.Time
}

type IngestResult struct {
	// OrderCount is the shop's counter after this delivery.
	OrderCount int64
	// FirstSeen is true when this delivery created the order record.
	// Redeliveries and lifecycle updates of a known order id report
	// false and do not move the counter.
	FirstSeen bool
}

// Service is the order ledger: an idempotent upsert plus a per-shop
// monotonic counter, executed as one transaction per delivery.
type Service interface {
	Ingest(ctx context.Context, req IngestRequest) (IngestResult, error)
}

var (
	ErrInvalidShopDomain = errors.New("invalid_shop_domain")
	ErrInvalidOrderID    = errors.New("invalid_order_id")
	ErrShopNotFound      = errors.New("shop_not_found")
)
