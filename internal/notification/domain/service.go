package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// Record appends an audit message for the shop, stamped with the
	// time the event happened on the platform. A zero occurredAt falls
	// back to the current time. Callers on the ingestion path treat
	// failures as best effort: log and move on.
	Record(ctx context.Context, shopDomain, message string, occurredAt time.Time) error
}

type Repository interface {
	Insert(ctx context.Context, notification *Notification) error
}

var (
	ErrInvalidShopDomain = errors.New("invalid_shop_domain")
	ErrInvalidMessage    = errors.New("invalid_message")
)
