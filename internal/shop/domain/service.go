package domain

import (
	"context"
	"errors"
)

type InstallRequest struct {
	ShopDomain  string `json:"shop_domain"`
	AccessToken string `json:"access_token"`
	ChargeID    string `json:"charge_id"`
	PlanName    string `json:"plan_name"`
}

type Service interface {
	// Install creates or refreshes the shop record. The access token is
	// encrypted before it reaches the store.
	Install(ctx context.Context, req InstallRequest) (Shop, error)
	// GetByDomain returns the shop with its access token decrypted. The
	// plaintext token only ever lives in memory.
	GetByDomain(ctx context.Context, shopDomain string) (*Shop, error)
}

var (
	ErrInvalidShopDomain  = errors.New("invalid_shop_domain")
	ErrInvalidAccessToken = errors.New("invalid_access_token")
	ErrNotFound           = errors.New("shop_not_found")
)
