package domain

import (
	"context"
	"errors"
)

type SaveRequest struct {
	ID               string         `json:"-"`
	ShopDomain       string         `json:"shop_domain"`
	Image            string         `json:"image"`
	Attributes       map[string]any `json:"attributes"`
	AppliedAttribute string         `json:"appliedAttribute"`
}

type Service interface {
	GetByID(ctx context.Context, id string) (Project, error)
	Save(ctx context.Context, req SaveRequest) (Project, error)
}

type Repository interface {
	FindByID(ctx context.Context, id int64) (*Project, error)
	Upsert(ctx context.Context, project *Project) error
}

var (
	ErrInvalidID       = errors.New("invalid_project_id")
	ErrInvalidShop     = errors.New("invalid_shop_domain")
	ErrProjectNotFound = errors.New("project_not_found")
)
