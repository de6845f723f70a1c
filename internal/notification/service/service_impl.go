package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shopmeter/internal/notification/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("notification.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, shopDomain, message string, occurredAt time.Time) error {
	shopDomain = strings.ToLower(strings.TrimSpace(shopDomain))
	if shopDomain == "" {
		return domain.ErrInvalidShopDomain
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ErrInvalidMessage
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return s.repo.Insert(ctx, &domain.Notification{
		ID:         s.genID.Generate(),
		ShopDomain: shopDomain,
		Message:    message,
		CreatedAt:  occurredAt.UTC(),
	})
}
