package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/shopmeter/internal/secrets"
	"github.com/smallbiznis/shopmeter/internal/shop/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Cipher *secrets.Cipher
	Repo   domain.Repository
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	cipher *secrets.Cipher
	repo   domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("shop.service"),
		cipher: p.Cipher,
		repo:   p.Repo,
	}
}

func (s *Service) Install(ctx context.Context, req domain.InstallRequest) (domain.Shop, error) {
	shopDomain := normalizeShopDomain(req.ShopDomain)
	if shopDomain == "" {
		return domain.Shop{}, domain.ErrInvalidShopDomain
	}

	token := strings.TrimSpace(req.AccessToken)
	if token == "" {
		return domain.Shop{}, domain.ErrInvalidAccessToken
	}

	sealed, err := s.cipher.Encrypt(token)
	if err != nil {
		return domain.Shop{}, err
	}

	now := time.Now().UTC()
	shop := domain.Shop{
		ShopDomain:  shopDomain,
		AccessToken: sealed,
		ChargeID:    strings.TrimSpace(req.ChargeID),
		PlanName:    strings.TrimSpace(req.PlanName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Upsert(ctx, s.db, &shop); err != nil {
		return domain.Shop{}, err
	}

	shop.AccessToken = token
	return shop, nil
}

func (s *Service) GetByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	shopDomain = normalizeShopDomain(shopDomain)
	if shopDomain == "" {
		return nil, domain.ErrInvalidShopDomain
	}

	shop, err := s.repo.FindByDomain(ctx, s.db, shopDomain)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}

	token, err := s.cipher.Decrypt(shop.AccessToken)
	if err != nil {
		s.log.Error("access token decryption failed", zap.String("shop", shopDomain), zap.Error(err))
		return nil, err
	}
	shop.AccessToken = token

	return shop, nil
}

func normalizeShopDomain(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
