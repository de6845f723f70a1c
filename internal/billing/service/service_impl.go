package service

import (
	"context"
	"math"
	"strings"

	"github.com/smallbiznis/shopmeter/internal/billing/domain"
	"github.com/smallbiznis/shopmeter/internal/config"
	"github.com/smallbiznis/shopmeter/internal/observability/metrics"
	shopdomain "github.com/smallbiznis/shopmeter/internal/shop/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Plan    *config.PlanConfigHolder
	Gateway domain.Gateway
	Repo    shopdomain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	plan    *config.PlanConfigHolder
	gateway domain.Gateway
	repo    shopdomain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("billing.service"),
		plan:    p.Plan,
		gateway: p.Gateway,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// EvaluateUsage charges for the orders between the shop's billed-through
// watermark and newCount. The watermark starts at the plan quota, so the
// order that first crosses the quota is billed as exactly one unit and a
// redelivered or already-billed count charges nothing.
//
// The watermark is re-read under the shop row's write lock rather than
// trusted from the caller's snapshot: two deliveries racing past the
// quota would otherwise both compute excess from the same stale floor
// and bill the overlap twice. The gateway call happens while the lock is
// held, so concurrent evaluations for a shop serialize and each excess
// unit is submitted once. A failed charge rolls the transaction back and
// leaves the watermark in place, so the uncovered units are picked up by
// the next evaluation.
func (s *Service) EvaluateUsage(ctx context.Context, shop *shopdomain.Shop, newCount int64) (*domain.UsageCharge, error) {
	if shop == nil || strings.TrimSpace(shop.ShopDomain) == "" {
		return nil, domain.ErrInvalidShop
	}

	plan := s.plan.Current()

	// The floor can only ever be at or above the quota, so counts at or
	// below it never need the locked read.
	if newCount <= plan.OrderLimit {
		return nil, nil
	}

	var charge *domain.UsageCharge
	err := s.db.Transaction(func(tx *gorm.DB) error {
		watermark, found, err := s.repo.LockBilledCount(ctx, tx, shop.ShopDomain)
		if err != nil {
			return err
		}
		if !found {
			return shopdomain.ErrNotFound
		}

		billedThrough := watermark
		if billedThrough < plan.OrderLimit {
			billedThrough = plan.OrderLimit
		}

		excess := newCount - billedThrough
		if excess <= 0 {
			return nil
		}

		if strings.TrimSpace(shop.ChargeID) == "" {
			return domain.ErrMissingCharge
		}

		charge = &domain.UsageCharge{
			ShopDomain:   shop.ShopDomain,
			ExcessOrders: excess,
			Price:        roundPrice(float64(excess) * plan.UnitCost),
			Description:  plan.ChargeDescription,
		}

		_, err = s.gateway.CreateUsageCharge(ctx, domain.UsageChargeRequest{
			ShopDomain:  shop.ShopDomain,
			AccessToken: shop.AccessToken,
			ChargeID:    shop.ChargeID,
			Description: charge.Description,
			Price:       charge.Price,
		})
		if err != nil {
			return err
		}

		if err := s.repo.AdvanceLastBilled(ctx, tx, shop.ShopDomain, newCount); err != nil {
			// The charge already went through; an unmoved watermark
			// re-bills the same units on the next order. Surface loudly.
			s.log.Error("advancing billed-through watermark failed",
				zap.String("shop", shop.ShopDomain),
				zap.Int64("count", newCount),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		if charge != nil && s.metrics != nil {
			s.metrics.UsageCharges.WithLabelValues(metrics.ChargeOutcomeFailed).Inc()
		}
		return charge, err
	}
	if charge == nil {
		return nil, nil
	}

	shop.LastBilledCount = newCount

	if s.metrics != nil {
		s.metrics.UsageCharges.WithLabelValues(metrics.ChargeOutcomeSubmitted).Inc()
	}
	s.log.Info("usage charge submitted",
		zap.String("shop", shop.ShopDomain),
		zap.Int64("excess_orders", charge.ExcessOrders),
		zap.Float64("price", charge.Price),
	)

	return charge, nil
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
