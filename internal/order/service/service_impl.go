package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shopmeter/internal/observability/metrics"
	"github.com/smallbiznis/shopmeter/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("order.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// Ingest upserts the order and maintains the shop's counter in a single
// transaction. The counter counts distinct orders, not deliveries: only
// the first sighting of a (shop, order id) pair increments it, so
// at-least-once redelivery from the platform cannot inflate usage.
// Concurrent deliveries for the same shop serialize on the counter row's
// UPDATE lock, so no increment is lost.
func (s *Service) Ingest(ctx context.Context, req domain.IngestRequest) (domain.IngestResult, error) {
	shopDomain := strings.ToLower(strings.TrimSpace(req.ShopDomain))
	if shopDomain == "" {
		return domain.IngestResult{}, domain.ErrInvalidShopDomain
	}

	orderID := strings.TrimSpace(req.ShopifyOrderID)
	if orderID == "" {
		return domain.IngestResult{}, domain.ErrInvalidOrderID
	}

	status := strings.TrimSpace(req.FinancialStatus)
	if status == "" {
		status = "pending"
	}

	now := time.Now().UTC()
	updatedAt := req.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	record := domain.Order{
		ID:              s.genID.Generate(),
		ShopDomain:      shopDomain,
		ShopifyOrderID:  orderID,
		FinancialStatus: status,
		Details:         datatypes.JSON(req.Details),
		CreatedAt:       now,
		UpdatedAt:       updatedAt,
	}

	var result domain.IngestResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		inserted, err := s.repo.InsertIgnoreDuplicate(ctx, tx, &record)
		if err != nil {
			return err
		}

		if inserted {
			found, err := s.repo.IncrementOrderCount(ctx, tx, shopDomain)
			if err != nil {
				return err
			}
			if !found {
				return domain.ErrShopNotFound
			}
		} else {
			if err := s.repo.Refresh(ctx, tx, &record); err != nil {
				return err
			}
		}

		count, err := s.repo.OrderCount(ctx, tx, shopDomain)
		if err != nil {
			return err
		}

		result = domain.IngestResult{
			OrderCount: count,
			FirstSeen:  inserted,
		}
		return nil
	})
	if err != nil {
		return domain.IngestResult{}, err
	}

	if result.FirstSeen && s.metrics != nil {
		s.metrics.OrdersIngested.Inc()
	}

	return result, nil
}
