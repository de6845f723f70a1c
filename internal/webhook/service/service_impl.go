package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	billingdomain "github.com/smallbiznis/shopmeter/internal/billing/domain"
	"github.com/smallbiznis/shopmeter/internal/config"
	notificationdomain "github.com/smallbiznis/shopmeter/internal/notification/domain"
	"github.com/smallbiznis/shopmeter/internal/observability/metrics"
	orderdomain "github.com/smallbiznis/shopmeter/internal/order/domain"
	shopdomain "github.com/smallbiznis/shopmeter/internal/shop/domain"
	"github.com/smallbiznis/shopmeter/internal/shopify"
	"github.com/smallbiznis/shopmeter/internal/webhook/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg             config.Config
	Log             *zap.Logger
	ShopSvc         shopdomain.Service
	OrderSvc        orderdomain.Service
	BillingSvc      billingdomain.Service
	NotificationSvc notificationdomain.Service
	Metrics         *metrics.Metrics `optional:"true"`
}

type Service struct {
	secret          []byte
	log             *zap.Logger
	shopSvc         shopdomain.Service
	orderSvc        orderdomain.Service
	billingSvc      billingdomain.Service
	notificationSvc notificationdomain.Service
	metrics         *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		secret:          []byte(p.Cfg.ShopifyClientSecret),
		log:             p.Log.Named("webhook.service"),
		shopSvc:         p.ShopSvc,
		orderSvc:        p.OrderSvc,
		billingSvc:      p.BillingSvc,
		notificationSvc: p.NotificationSvc,
		metrics:         p.Metrics,
	}
}

// orderPayload is the slice of the platform's order JSON this pipeline
// needs; the full body is kept verbatim in the ledger's details column.
type orderPayload struct {
	ID              json.Number `json:"id"`
	FinancialStatus string      `json:"financial_status"`
	CreatedAt       string      `json:"created_at"`
	UpdatedAt       string      `json:"updated_at"`
}

// ProcessOrderEvent runs one delivery to completion. A signature failure
// rejects with no side effects. Once the ledger transaction commits the
// delivery cannot fail: a usage charge error is logged and recorded for
// reconciliation but the order stands, and the audit notification is
// best effort.
func (s *Service) ProcessOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	auditMessage, ok := auditMessageForTopic(event.Topic)
	if !ok {
		return domain.ErrUnknownTopic
	}

	if !shopify.VerifyWebhook(event.Payload, event.Signature, s.secret) {
		if s.metrics != nil {
			s.metrics.WebhooksRejected.Inc()
		}
		return domain.ErrInvalidSignature
	}

	var payload orderPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return domain.ErrInvalidPayload
	}
	orderID := strings.TrimSpace(payload.ID.String())
	if orderID == "" || orderID == "0" {
		return domain.ErrInvalidPayload
	}

	// orders/create is stamped with the order's creation time,
	// orders/paid with the payment's update time.
	occurredAt := parseEventTime(payload.CreatedAt)
	if event.Topic == domain.TopicOrdersPaid {
		occurredAt = parseEventTime(payload.UpdatedAt)
	}

	shop, err := s.shopSvc.GetByDomain(ctx, event.ShopDomain)
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.WebhooksReceived.WithLabelValues(event.Topic).Inc()
	}

	result, err := s.orderSvc.Ingest(ctx, orderdomain.IngestRequest{
		ShopDomain:      shop.ShopDomain,
		ShopifyOrderID:  orderID,
		FinancialStatus: payload.FinancialStatus,
		Details:         event.Payload,
		UpdatedAt:       parseEventTime(payload.UpdatedAt),
	})
	if err != nil {
		return err
	}

	s.evaluateUsage(ctx, shop, result)

	if err := s.notificationSvc.Record(ctx, shop.ShopDomain, auditMessage, occurredAt); err != nil {
		s.log.Warn("audit notification failed",
			zap.String("shop", shop.ShopDomain),
			zap.Error(err),
		)
	}

	return nil
}

// evaluateUsage never fails the delivery: ingestion has already
// committed, so a charge failure is surfaced through logs and an audit
// notification and left for the billed-through watermark to reconcile.
func (s *Service) evaluateUsage(ctx context.Context, shop *shopdomain.Shop, result orderdomain.IngestResult) {
	charge, err := s.billingSvc.EvaluateUsage(ctx, shop, result.OrderCount)
	if err == nil {
		return
	}

	s.log.Error("usage charge failed",
		zap.String("shop", shop.ShopDomain),
		zap.Int64("order_count", result.OrderCount),
		zap.Error(err),
	)

	message := fmt.Sprintf("Usage charge failed at %d orders: %v", result.OrderCount, err)
	if charge != nil {
		message = fmt.Sprintf("Usage charge of %.2f for %d excess orders failed: %v",
			charge.Price, charge.ExcessOrders, err)
	}
	if recordErr := s.notificationSvc.Record(ctx, shop.ShopDomain, message, time.Now()); recordErr != nil {
		s.log.Warn("audit notification failed",
			zap.String("shop", shop.ShopDomain),
			zap.Error(recordErr),
		)
	}
}

// parseEventTime reads a platform timestamp. Malformed or absent values
// yield the zero time and the recorder falls back to the current time.
func parseEventTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return t
}

func auditMessageForTopic(topic string) (string, bool) {
	switch topic {
	case domain.TopicOrdersCreate:
		return "New order received", true
	case domain.TopicOrdersPaid:
		return "Order payment received", true
	default:
		return "", false
	}
}
