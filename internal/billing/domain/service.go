package domain

import (
	"context"
	"errors"

	shopdomain "github.com/smallbiznis/shopmeter/internal/shop/domain"
)

// Gateway submits usage charges to the platform's billing API. It does
// not retry; retry policy belongs to the caller.
type Gateway interface {
	CreateUsageCharge(ctx context.Context, req UsageChargeRequest) (ChargeConfirmation, error)
}

// Service decides whether a new order count crosses the plan quota and,
// if so, emits a usage charge for exactly the not-yet-billed excess.
type Service interface {
	EvaluateUsage(ctx context.Context, shop *shopdomain.Shop, newCount int64) (*UsageCharge, error)
}

var (
	ErrInvalidShop    = errors.New("invalid_shop")
	ErrMissingCharge  = errors.New("missing_recurring_charge")
	ErrGatewayFailure = errors.New("usage_charge_gateway_failure")
)
