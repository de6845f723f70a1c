package billing

import (
	"github.com/smallbiznis/shopmeter/internal/billing/domain"
	"github.com/smallbiznis/shopmeter/internal/billing/service"
	"github.com/smallbiznis/shopmeter/internal/shopify"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(func(client *shopify.Client) domain.Gateway { return client }),
	fx.Provide(service.New),
)
