package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shopmeter/internal/billing"
	"github.com/smallbiznis/shopmeter/internal/config"
	"github.com/smallbiznis/shopmeter/internal/logger"
	"github.com/smallbiznis/shopmeter/internal/migration"
	"github.com/smallbiznis/shopmeter/internal/notification"
	"github.com/smallbiznis/shopmeter/internal/observability/metrics"
	"github.com/smallbiznis/shopmeter/internal/order"
	"github.com/smallbiznis/shopmeter/internal/project"
	"github.com/smallbiznis/shopmeter/internal/ratelimit"
	"github.com/smallbiznis/shopmeter/internal/secrets"
	"github.com/smallbiznis/shopmeter/internal/server"
	"github.com/smallbiznis/shopmeter/internal/shop"
	"github.com/smallbiznis/shopmeter/internal/shopify"
	"github.com/smallbiznis/shopmeter/internal/webhook"
	"github.com/smallbiznis/shopmeter/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
		secrets.Module,
		metrics.Module,
		ratelimit.Module,

		// Domain modules
		shopify.Module,
		shop.Module,
		order.Module,
		billing.Module,
		notification.Module,
		project.Module,
		webhook.Module,

		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
