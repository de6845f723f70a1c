package migration

import (
	"github.com/smallbiznis/shopmeter/internal/config"
	notificationdomain "github.com/smallbiznis/shopmeter/internal/notification/domain"
	orderdomain "github.com/smallbiznis/shopmeter/internal/order/domain"
	projectdomain "github.com/smallbiznis/shopmeter/internal/project/domain"
	shopdomain "github.com/smallbiznis/shopmeter/internal/shop/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// sqlite is for local development only; let gorm derive the
			// schema from the models instead of the postgres migrations.
			return conn.AutoMigrate(
				&shopdomain.Shop{},
				&orderdomain.Order{},
				&notificationdomain.Notification{},
				&projectdomain.Project{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
