package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Order is one platform order, unique per (shop, platform order id).
// Webhook redeliveries replace the mutable fields in place.
type Order struct {
	ID              snowflake.ID   `gorm:"primaryKey" json:"id"`
	ShopDomain      string         `gorm:"column:shop_domain;not null;uniqueIndex:idx_orders_shop_order,priority:1" json:"shop_domain"`
	ShopifyOrderID  string         `gorm:"column:shopify_order_id;not null;uniqueIndex:idx_orders_shop_order,priority:2" json:"shopify_order_id"`
	FinancialStatus string         `gorm:"column:financial_status;not null;default:'pending'" json:"financial_status"`
	Details         datatypes.JSON `gorm:"type:jsonb" json:"details"`
	CreatedAt       time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
