package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Notification is an append-only audit line tied to an ingestion
// outcome. Rows are never mutated or deleted.
type Notification struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	ShopDomain string       `gorm:"column:shop_domain;not null;index" json:"shop_domain"`
	Message    string       `gorm:"not null" json:"message"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
