package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Project struct {
	ID               snowflake.ID      `gorm:"primaryKey" json:"id"`
	ShopDomain       string            `gorm:"column:shop_domain;not null;index" json:"shop_domain"`
	Image            string            `gorm:"column:image" json:"image"`
	Attributes       datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"attributes"`
	AppliedAttribute string            `gorm:"column:applied_attribute" json:"appliedAttribute"`
	CreatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
