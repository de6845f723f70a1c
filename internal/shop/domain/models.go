package domain

import "time"

// Shop is a merchant account on the commerce platform, keyed by its
// myshopify domain. AccessToken holds ciphertext in the database; the
// service layer decrypts it on read.
type Shop struct {
	ShopDomain      string    `gorm:"primaryKey;column:shop_domain" json:"shop_domain"`
	AccessToken     string    `gorm:"column:access_token;not null" json:"-"`
	ChargeID        string    `gorm:"column:charge_id;not null;default:''" json:"charge_id"`
	PlanName        string    `gorm:"column:plan_name;not null;default:''" json:"plan_name"`
	OrderCount      int64     `gorm:"column:order_count;not null;default:0" json:"order_count"`
	LastBilledCount int64     `gorm:"column:last_billed_count;not null;default:0" json:"last_billed_count"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Shop) TableName() string {
	return "shops"
}
