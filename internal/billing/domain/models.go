package domain

import "encoding/json"

// UsageCharge is the metered line item computed for orders beyond the
// plan quota. It is transient: produced by the accountant, consumed once
// by the gateway, never persisted.
type UsageCharge struct {
	ShopDomain   string  `json:"shop_domain"`
	ExcessOrders int64   `json:"excess_orders"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
}

type UsageChargeRequest struct {
	ShopDomain  string
	AccessToken string
	ChargeID    string
	Description string
	Price       float64
}

// ChargeConfirmation carries the gateway's response body through to the
// caller untouched.
type ChargeConfirmation struct {
	Raw json.RawMessage
}
