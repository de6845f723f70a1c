package domain

import (
	"context"
	"errors"
)

const (
	TopicOrdersCreate = "orders/create"
	TopicOrdersPaid   = "orders/paid"
)

// OrderEvent is one webhook delivery: the raw body exactly as received,
// the signature header, and the shop the platform attributes it to.
type OrderEvent struct {
	Topic      string
	ShopDomain string
	Signature  string
	Payload    []byte
}

// Service runs a delivery through verification, the order ledger, usage
// accounting, and audit recording.
type Service interface {
	ProcessOrderEvent(ctx context.Context, event OrderEvent) error
}

var (
	ErrInvalidSignature = errors.New("invalid_webhook_signature")
	ErrInvalidPayload   = errors.New("invalid_webhook_payload")
	ErrUnknownTopic     = errors.New("unknown_webhook_topic")
)
