package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	billingdomain "github.com/smallbiznis/shopmeter/internal/billing/domain"
	"go.uber.org/zap"
)

const (
	apiVersion        = "2023-01"
	headerAccessToken = "X-Shopify-Access-Token"

	defaultTimeout = 10 * time.Second
)

// Client talks to the Shopify Admin API on behalf of a shop. Requests
// carry the shop's access token and fail closed after a bounded timeout.
type Client struct {
	http *http.Client
	log  *zap.Logger
}

func NewClient(log *zap.Logger) *Client {
	return &Client{
		http: &http.Client{Timeout: defaultTimeout},
		log:  log.Named("shopify.client"),
	}
}

// CreateUsageCharge posts a metered charge against the shop's recurring
// application charge. Any transport failure or non-2xx response is a
// gateway failure; the caller decides what to do with it.
func (c *Client) CreateUsageCharge(ctx context.Context, req billingdomain.UsageChargeRequest) (billingdomain.ChargeConfirmation, error) {
	url := fmt.Sprintf(
		"https://%s/admin/api/%s/recurring_application_charges/%s/usage_charges.json",
		req.ShopDomain,
		apiVersion,
		req.ChargeID,
	)

	body := map[string]any{
		"usage_charge": map[string]any{
			"description": req.Description,
			"price":       req.Price,
		},
	}

	raw, err := c.post(ctx, url, req.AccessToken, body)
	if err != nil {
		return billingdomain.ChargeConfirmation{}, err
	}
	return billingdomain.ChargeConfirmation{Raw: raw}, nil
}

// RegisterWebhook subscribes this service to a webhook topic on the shop.
func (c *Client) RegisterWebhook(ctx context.Context, shopDomain, accessToken, topic, address string) error {
	url := fmt.Sprintf("https://%s/admin/api/%s/webhooks.json", shopDomain, apiVersion)

	body := map[string]any{
		"webhook": map[string]any{
			"topic":   topic,
			"address": address,
			"format":  "json",
		},
	}

	_, err := c.post(ctx, url, accessToken, body)
	return err
}

func (c *Client) post(ctx context.Context, url, accessToken string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerAccessToken, strings.TrimSpace(accessToken))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billingdomain.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billingdomain.ErrGatewayFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("shopify api request rejected",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: status %d", billingdomain.ErrGatewayFailure, resp.StatusCode)
	}

	return json.RawMessage(raw), nil
}
