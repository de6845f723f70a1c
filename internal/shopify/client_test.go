package shopify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	billingdomain "github.com/smallbiznis/shopmeter/internal/billing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// rewriteTransport sends every request to the test server regardless of
// the shop host baked into the URL.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	return &Client{
		http: &http.Client{
			Transport: rewriteTransport{target: target},
			Timeout:   5 * time.Second,
		},
		log: zap.NewNop(),
	}
}

func TestCreateUsageCharge(t *testing.T) {
	var gotPath, gotToken string
	var gotBody map[string]map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get(headerAccessToken)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"usage_charge":{"id":1034618211,"price":"0.25"}}`))
	})

	confirmation, err := client.CreateUsageCharge(context.Background(), billingdomain.UsageChargeRequest{
		ShopDomain:  "acme.myshopify.com",
		AccessToken: "shpat_token",
		ChargeID:    "455696195",
		Description: "Additional orders",
		Price:       0.25,
	})
	require.NoError(t, err)

	assert.Equal(t, "/admin/api/2023-01/recurring_application_charges/455696195/usage_charges.json", gotPath)
	assert.Equal(t, "shpat_token", gotToken)
	assert.Equal(t, "Additional orders", gotBody["usage_charge"]["description"])
	assert.Equal(t, 0.25, gotBody["usage_charge"]["price"])
	assert.Contains(t, string(confirmation.Raw), "1034618211")
}

func TestCreateUsageCharge_Non2xxIsGatewayFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":"Maximum usage charge exceeded"}`))
	})

	_, err := client.CreateUsageCharge(context.Background(), billingdomain.UsageChargeRequest{
		ShopDomain: "acme.myshopify.com",
		ChargeID:   "455696195",
	})
	assert.ErrorIs(t, err, billingdomain.ErrGatewayFailure)
}

func TestRegisterWebhook(t *testing.T) {
	var gotPath string
	var gotBody map[string]map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"webhook":{"id":4759306}}`))
	})

	err := client.RegisterWebhook(context.Background(),
		"acme.myshopify.com", "shpat_token",
		"orders/create", "https://app.example.com/webhook/orders/create")
	require.NoError(t, err)

	assert.Equal(t, "/admin/api/2023-01/webhooks.json", gotPath)
	assert.Equal(t, "orders/create", gotBody["webhook"]["topic"])
	assert.Equal(t, "https://app.example.com/webhook/orders/create", gotBody["webhook"]["address"])
	assert.Equal(t, "json", gotBody["webhook"]["format"])
}

func TestRegisterWebhook_TransportFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	// Point the client at a dead socket.
	client.http.Transport = rewriteTransport{target: &url.URL{Scheme: "http", Host: "127.0.0.1:1"}}

	err := client.RegisterWebhook(context.Background(),
		"acme.myshopify.com", "shpat_token", "orders/create", "https://app.example.com/cb")
	assert.ErrorIs(t, err, billingdomain.ErrGatewayFailure)
}
