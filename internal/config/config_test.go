package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SHOPIFY_CLIENT_SECRET", "shhh-client-secret")
	t.Setenv("ENCRYPTION_KEY", strings.Repeat("k", 32))
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_MissingClientSecretFails(t *testing.T) {
	t.Setenv("SHOPIFY_CLIENT_SECRET", "")
	t.Setenv("ENCRYPTION_KEY", strings.Repeat("k", 32))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHOPIFY_CLIENT_SECRET")
}

func TestLoad_MissingEncryptionKeyFails(t *testing.T) {
	t.Setenv("SHOPIFY_CLIENT_SECRET", "shhh-client-secret")
	t.Setenv("ENCRYPTION_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENCRYPTION_KEY")
}

func TestLoad_ShortEncryptionKeyFails(t *testing.T) {
	t.Setenv("SHOPIFY_CLIENT_SECRET", "shhh-client-secret")
	t.Setenv("ENCRYPTION_KEY", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}

func TestLoad_RateLimitRequiresRedisAddr(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REDIS_ADDR", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_REDIS_ADDR")
}

func TestPlanConfigHolder_Defaults(t *testing.T) {
	var holder *PlanConfigHolder

	cfg := holder.Current()
	assert.Equal(t, int64(100), cfg.OrderLimit)
	assert.Equal(t, 0.25, cfg.UnitCost)
	assert.Equal(t, "Additional orders", cfg.ChargeDescription)
}

func TestPlanConfigHolder_StoreAndCurrent(t *testing.T) {
	holder := &PlanConfigHolder{}
	holder.Store(PlanConfig{OrderLimit: 500, UnitCost: 0.1, ChargeDescription: "Extra orders"})

	cfg := holder.Current()
	assert.Equal(t, int64(500), cfg.OrderLimit)
	assert.Equal(t, 0.1, cfg.UnitCost)
}

func TestValidatePlanConfig(t *testing.T) {
	assert.NoError(t, validatePlanConfig(DefaultPlanConfig()))
	assert.Error(t, validatePlanConfig(PlanConfig{OrderLimit: -1, UnitCost: 0.25, ChargeDescription: "x"}))
	assert.Error(t, validatePlanConfig(PlanConfig{OrderLimit: 100, UnitCost: -0.25, ChargeDescription: "x"}))
	assert.Error(t, validatePlanConfig(PlanConfig{OrderLimit: 100, UnitCost: 0.25}))
}
