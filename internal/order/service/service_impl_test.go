package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/shopmeter/internal/order/domain"
	"github.com/smallbiznis/shopmeter/internal/order/repository"
	shopdomain "github.com/smallbiznis/shopmeter/internal/shop/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s/orders.db", t.TempDir())), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&shopdomain.Shop{}, &domain.Order{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func seedShop(t *testing.T, db *gorm.DB, shopDomain string) {
	t.Helper()
	require.NoError(t, db.Create(&shopdomain.Shop{
		ShopDomain:  shopDomain,
		AccessToken: "sealed",
	}).Error)
}

func TestIngest_NewOrderIncrementsCounter(t *testing.T) {
	svc, db := newTestService(t)
	seedShop(t, db, "acme.myshopify.com")

	result, err := svc.Ingest(context.Background(), domain.IngestRequest{
		ShopDomain:      "acme.myshopify.com",
		ShopifyOrderID:  "450789469",
		FinancialStatus: "paid",
		Details:         []byte(`{"id":450789469,"financial_status":"paid"}`),
	})
	require.NoError(t, err)
	assert.True(t, result.FirstSeen)
	assert.Equal(t, int64(1), result.OrderCount)

	var order domain.Order
	require.NoError(t, db.Where("shop_domain = ? AND shopify_order_id = ?", "acme.myshopify.com", "450789469").First(&order).Error)
	assert.Equal(t, "paid", order.FinancialStatus)
}

func TestIngest_RedeliveryDoesNotDoubleCount(t *testing.T) {
	svc, db := newTestService(t)
	seedShop(t, db, "acme.myshopify.com")

	req := domain.IngestRequest{
		ShopDomain:     "acme.myshopify.com",
		ShopifyOrderID: "450789469",
		Details:        []byte(`{"id":450789469}`),
	}

	first, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.OrderCount)

	second, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, second.FirstSeen)
	assert.Equal(t, int64(1), second.OrderCount, "identical redelivery must not inflate the counter")

	var orders int64
	require.NoError(t, db.Model(&domain.Order{}).Where("shop_domain = ?", "acme.myshopify.com").Count(&orders).Error)
	assert.Equal(t, int64(1), orders)
}

func TestIngest_RedeliveryRefreshesMutableFields(t *testing.T) {
	svc, db := newTestService(t)
	seedShop(t, db, "acme.myshopify.com")

	_, err := svc.Ingest(context.Background(), domain.IngestRequest{
		ShopDomain:      "acme.myshopify.com",
		ShopifyOrderID:  "450789469",
		FinancialStatus: "pending",
		Details:         []byte(`{"id":450789469,"financial_status":"pending"}`),
	})
	require.NoError(t, err)

	result, err := svc.Ingest(context.Background(), domain.IngestRequest{
		ShopDomain:      "acme.myshopify.com",
		ShopifyOrderID:  "450789469",
		FinancialStatus: "paid",
		Details:         []byte(`{"id":450789469,"financial_status":"paid"}`),
	})
	require.NoError(t, err)
	assert.False(t, result.FirstSeen)
	assert.Equal(t, int64(1), result.OrderCount)

	var order domain.Order
	require.NoError(t, db.Where("shopify_order_id = ?", "450789469").First(&order).Error)
	assert.Equal(t, "paid", order.FinancialStatus)
}

func TestIngest_DistinctOrdersEachCount(t *testing.T) {
	svc, db := newTestService(t)
	seedShop(t, db, "acme.myshopify.com")

	for i := 1; i <= 5; i++ {
		result, err := svc.Ingest(context.Background(), domain.IngestRequest{
			ShopDomain:     "acme.myshopify.com",
			ShopifyOrderID: fmt.Sprintf("%d", 1000+i),
			Details:        []byte(`{}`),
		})
		require.NoError(t, err)
		assert.True(t, result.FirstSeen)
		assert.Equal(t, int64(i), result.OrderCount)
	}
}

func TestIngest_ConcurrentDeliveriesLoseNoUpdates(t *testing.T) {
	svc, db := newTestService(t)
	seedShop(t, db, "acme.myshopify.com")

	const deliveries = 20
	var wg sync.WaitGroup
	errs := make(chan error, deliveries)
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.Ingest(context.Background(), domain.IngestRequest{
				ShopDomain:     "acme.myshopify.com",
				ShopifyOrderID: fmt.Sprintf("order-%d", n),
				Details:        []byte(`{}`),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var shop shopdomain.Shop
	require.NoError(t, db.Where("shop_domain = ?", "acme.myshopify.com").First(&shop).Error)
	assert.Equal(t, int64(deliveries), shop.OrderCount)
}

func TestIngest_UnknownShopRollsBack(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.Ingest(context.Background(), domain.IngestRequest{
		ShopDomain:     "ghost.myshopify.com",
		ShopifyOrderID: "1",
		Details:        []byte(`{}`),
	})
	assert.ErrorIs(t, err, domain.ErrShopNotFound)

	var orders int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orders).Error)
	assert.Zero(t, orders, "order insert must roll back with the failed counter update")
}

func TestIngest_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Ingest(context.Background(), domain.IngestRequest{ShopifyOrderID: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidShopDomain)

	_, err = svc.Ingest(context.Background(), domain.IngestRequest{ShopDomain: "acme.myshopify.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrderID)
}
