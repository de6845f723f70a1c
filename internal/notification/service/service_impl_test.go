package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/shopmeter/internal/notification/domain"
	"github.com/smallbiznis/shopmeter/internal/notification/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s/notifications.db", t.TempDir())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Notification{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(db),
	})
	return svc, db
}

func TestRecord_UsesEventTimestamp(t *testing.T) {
	svc, db := newTestService(t)

	orderedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	paidAt := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)

	require.NoError(t, svc.Record(context.Background(), "Acme.MyShopify.com", "New order received", orderedAt))
	require.NoError(t, svc.Record(context.Background(), "acme.myshopify.com", "Order payment received", paidAt))

	var rows []domain.Notification
	require.NoError(t, db.Order("created_at").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "acme.myshopify.com", rows[0].ShopDomain)
	assert.Equal(t, "New order received", rows[0].Message)
	assert.True(t, rows[0].CreatedAt.Equal(orderedAt))
	assert.Equal(t, "Order payment received", rows[1].Message)
	assert.True(t, rows[1].CreatedAt.Equal(paidAt))
}

func TestRecord_ZeroTimestampFallsBack(t *testing.T) {
	svc, db := newTestService(t)

	before := time.Now().Add(-time.Second)
	require.NoError(t, svc.Record(context.Background(), "acme.myshopify.com", "New order received", time.Time{}))

	var row domain.Notification
	require.NoError(t, db.First(&row).Error)
	assert.True(t, row.CreatedAt.After(before), "zero event time must be stamped with the current time")
}

func TestRecord_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.Record(context.Background(), "", "message", time.Time{}), domain.ErrInvalidShopDomain)
	assert.ErrorIs(t, svc.Record(context.Background(), "acme.myshopify.com", "  ", time.Time{}), domain.ErrInvalidMessage)
}
