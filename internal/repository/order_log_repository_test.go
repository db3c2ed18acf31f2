package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tapcard/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&model.OrderLog{}))
	return conn
}

func TestOrderLogRepository_CreateAndBatch(t *testing.T) {
	conn := openTestDB(t)
	repo := NewOrderLogRepository(conn)
	ctx := context.Background()
	checkoutID := uuid.New()

	first := &model.OrderLog{
		CheckoutID:   checkoutID,
		Email:        "a@example.com",
		Username:     "ark001",
		DeliveryZone: model.ZoneWithinRegion,
		Amount:       decimal.NewFromInt(29500),
		Status:       model.OrderLogStatusFailed,
		ErrorMessage: "status 503",
	}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.ID)

	require.NoError(t, repo.CreateBatch(ctx, []model.OrderLog{{
		CheckoutID:     checkoutID,
		Email:          "a@example.com",
		Username:       "ark001",
		DeliveryZone:   model.ZoneWithinRegion,
		Amount:         decimal.Zero,
		DiscountCode:   "FREE",
		DiscountAmount: decimal.NewFromInt(29500),
		Status:         model.OrderLogStatusFree,
	}}))

	var logs []model.OrderLog
	require.NoError(t, conn.Where("checkout_id = ?", checkoutID.String()).Order("created_at asc").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, model.OrderLogStatusFailed, logs[0].Status)
	assert.Equal(t, model.OrderLogStatusFree, logs[1].Status)
	assert.True(t, logs[1].DiscountAmount.Equal(decimal.NewFromInt(29500)))
}

func TestOrderLogRepository_CreateBatchEmpty(t *testing.T) {
	repo := NewOrderLogRepository(openTestDB(t))
	assert.NoError(t, repo.CreateBatch(context.Background(), nil))
}
