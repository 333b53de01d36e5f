package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/qrdine/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReportRepository(t *testing.T) {
	db := setupTestDB(t)
	orders := NewGormOrderRepository(db)
	menuItems := NewGormMenuItemRepository(db)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	restaurantID := uuid.New()
	tableID := uuid.New()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	ramen := newTestMenuItem(t, restaurantID, "Ramen", "Mains", 10)
	require.NoError(t, menuItems.Save(ctx, ramen))
	removedItemID := uuid.New()

	confirmed := newTestOrder(t, restaurantID, tableID, "20240310-001", day.Add(12*time.Hour), ramen.ID, removedItemID)
	advanceOrderTo(t, confirmed, ordering.OrderStatusConfirmed)
	delivered := newTestOrder(t, restaurantID, tableID, "20240310-002", day.Add(13*time.Hour), ramen.ID)
	advanceOrderTo(t, delivered, ordering.OrderStatusDelivered)
	_, err := delivered.Reopen([]ordering.LineInput{{MenuItemID: ramen.ID, Name: "Ramen", UnitPrice: decimal.NewFromInt(10), Quantity: 1}})
	require.NoError(t, err)
	pending := newTestOrder(t, restaurantID, tableID, "20240310-003", day.Add(14*time.Hour), ramen.ID)
	outside := newTestOrder(t, restaurantID, tableID, "20240311-001", day.Add(25*time.Hour), ramen.ID)
	advanceOrderTo(t, outside, ordering.OrderStatusConfirmed)
	foreign := newTestOrder(t, uuid.New(), tableID, "20240310-001", day.Add(12*time.Hour), ramen.ID)
	advanceOrderTo(t, foreign, ordering.OrderStatusConfirmed)

	for _, o := range []*ordering.Order{confirmed, delivered, pending, outside, foreign} {
		require.NoError(t, orders.Save(ctx, o))
	}

	filter := report.Filter{RestaurantID: restaurantID, From: day, To: day.AddDate(0, 0, 1), TopN: 10}

	t.Run("OrderFacts returns counted orders in the period", func(t *testing.T) {
		facts, err := repo.OrderFacts(ctx, filter)
		require.NoError(t, err)
		require.Len(t, facts, 2)

		assert.Equal(t, confirmed.ID, facts[0].OrderID)
		assert.Equal(t, int64(4), facts[0].ItemQuantity)
		assert.True(t, facts[0].TotalAmount.Equal(decimal.NewFromInt(40)))
		assert.False(t, facts[0].Reopened)

		assert.Equal(t, delivered.ID, facts[1].OrderID)
		assert.Equal(t, int64(3), facts[1].ItemQuantity)
		assert.True(t, facts[1].Reopened)
		assert.Equal(t, "T1", facts[1].TableNumber)
	})

	t.Run("OrderFacts returns an empty slice for an empty period", func(t *testing.T) {
		empty := filter
		empty.From = day.AddDate(0, 0, -7)
		empty.To = day.AddDate(0, 0, -6)

		facts, err := repo.OrderFacts(ctx, empty)
		require.NoError(t, err)
		assert.NotNil(t, facts)
		assert.Empty(t, facts)
	})

	t.Run("ItemSales groups lines per menu item", func(t *testing.T) {
		sales, err := repo.ItemSales(ctx, filter)
		require.NoError(t, err)
		require.Len(t, sales, 2)

		byID := make(map[uuid.UUID]report.ItemSales, len(sales))
		for _, s := range sales {
			byID[s.MenuItemID] = s
		}

		ramenSales := byID[ramen.ID]
		assert.Equal(t, "Mains", ramenSales.Category)
		assert.Equal(t, int64(5), ramenSales.Quantity)
		assert.True(t, ramenSales.Revenue.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, int64(2), ramenSales.OrderCount)

		removed := byID[removedItemID]
		assert.Equal(t, UncategorizedLabel, removed.Category)
		assert.Equal(t, int64(2), removed.Quantity)
		assert.Equal(t, int64(1), removed.OrderCount)
	})

	t.Run("StatusCounts covers every status", func(t *testing.T) {
		counts, err := repo.StatusCounts(ctx, filter)
		require.NoError(t, err)

		byStatus := make(map[string]int64, len(counts))
		for _, c := range counts {
			byStatus[c.Status] = c.Count
		}
		assert.Equal(t, map[string]int64{
			"PENDING":   1,
			"CONFIRMED": 2,
		}, byStatus)
	})
}
