package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestOrder builds a placed order with one line per menu item, created at createdAt
func newTestOrder(t *testing.T, restaurantID, tableID uuid.UUID, number string, createdAt time.Time, menuItemIDs ...uuid.UUID) *ordering.Order {
	t.Helper()
	o, err := ordering.NewOrder(restaurantID, tableID, "T1", number)
	require.NoError(t, err)
	if len(menuItemIDs) == 0 {
		menuItemIDs = []uuid.UUID{uuid.New()}
	}
	for _, id := range menuItemIDs {
		_, err := o.AddItem(ordering.LineInput{
			MenuItemID: id,
			Name:       "Item " + id.String()[:4],
			UnitPrice:  decimal.NewFromInt(10),
			Quantity:   2,
		})
		require.NoError(t, err)
	}
	require.NoError(t, o.Place())
	o.CreatedAt = createdAt
	for i := range o.Items {
		o.Items[i].CreatedAt = createdAt
	}
	return o
}

func advanceOrderTo(t *testing.T, o *ordering.Order, target ordering.OrderStatus) {
	t.Helper()
	for o.Status != target {
		require.NoError(t, o.Advance())
	}
}

func TestGormOrderRepository_SaveAndReload(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	restaurantID := uuid.New()
	tableID := uuid.New()

	o := newTestOrder(t, restaurantID, tableID, "20240310-001", time.Now().Add(-time.Minute), uuid.New(), uuid.New())
	require.NoError(t, o.SetCustomerNote("No onions"))
	require.NoError(t, repo.Save(ctx, o))

	t.Run("reloads order with items", func(t *testing.T) {
		found, err := repo.FindByIDForRestaurant(ctx, restaurantID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "20240310-001", found.OrderNumber)
		assert.Equal(t, "No onions", found.CustomerNote)
		assert.Equal(t, ordering.OrderStatusPending, found.Status)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(40)))
		assert.Len(t, found.Items, 2)
		assert.Equal(t, 1, found.Version)
	})

	t.Run("updates status and appends a reopened batch", func(t *testing.T) {
		advanceOrderTo(t, o, ordering.OrderStatusReady)
		require.NoError(t, repo.Save(ctx, o))

		_, err := o.Reopen([]ordering.LineInput{{
			MenuItemID: uuid.New(),
			Name:       "Dessert",
			UnitPrice:  decimal.NewFromInt(5),
			Quantity:   1,
		}})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, o))

		found, err := repo.FindByIDForRestaurant(ctx, restaurantID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusConfirmed, found.Status)
		assert.Equal(t, 2, found.CurrentBatch)
		assert.NotNil(t, found.ReopenedAt)
		assert.Nil(t, found.ReadyAt)
		require.Len(t, found.Items, 3)
		assert.Equal(t, 2, found.Items[2].Batch)
		assert.Equal(t, "Dessert", found.Items[2].Name)
		assert.Equal(t, ordering.ItemStatusPending, found.Items[2].Status)
		assert.Equal(t, ordering.ItemStatusReady, found.Items[0].Status)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(45)))
		assert.Equal(t, 3, found.Version)
	})

	t.Run("is scoped to the restaurant", func(t *testing.T) {
		_, err := repo.FindByIDForRestaurant(ctx, uuid.New(), o.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_GenerateOrderNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	restaurantID := uuid.New()
	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("starts at 001", func(t *testing.T) {
		number, err := repo.GenerateOrderNumber(ctx, restaurantID, day)
		require.NoError(t, err)
		assert.Equal(t, "20240310-001", number)
	})

	t.Run("continues the daily sequence past 999", func(t *testing.T) {
		for _, n := range []string{"20240310-001", "20240310-999", "20240310-1000"} {
			require.NoError(t, repo.Save(ctx, newTestOrder(t, restaurantID, uuid.New(), n, day)))
		}

		number, err := repo.GenerateOrderNumber(ctx, restaurantID, day)
		require.NoError(t, err)
		assert.Equal(t, "20240310-1001", number)
	})

	t.Run("restarts on a new day", func(t *testing.T) {
		number, err := repo.GenerateOrderNumber(ctx, restaurantID, day.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, "20240311-001", number)
	})

	t.Run("keeps restaurants independent", func(t *testing.T) {
		number, err := repo.GenerateOrderNumber(ctx, uuid.New(), day)
		require.NoError(t, err)
		assert.Equal(t, "20240310-001", number)
	})
}

func TestGormOrderRepository_Save_NumberTaken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	restaurantID := uuid.New()
	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	// Two tables read the same next number before either saves
	n1, err := repo.GenerateOrderNumber(ctx, restaurantID, day)
	require.NoError(t, err)
	n2, err := repo.GenerateOrderNumber(ctx, restaurantID, day)
	require.NoError(t, err)
	require.Equal(t, n1, n2)

	first := newTestOrder(t, restaurantID, uuid.New(), n1, day)
	second := newTestOrder(t, restaurantID, uuid.New(), n2, day)
	require.NoError(t, repo.Save(ctx, first))

	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, ordering.ErrOrderNumberTaken)

	var rows int64
	require.NoError(t, db.Table("orders").Where("order_number = ?", n1).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	var items int64
	require.NoError(t, db.Table("order_items").Where("order_id = ?", second.ID).Count(&items).Error)
	assert.Zero(t, items)

	t.Run("the next number goes through", func(t *testing.T) {
		n3, err := repo.GenerateOrderNumber(ctx, restaurantID, day)
		require.NoError(t, err)
		assert.Equal(t, "20240310-002", n3)

		retry := newTestOrder(t, restaurantID, second.TableID, n3, day)
		require.NoError(t, repo.Save(ctx, retry))
	})

	t.Run("updates of a saved order are not number clashes", func(t *testing.T) {
		advanceOrderTo(t, first, ordering.OrderStatusConfirmed)
		assert.NoError(t, repo.Save(ctx, first))
	})
}

func TestGormOrderRepository_Queries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	restaurantID := uuid.New()
	tableA := uuid.New()
	tableB := uuid.New()
	ramenID := uuid.New()
	base := time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)

	oldest := newTestOrder(t, restaurantID, tableA, "20240310-001", base, ramenID)
	advanceOrderTo(t, oldest, ordering.OrderStatusDelivered)
	middle := newTestOrder(t, restaurantID, tableA, "20240310-002", base.Add(time.Hour))
	advanceOrderTo(t, middle, ordering.OrderStatusPreparing)
	newest := newTestOrder(t, restaurantID, tableB, "20240310-003", base.Add(2*time.Hour))
	foreign := newTestOrder(t, uuid.New(), tableA, "20240310-001", base, ramenID)
	for _, o := range []*ordering.Order{oldest, middle, newest, foreign} {
		require.NoError(t, repo.Save(ctx, o))
	}

	t.Run("kitchen sees undelivered orders oldest first", func(t *testing.T) {
		orders, err := repo.FindActiveForKitchen(ctx, restaurantID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, middle.ID, orders[0].ID)
		assert.Equal(t, newest.ID, orders[1].ID)
		assert.NotEmpty(t, orders[0].Items)
	})

	t.Run("finds the open order of a table", func(t *testing.T) {
		found, err := repo.FindActiveByTable(ctx, restaurantID, tableA)
		require.NoError(t, err)
		assert.Equal(t, middle.ID, found.ID)

		exists, err := repo.ExistsUnfinishedByTable(ctx, restaurantID, tableA)
		require.NoError(t, err)
		assert.True(t, exists)

		_, err = repo.FindActiveByTable(ctx, restaurantID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("detects menu item references per restaurant", func(t *testing.T) {
		exists, err := repo.ExistsByMenuItem(ctx, restaurantID, ramenID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByMenuItem(ctx, restaurantID, uuid.New())
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("filters by status and table", func(t *testing.T) {
		filter := shared.Filter{Page: 1, PageSize: 10, Filters: map[string]interface{}{
			"status":   string(ordering.OrderStatusDelivered),
			"table_id": tableA,
		}}
		orders, err := repo.FindAllForRestaurant(ctx, restaurantID, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, oldest.ID, orders[0].ID)
	})

	t.Run("filters by created_at range with exclusive end", func(t *testing.T) {
		filter := shared.Filter{Filters: map[string]interface{}{
			"from": base.Add(30 * time.Minute),
			"to":   base.Add(2 * time.Hour),
		}}
		count, err := repo.CountForRestaurant(ctx, restaurantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("sorts newest first on request", func(t *testing.T) {
		orders, err := repo.FindAllForRestaurant(ctx, restaurantID, shared.Filter{Page: 1, PageSize: 2, OrderBy: "created_at", OrderDir: "desc"})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, newest.ID, orders[0].ID)
	})
}
