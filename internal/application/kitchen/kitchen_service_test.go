package kitchen

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

var _ ordering.OrderRepository = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, restaurantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, restaurantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindActiveForKitchen(ctx context.Context, restaurantID uuid.UUID) ([]ordering.Order, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindActiveByTable(ctx context.Context, restaurantID, tableID uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, restaurantID, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsUnfinishedByTable(ctx context.Context, restaurantID, tableID uuid.UUID) (bool, error) {
	args := m.Called(ctx, restaurantID, tableID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ExistsByMenuItem(ctx context.Context, restaurantID, menuItemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, restaurantID, menuItemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context, restaurantID uuid.UUID, day time.Time) (string, error) {
	args := m.Called(ctx, restaurantID, day)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func kitchenOrder(t *testing.T, restaurantID uuid.UUID, number string, createdAt time.Time, lines int) *ordering.Order {
	t.Helper()
	order, err := ordering.NewOrder(restaurantID, uuid.New(), "T"+number, number)
	require.NoError(t, err)
	for i := 0; i < lines; i++ {
		_, err := order.AddItem(ordering.LineInput{
			MenuItemID: uuid.New(),
			Name:       "Dish",
			UnitPrice:  decimal.NewFromInt(5),
			Quantity:   1,
		})
		require.NoError(t, err)
	}
	require.NoError(t, order.Place())
	order.CreatedAt = createdAt
	return order
}

func TestKitchenService_Board(t *testing.T) {
	ctx := context.Background()
	restaurantID := uuid.New()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	fresh := kitchenOrder(t, restaurantID, "003", now.Add(-2*time.Minute), 1)

	waiting := kitchenOrder(t, restaurantID, "002", now.Add(-12*time.Minute), 2)
	require.NoError(t, waiting.Advance())

	reopened := kitchenOrder(t, restaurantID, "001", now.Add(-25*time.Minute), 1)
	require.NoError(t, reopened.Advance())
	require.NoError(t, reopened.Advance())
	require.NoError(t, reopened.Advance())
	_, err := reopened.AdvanceItem(reopened.Items[0].ID)
	require.NoError(t, err)
	_, err = reopened.Reopen([]ordering.LineInput{{MenuItemID: uuid.New(), Name: "Dessert", UnitPrice: decimal.NewFromInt(4), Quantity: 2}})
	require.NoError(t, err)
	reopenedAt := now.Add(-3 * time.Minute)
	reopened.ReopenedAt = &reopenedAt

	served := kitchenOrder(t, restaurantID, "000", now.Add(-40*time.Minute), 1)
	require.NoError(t, served.Advance())
	require.NoError(t, served.Advance())
	require.NoError(t, served.Advance())
	_, err = served.AdvanceItem(served.Items[0].ID)
	require.NoError(t, err)
	served.Status = ordering.OrderStatusReady

	repo := new(MockOrderRepository)
	repo.On("FindActiveForKitchen", ctx, restaurantID).
		Return([]ordering.Order{*served, *reopened, *waiting, *fresh}, nil)

	svc := NewKitchenService(repo, ordering.DefaultPriorityThresholds(), 4*time.Second)
	svc.now = func() time.Time { return now }

	t.Run("lists active orders with batches and priority", func(t *testing.T) {
		board, err := svc.Board(ctx, restaurantID, BoardFilter{})
		require.NoError(t, err)

		assert.Equal(t, int64(4000), board.PollIntervalMs)
		assert.Equal(t, now, board.ServerTime)
		require.Equal(t, 3, board.Count)

		first := board.Orders[0]
		assert.Equal(t, "001", first.OrderNumber)
		assert.Equal(t, "NORMAL", first.Priority, "priority restarts with the reopened batch")
		assert.Equal(t, 25, first.AgeMinutes)
		assert.Equal(t, "CONFIRMED", first.Status)
		require.Len(t, first.Batches, 1)
		assert.Equal(t, 2, first.Batches[0].Number)
		assert.True(t, first.Batches[0].IsReopen)
		assert.Equal(t, "Dessert", first.Batches[0].Items[0].Name)
		assert.False(t, first.IsComplete)

		assert.Equal(t, "HIGH", board.Orders[1].Priority)
		assert.Len(t, board.Orders[1].Batches[0].Items, 2)
		assert.Equal(t, "NORMAL", board.Orders[2].Priority)
	})

	t.Run("filters by priority", func(t *testing.T) {
		board, err := svc.Board(ctx, restaurantID, BoardFilter{Priority: "HIGH"})
		require.NoError(t, err)
		require.Len(t, board.Orders, 1)
		assert.Equal(t, "002", board.Orders[0].OrderNumber)
	})

	t.Run("filters by status", func(t *testing.T) {
		board, err := svc.Board(ctx, restaurantID, BoardFilter{Status: "PENDING"})
		require.NoError(t, err)
		require.Len(t, board.Orders, 1)
		assert.Equal(t, "003", board.Orders[0].OrderNumber)
	})
}

func TestKitchenService_Summary(t *testing.T) {
	ctx := context.Background()
	restaurantID := uuid.New()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	a := kitchenOrder(t, restaurantID, "001", now.Add(-30*time.Minute), 2)
	b := kitchenOrder(t, restaurantID, "002", now.Add(-1*time.Minute), 1)
	require.NoError(t, b.Advance())

	repo := new(MockOrderRepository)
	repo.On("FindActiveForKitchen", ctx, restaurantID).Return([]ordering.Order{*a, *b}, nil)

	svc := NewKitchenService(repo, ordering.PriorityThresholds{}, 0)
	svc.now = func() time.Time { return now }

	summary, err := svc.Summary(ctx, restaurantID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ActiveOrders)
	assert.Equal(t, 3, summary.ActiveItems)
	assert.Equal(t, map[string]int{"PENDING": 1, "CONFIRMED": 1, "PREPARING": 0, "READY": 0}, summary.ByStatus)
	assert.Equal(t, map[string]int{"NORMAL": 1, "HIGH": 0, "URGENT": 1}, summary.ByPriority)
}
