package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/shared"
)

// ErrOrderNumberTaken is returned by Save when a new order's number was
// taken by a concurrent placement
var ErrOrderNumberTaken = shared.NewDomainError("ORDER_NUMBER_TAKEN", "Order number is already taken, please retry")

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByIDForRestaurant finds an order with its items within a restaurant
	FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*Order, error)

	// FindAllForRestaurant lists orders, newest first by default.
	// Supported filters: status, table_id, from (inclusive) and to (exclusive) as time.Time on created_at.
	FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountForRestaurant counts orders matching the filter
	CountForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) (int64, error)

	// FindActiveForKitchen returns orders in PENDING..READY, oldest first
	FindActiveForKitchen(ctx context.Context, restaurantID uuid.UUID) ([]Order, error)

	// FindActiveByTable returns the newest undelivered order of a table
	FindActiveByTable(ctx context.Context, restaurantID, tableID uuid.UUID) (*Order, error)

	// ExistsUnfinishedByTable checks whether a table has an undelivered order
	ExistsUnfinishedByTable(ctx context.Context, restaurantID, tableID uuid.UUID) (bool, error)

	// ExistsByMenuItem checks whether any order line references the menu item
	ExistsByMenuItem(ctx context.Context, restaurantID, menuItemID uuid.UUID) (bool, error)

	// GenerateOrderNumber returns the next YYYYMMDD-NNN number for the given local day
	GenerateOrderNumber(ctx context.Context, restaurantID uuid.UUID, day time.Time) (string, error)

	// Save upserts the order row and its items. Items are never deleted.
	// A new order whose number is already used fails with ErrOrderNumberTaken.
	Save(ctx context.Context, order *Order) error
}
