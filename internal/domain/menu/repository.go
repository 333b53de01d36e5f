package menu

import (
	"context"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/shared"
)

// MenuItemRepository defines persistence operations for menu items
type MenuItemRepository interface {
	// FindByIDForRestaurant finds a menu item by ID within a restaurant
	FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*MenuItem, error)

	// FindByIDsForRestaurant loads several menu items at once; missing ids are simply absent
	FindByIDsForRestaurant(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]MenuItem, error)

	// FindByNamesForRestaurant loads menu items by name, ignoring case
	FindByNamesForRestaurant(ctx context.Context, restaurantID uuid.UUID, names []string) ([]MenuItem, error)

	// FindAllForRestaurant lists menu items with filtering and pagination
	FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]MenuItem, error)

	// CountForRestaurant counts menu items matching the filter
	CountForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) (int64, error)

	// FindAvailable returns every available item of a restaurant
	FindAvailable(ctx context.Context, restaurantID uuid.UUID) ([]MenuItem, error)

	// Categories returns the distinct categories in use, sorted by name
	Categories(ctx context.Context, restaurantID uuid.UUID) ([]string, error)

	// ExistsByName checks whether a name is taken within a restaurant, ignoring case
	ExistsByName(ctx context.Context, restaurantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a menu item
	Save(ctx context.Context, item *MenuItem) error

	// SaveBatch creates or updates several items in one transaction
	SaveBatch(ctx context.Context, items []*MenuItem) error

	// DeleteForRestaurant deletes a menu item within a restaurant
	DeleteForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) error
}
