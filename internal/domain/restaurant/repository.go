package restaurant

import (
	"context"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/shared"
)

// RestaurantRepository defines persistence operations for restaurants
type RestaurantRepository interface {
	// FindByID finds a restaurant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Restaurant, error)

	// FindAll lists restaurants
	FindAll(ctx context.Context, filter shared.Filter) ([]Restaurant, error)

	// Count counts restaurants matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySlug checks whether a slug is taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Save creates or updates a restaurant
	Save(ctx context.Context, r *Restaurant) error
}

// TableRepository defines persistence operations for tables
type TableRepository interface {
	// FindByIDForRestaurant finds a table by ID within a restaurant
	FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*Table, error)

	// FindByToken finds a table by its QR token
	FindByToken(ctx context.Context, token string) (*Table, error)

	// FindAllForRestaurant lists a restaurant's tables
	FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]Table, error)

	// CountForRestaurant counts a restaurant's tables
	CountForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNumber checks whether a table number is taken within a restaurant
	ExistsByNumber(ctx context.Context, restaurantID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a table
	Save(ctx context.Context, t *Table) error

	// DeleteForRestaurant deletes a table within a restaurant
	DeleteForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) error
}
