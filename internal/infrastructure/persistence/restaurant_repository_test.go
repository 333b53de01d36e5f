package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/restaurant"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRestaurant(t *testing.T, repo *GormRestaurantRepository, name, slug string) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.NewRestaurant(name, slug)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), r))
	return r
}

func TestGormRestaurantRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRestaurantRepository(db)
	ctx := context.Background()

	r, err := restaurant.NewRestaurant("Trattoria", "trattoria")
	require.NoError(t, err)
	require.NoError(t, r.SetTimezone("Europe/Rome"))
	require.NoError(t, r.SetCurrency("eur"))
	require.NoError(t, repo.Save(ctx, r))

	t.Run("finds saved restaurant", func(t *testing.T) {
		found, err := repo.FindByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, "Trattoria", found.Name)
		assert.Equal(t, "Europe/Rome", found.Timezone)
		assert.Equal(t, "EUR", found.Currency)
		assert.True(t, found.IsActive)
	})

	t.Run("updates existing restaurant", func(t *testing.T) {
		r.Deactivate()
		require.NoError(t, repo.Save(ctx, r))

		found, err := repo.FindByID(ctx, r.ID)
		require.NoError(t, err)
		assert.False(t, found.IsActive)
	})

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormRestaurantRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRestaurantRepository(db)
	ctx := context.Background()

	createTestRestaurant(t, repo, "Bistro", "bistro")
	createTestRestaurant(t, repo, "Americano", "americano")
	closed := createTestRestaurant(t, repo, "Closed Diner", "closed-diner")
	closed.Deactivate()
	require.NoError(t, repo.Save(ctx, closed))

	t.Run("sorts by name", func(t *testing.T) {
		list, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10, OrderBy: "name", OrderDir: "asc"})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Americano", list[0].Name)
		assert.Equal(t, "Closed Diner", list[2].Name)
	})

	t.Run("filters by active flag", func(t *testing.T) {
		filter := shared.Filter{Page: 1, PageSize: 10, Filters: map[string]interface{}{"is_active": true}}
		list, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("searches name case-insensitively", func(t *testing.T) {
		list, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10, Search: "BIST"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "bistro", list[0].Slug)
	})

	t.Run("ignores unknown sort field", func(t *testing.T) {
		list, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10, OrderBy: "name; DROP TABLE restaurants"})
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})
}

func TestGormRestaurantRepository_ExistsBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRestaurantRepository(db)
	createTestRestaurant(t, repo, "Bistro", "bistro")

	exists, err := repo.ExistsBySlug(context.Background(), "BISTRO")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug(context.Background(), "other")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormTableRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTableRepository(db)
	ctx := context.Background()
	restaurantID := uuid.New()
	otherRestaurantID := uuid.New()

	t1, err := restaurant.NewTable(restaurantID, "T1", 4)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, t1))
	t2, err := restaurant.NewTable(restaurantID, "T2", 2)
	require.NoError(t, err)
	t2.Deactivate()
	require.NoError(t, repo.Save(ctx, t2))
	foreign, err := restaurant.NewTable(otherRestaurantID, "T1", 6)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, foreign))

	t.Run("finds table within its restaurant only", func(t *testing.T) {
		found, err := repo.FindByIDForRestaurant(ctx, restaurantID, t1.ID)
		require.NoError(t, err)
		assert.Equal(t, "T1", found.Number)
		assert.Equal(t, 4, found.Seats)

		_, err = repo.FindByIDForRestaurant(ctx, otherRestaurantID, t1.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("finds table by token ignoring case and spaces", func(t *testing.T) {
		found, err := repo.FindByToken(ctx, "  "+t1.QRToken+" ")
		require.NoError(t, err)
		assert.Equal(t, t1.ID, found.ID)

		_, err = repo.FindByToken(ctx, "unknown")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("keeps inactive flag", func(t *testing.T) {
		found, err := repo.FindByIDForRestaurant(ctx, restaurantID, t2.ID)
		require.NoError(t, err)
		assert.False(t, found.IsActive)
	})

	t.Run("lists and counts restaurant tables", func(t *testing.T) {
		filter := shared.Filter{Page: 1, PageSize: 10, OrderBy: "number", OrderDir: "asc"}
		list, err := repo.FindAllForRestaurant(ctx, restaurantID, filter)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "T1", list[0].Number)

		count, err := repo.CountForRestaurant(ctx, restaurantID, shared.Filter{Filters: map[string]interface{}{"is_active": false}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("checks number uniqueness per restaurant", func(t *testing.T) {
		exists, err := repo.ExistsByNumber(ctx, restaurantID, "T1", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByNumber(ctx, restaurantID, "T1", &t1.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("rejects a second table with the same number", func(t *testing.T) {
		dup, err := restaurant.NewTable(restaurantID, "T1", 2)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("deletes table within restaurant", func(t *testing.T) {
		err := repo.DeleteForRestaurant(ctx, otherRestaurantID, t2.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		require.NoError(t, repo.DeleteForRestaurant(ctx, restaurantID, t2.ID))
		_, err = repo.FindByIDForRestaurant(ctx, restaurantID, t2.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
