package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/restaurant"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/qrdine/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRestaurantRepository implements RestaurantRepository using GORM
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GormRestaurantRepository
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// FindByID finds a restaurant by its ID
func (r *GormRestaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error) {
	var model models.RestaurantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all restaurants matching the filter
func (r *GormRestaurantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]restaurant.Restaurant, error) {
	var list []models.RestaurantModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RestaurantModel{}), filter)

	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	restaurants := make([]restaurant.Restaurant, len(list))
	for i := range list {
		restaurants[i] = *list[i].ToDomain()
	}
	return restaurants, nil
}

// Count counts restaurants matching the filter
func (r *GormRestaurantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.RestaurantModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySlug checks whether a slug is taken
func (r *GormRestaurantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RestaurantModel{}).
		Where("slug = ?", strings.ToLower(slug)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a restaurant
func (r *GormRestaurantRepository) Save(ctx context.Context, rest *restaurant.Restaurant) error {
	return saveError(r.db.WithContext(ctx).Save(models.RestaurantModelFromDomain(rest)).Error)
}

func (r *GormRestaurantRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return restaurantSort.apply(query, filter)
}

func (r *GormRestaurantRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR slug LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

// Ensure GormRestaurantRepository implements RestaurantRepository
var _ restaurant.RestaurantRepository = (*GormRestaurantRepository)(nil)
