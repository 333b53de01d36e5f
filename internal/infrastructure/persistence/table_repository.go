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

// GormTableRepository implements TableRepository using GORM
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a new GormTableRepository
func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// FindByIDForRestaurant finds a table by ID within a restaurant
func (r *GormTableRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*restaurant.Table, error) {
	var model models.TableModel
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByToken finds a table by its QR token
func (r *GormTableRepository) FindByToken(ctx context.Context, token string) (*restaurant.Table, error) {
	var model models.TableModel
	if err := r.db.WithContext(ctx).
		Where("qr_token = ?", strings.ToLower(strings.TrimSpace(token))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForRestaurant lists a restaurant's tables
func (r *GormTableRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]restaurant.Table, error) {
	var list []models.TableModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.TableModel{}).Where("restaurant_id = ?", restaurantID),
		filter,
	)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	tables := make([]restaurant.Table, len(list))
	for i := range list {
		tables[i] = *list[i].ToDomain()
	}
	return tables, nil
}

// CountForRestaurant counts a restaurant's tables
func (r *GormTableRepository) CountForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.TableModel{}).Where("restaurant_id = ?", restaurantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks whether a table number is taken within a restaurant
func (r *GormTableRepository) ExistsByNumber(ctx context.Context, restaurantID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TableModel{}).
		Where("restaurant_id = ? AND number = ?", restaurantID, number)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a table
func (r *GormTableRepository) Save(ctx context.Context, t *restaurant.Table) error {
	return saveError(r.db.WithContext(ctx).Save(models.TableModelFromDomain(t)).Error)
}

// DeleteForRestaurant deletes a table within a restaurant
func (r *GormTableRepository) DeleteForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TableModel{}, "restaurant_id = ? AND id = ?", restaurantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormTableRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return tableSort.apply(query, filter)
}

func (r *GormTableRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(number) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

// Ensure GormTableRepository implements TableRepository
var _ restaurant.TableRepository = (*GormTableRepository)(nil)
