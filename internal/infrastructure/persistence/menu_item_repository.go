package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/menu"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/qrdine/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMenuItemRepository implements MenuItemRepository using GORM.
// Name lookups compare LOWER(name) so uniqueness is case-insensitive.
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindByIDForRestaurant finds a menu item by ID within a restaurant
func (r *GormMenuItemRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*menu.MenuItem, error) {
	var model models.MenuItemModel
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

// FindByIDsForRestaurant finds multiple menu items by their IDs
func (r *GormMenuItemRepository) FindByIDsForRestaurant(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]menu.MenuItem, error) {
	if len(ids) == 0 {
		return []menu.MenuItem{}, nil
	}

	var list []models.MenuItemModel
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id IN ?", restaurantID, ids).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toMenuItems(list), nil
}

// FindByNamesForRestaurant finds menu items by name, ignoring case
func (r *GormMenuItemRepository) FindByNamesForRestaurant(ctx context.Context, restaurantID uuid.UUID, names []string) ([]menu.MenuItem, error) {
	if len(names) == 0 {
		return []menu.MenuItem{}, nil
	}

	lowerNames := make([]string, len(names))
	for i, name := range names {
		lowerNames[i] = strings.ToLower(strings.TrimSpace(name))
	}

	var list []models.MenuItemModel
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND LOWER(name) IN ?", restaurantID, lowerNames).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toMenuItems(list), nil
}

// FindAllForRestaurant lists menu items with filtering and pagination
func (r *GormMenuItemRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]menu.MenuItem, error) {
	var list []models.MenuItemModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.MenuItemModel{}).Where("restaurant_id = ?", restaurantID),
		filter,
	)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return toMenuItems(list), nil
}

// CountForRestaurant counts menu items matching the filter
func (r *GormMenuItemRepository) CountForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.MenuItemModel{}).Where("restaurant_id = ?", restaurantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAvailable returns every available item of a restaurant
func (r *GormMenuItemRepository) FindAvailable(ctx context.Context, restaurantID uuid.UUID) ([]menu.MenuItem, error) {
	var list []models.MenuItemModel
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("category ASC").Order("sort_order ASC").Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toMenuItems(list), nil
}

// Categories returns the distinct categories in use, sorted by name
func (r *GormMenuItemRepository) Categories(ctx context.Context, restaurantID uuid.UUID) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.MenuItemModel{}).
		Where("restaurant_id = ?", restaurantID).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ExistsByName checks whether a name is taken within a restaurant, ignoring case
func (r *GormMenuItemRepository) ExistsByName(ctx context.Context, restaurantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.MenuItemModel{}).
		Where("restaurant_id = ? AND LOWER(name) = ?", restaurantID, strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a menu item
func (r *GormMenuItemRepository) Save(ctx context.Context, item *menu.MenuItem) error {
	return saveError(r.db.WithContext(ctx).Save(models.MenuItemModelFromDomain(item)).Error)
}

// SaveBatch creates or updates multiple menu items in one transaction
func (r *GormMenuItemRepository) SaveBatch(ctx context.Context, items []*menu.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	return saveError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := tx.Save(models.MenuItemModelFromDomain(item)).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// DeleteForRestaurant deletes a menu item within a restaurant
func (r *GormMenuItemRepository) DeleteForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MenuItemModel{}, "restaurant_id = ? AND id = ?", restaurantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormMenuItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return menuItemSort.apply(query, filter)
}

func (r *GormMenuItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "is_available":
			query = query.Where("is_available = ?", value)
		}
	}
	return query
}

func toMenuItems(list []models.MenuItemModel) []menu.MenuItem {
	items := make([]menu.MenuItem, len(list))
	for i := range list {
		items[i] = *list[i].ToDomain()
	}
	return items
}

// Ensure GormMenuItemRepository implements MenuItemRepository
var _ menu.MenuItemRepository = (*GormMenuItemRepository)(nil)
