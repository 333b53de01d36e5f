package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/qrdine/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
// Saves are last-write-wins; items are upserted and never deleted.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByIDForRestaurant finds an order with its items within a restaurant
func (r *GormOrderRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.withItems(r.db.WithContext(ctx)).
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForRestaurant lists orders of a restaurant with filtering and pagination
func (r *GormOrderRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	var list []models.OrderModel
	query := r.applyFilter(
		r.withItems(r.db.WithContext(ctx)).Model(&models.OrderModel{}).Where("restaurant_id = ?", restaurantID),
		filter,
	)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return toOrders(list), nil
}

// CountForRestaurant counts orders matching the filter
func (r *GormOrderRepository) CountForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("restaurant_id = ?", restaurantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindActiveForKitchen returns undelivered orders, oldest first
func (r *GormOrderRepository) FindActiveForKitchen(ctx context.Context, restaurantID uuid.UUID) ([]ordering.Order, error) {
	var list []models.OrderModel
	if err := r.withItems(r.db.WithContext(ctx)).
		Where("restaurant_id = ? AND status <> ?", restaurantID, ordering.OrderStatusDelivered).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toOrders(list), nil
}

// FindActiveByTable returns the newest undelivered order of a table
func (r *GormOrderRepository) FindActiveByTable(ctx context.Context, restaurantID, tableID uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.withItems(r.db.WithContext(ctx)).
		Where("restaurant_id = ? AND table_id = ? AND status <> ?", restaurantID, tableID, ordering.OrderStatusDelivered).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsUnfinishedByTable checks whether a table has an undelivered order
func (r *GormOrderRepository) ExistsUnfinishedByTable(ctx context.Context, restaurantID, tableID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("restaurant_id = ? AND table_id = ? AND status <> ?", restaurantID, tableID, ordering.OrderStatusDelivered).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByMenuItem checks whether any order line of the restaurant references the menu item
func (r *GormOrderRepository) ExistsByMenuItem(ctx context.Context, restaurantID, menuItemID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.restaurant_id = ? AND oi.menu_item_id = ?", restaurantID, menuItemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateOrderNumber returns the next order number of the restaurant's local day.
// Format: YYYYMMDD-NNN (e.g., 20240310-007); the sequence restarts every day.
// The number is not reserved: concurrent callers can get the same one, and the
// unique index on (restaurant_id, order_number) lets only the first Save through.
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context, restaurantID uuid.UUID, day time.Time) (string, error) {
	prefix := day.Format("20060102") + "-"

	var last models.OrderModel
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("order_number").
		Where("restaurant_id = ? AND order_number LIKE ?", restaurantID, prefix+"%").
		Order("LENGTH(order_number) DESC").
		Order("order_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	next := 1
	if err == nil {
		var n int
		if _, scanErr := fmt.Sscanf(strings.TrimPrefix(last.OrderNumber, prefix), "%d", &n); scanErr == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next), nil
}

// Save upserts the order row and every item row in one transaction.
// The version is bumped when the order already exists. Inserting a new order
// whose number another order already holds fails with ordering.ErrOrderNumberTaken.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.OrderModel{}).Where("id = ?", order.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			order.IncrementVersion()
		}

		model := models.OrderModelFromDomain(order)
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
			Create(model).Error; err != nil {
			if existing == 0 && isDuplicateKey(err) {
				return ordering.ErrOrderNumberTaken
			}
			return err
		}

		for i := range model.Items {
			if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
				Create(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// withItems preloads order items in batch order
func (r *GormOrderRepository) withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("batch ASC").Order("created_at ASC")
	})
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return orderSort.apply(query, filter)
}

// applyFilterWithoutPagination applies status, table and created_at range filters.
// from is inclusive, to is exclusive.
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("order_number LIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "table_id":
			query = query.Where("table_id = ?", value)
		case "from":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t.UTC())
			}
		case "to":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at < ?", t.UTC())
			}
		}
	}
	return query
}

func toOrders(list []models.OrderModel) []ordering.Order {
	orders := make([]ordering.Order, len(list))
	for i := range list {
		orders[i] = *list[i].ToDomain()
	}
	return orders
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
