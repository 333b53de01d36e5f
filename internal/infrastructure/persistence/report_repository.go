package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/report"
	"github.com/qrdine/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UncategorizedLabel groups order lines whose menu item no longer exists
const UncategorizedLabel = "Uncategorized"

// GormReportRepository implements report.Repository using GORM.
// Only the raw rows are queried here; time bucketing happens in the restaurant's
// timezone in the domain layer.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// OrderFacts returns every counted order created in the period, oldest first
func (r *GormReportRepository) OrderFacts(ctx context.Context, filter report.Filter) ([]report.OrderFact, error) {
	var orders []models.OrderModel
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("id, table_id, table_number, created_at, total_amount, reopened_at").
		Where("restaurant_id = ?", filter.RestaurantID).
		Where("created_at >= ? AND created_at < ?", filter.From.UTC(), filter.To.UTC()).
		Where("status IN ?", report.CountedStatuses).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []report.OrderFact{}, nil
	}

	type quantityResult struct {
		OrderID  uuid.UUID
		Quantity int64
	}
	var quantities []quantityResult
	if err := r.countedLines(ctx, filter).
		Select("oi.order_id AS order_id, COALESCE(SUM(oi.quantity), 0) AS quantity").
		Group("oi.order_id").
		Scan(&quantities).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[uuid.UUID]int64, len(quantities))
	for _, q := range quantities {
		byOrder[q.OrderID] = q.Quantity
	}

	facts := make([]report.OrderFact, len(orders))
	for i, o := range orders {
		facts[i] = report.OrderFact{
			OrderID:      o.ID,
			TableID:      o.TableID,
			TableNumber:  o.TableNumber,
			CreatedAt:    o.CreatedAt,
			TotalAmount:  o.TotalAmount,
			ItemQuantity: byOrder[o.ID],
			Reopened:     o.ReopenedAt != nil,
		}
	}
	return facts, nil
}

// ItemSales aggregates the lines of counted orders per menu item.
// Name is the snapshot on the order line; the category comes from the current menu.
func (r *GormReportRepository) ItemSales(ctx context.Context, filter report.Filter) ([]report.ItemSales, error) {
	type salesResult struct {
		MenuItemID uuid.UUID
		Name       string
		Category   string
		Quantity   int64
		Revenue    decimal.Decimal
		OrderCount int64
	}

	var results []salesResult
	if err := r.countedLines(ctx, filter).
		Select(`
			oi.menu_item_id AS menu_item_id,
			MAX(oi.name) AS name,
			COALESCE(MAX(mi.category), ?) AS category,
			COALESCE(SUM(oi.quantity), 0) AS quantity,
			COALESCE(SUM(oi.amount), 0) AS revenue,
			COUNT(DISTINCT oi.order_id) AS order_count
		`, UncategorizedLabel).
		Joins("LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id").
		Group("oi.menu_item_id").
		Scan(&results).Error; err != nil {
		return nil, err
	}

	sales := make([]report.ItemSales, len(results))
	for i, res := range results {
		sales[i] = report.ItemSales{
			MenuItemID: res.MenuItemID,
			Name:       res.Name,
			Category:   res.Category,
			Quantity:   res.Quantity,
			Revenue:    res.Revenue,
			OrderCount: res.OrderCount,
		}
	}
	return sales, nil
}

// StatusCounts counts orders of every status created in the period
func (r *GormReportRepository) StatusCounts(ctx context.Context, filter report.Filter) ([]report.StatusCount, error) {
	var counts []report.StatusCount
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Where("restaurant_id = ?", filter.RestaurantID).
		Where("created_at >= ? AND created_at < ?", filter.From.UTC(), filter.To.UTC()).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// countedLines selects the order lines of counted orders in the period
func (r *GormReportRepository) countedLines(ctx context.Context, filter report.Filter) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("order_items AS oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.restaurant_id = ?", filter.RestaurantID).
		Where("o.created_at >= ? AND o.created_at < ?", filter.From.UTC(), filter.To.UTC()).
		Where("o.status IN ?", report.CountedStatuses)
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
