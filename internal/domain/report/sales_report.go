package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CountedStatuses are the order statuses that count as sales.
// Unconfirmed orders are left out of every sales figure.
var CountedStatuses = []string{"CONFIRMED", "PREPARING", "READY", "DELIVERED"}

// Filter defines the period and restaurant of a report query.
// From is inclusive, To is exclusive; both are instants.
type Filter struct {
	RestaurantID uuid.UUID
	From         time.Time
	To           time.Time
	TopN         int
}

// OrderFact is one counted order, the raw input of the time based reports
type OrderFact struct {
	OrderID      uuid.UUID
	TableID      uuid.UUID
	TableNumber  string
	CreatedAt    time.Time
	TotalAmount  decimal.Decimal
	ItemQuantity int64
	Reopened     bool
}

// ItemSales is the aggregate of order lines for one menu item
type ItemSales struct {
	MenuItemID uuid.UUID
	Name       string
	Category   string
	Quantity   int64
	Revenue    decimal.Decimal
	OrderCount int64
}

// StatusCount is the number of orders in one status
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Summary provides aggregated sales statistics for a period
type Summary struct {
	PeriodStart       string          `json:"period_start"`
	PeriodEnd         string          `json:"period_end"`
	OrderCount        int64           `json:"order_count"`
	ItemQuantity      int64           `json:"item_quantity"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ReopenedOrders    int64           `json:"reopened_orders"`
}

// DailyPoint represents one local day of the trend
type DailyPoint struct {
	Date      string          `json:"date"`
	Orders    int64           `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
	ItemsSold int64           `json:"items_sold"`
}

// HourlyPoint represents one local hour of the day
type HourlyPoint struct {
	Hour    int             `json:"hour"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ItemRanking represents a menu item in the best seller list
type ItemRanking struct {
	Rank       int             `json:"rank"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Quantity   int64           `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int64           `json:"order_count"`
}

// CategoryStat represents sales of one menu category
type CategoryStat struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Share    decimal.Decimal `json:"share"` // Percentage of revenue
}

// TableStat represents sales of one table
type TableStat struct {
	TableID     uuid.UUID       `json:"table_id"`
	TableNumber string          `json:"table_number"`
	Orders      int64           `json:"orders"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// Repository defines the queries backing the analytics reports
type Repository interface {
	// OrderFacts returns every counted order created in the period
	OrderFacts(ctx context.Context, filter Filter) ([]OrderFact, error)

	// ItemSales aggregates the order lines of counted orders per menu item
	ItemSales(ctx context.Context, filter Filter) ([]ItemSales, error)

	// StatusCounts counts orders of every status created in the period
	StatusCounts(ctx context.Context, filter Filter) ([]StatusCount, error)
}
