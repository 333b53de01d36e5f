package kitchen

import (
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/ordering"
)

// BoardFilter narrows the kitchen display
type BoardFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED PREPARING READY"`
	Priority string `form:"priority" binding:"omitempty,oneof=NORMAL HIGH URGENT"`
}

// AdvanceItemRequest identifies the order owning the item being advanced
type AdvanceItemRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

// KitchenItem is an active order line on the kitchen display
type KitchenItem struct {
	ID         uuid.UUID `json:"id"`
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	Notes      string    `json:"notes,omitempty"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// KitchenBatch groups the items added to an order at the same time
type KitchenBatch struct {
	Number    int           `json:"number"`
	IsReopen  bool          `json:"is_reopen"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []KitchenItem `json:"items"`
}

// KitchenOrder is one card of the kitchen display
type KitchenOrder struct {
	ID           uuid.UUID      `json:"id"`
	OrderNumber  string         `json:"order_number"`
	TableID      uuid.UUID      `json:"table_id"`
	TableNumber  string         `json:"table_number"`
	Status       string         `json:"status"`
	CustomerNote string         `json:"customer_note,omitempty"`
	AgeMinutes   int            `json:"age_minutes"`
	Priority     string         `json:"priority"`
	IsComplete   bool           `json:"is_complete"`
	CurrentBatch int            `json:"current_batch"`
	CreatedAt    time.Time      `json:"created_at"`
	Batches      []KitchenBatch `json:"batches"`
}

// BoardResponse is the polled kitchen display
type BoardResponse struct {
	Orders         []KitchenOrder `json:"orders"`
	Count          int            `json:"count"`
	PollIntervalMs int64          `json:"poll_interval_ms"`
	ServerTime     time.Time      `json:"server_time"`
}

// SummaryResponse counts the active work of a restaurant
type SummaryResponse struct {
	ActiveOrders int            `json:"active_orders"`
	ActiveItems  int            `json:"active_items"`
	ByStatus     map[string]int `json:"by_status"`
	ByPriority   map[string]int `json:"by_priority"`
	ServerTime   time.Time      `json:"server_time"`
}

// ToKitchenOrder builds the kitchen card of an order. Only active items are shown.
func ToKitchenOrder(o *ordering.Order, now time.Time, thresholds ordering.PriorityThresholds) KitchenOrder {
	batches := o.Batches(true)
	card := KitchenOrder{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		TableID:      o.TableID,
		TableNumber:  o.TableNumber,
		Status:       o.Status.String(),
		CustomerNote: o.CustomerNote,
		AgeMinutes:   int(o.Age(now) / time.Minute),
		Priority:     string(o.Priority(now, thresholds)),
		IsComplete:   o.IsComplete(),
		CurrentBatch: o.CurrentBatch,
		CreatedAt:    o.CreatedAt,
		Batches:      make([]KitchenBatch, len(batches)),
	}
	for i, b := range batches {
		items := make([]KitchenItem, len(b.Items))
		for j, item := range b.Items {
			items[j] = KitchenItem{
				ID:         item.ID,
				MenuItemID: item.MenuItemID,
				Name:       item.Name,
				Quantity:   item.Quantity,
				Notes:      item.Notes,
				Status:     item.Status.String(),
				UpdatedAt:  item.UpdatedAt,
			}
		}
		card.Batches[i] = KitchenBatch{
			Number:    b.Number,
			IsReopen:  b.Number > 1,
			CreatedAt: b.CreatedAt,
			Items:     items,
		}
	}
	return card
}
