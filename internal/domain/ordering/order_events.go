package ordering

import (
	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeOrder is the aggregate type for orders
const AggregateTypeOrder = "Order"

// Event type constants for orders
const (
	EventTypeOrderPlaced            = "OrderPlaced"
	EventTypeOrderStatusChanged     = "OrderStatusChanged"
	EventTypeOrderItemStatusChanged = "OrderItemStatusChanged"
	EventTypeOrderReopened          = "OrderReopened"
)

// OrderEventTypes lists every event the order aggregate emits
func OrderEventTypes() []string {
	return []string{
		EventTypeOrderPlaced,
		EventTypeOrderStatusChanged,
		EventTypeOrderItemStatusChanged,
		EventTypeOrderReopened,
	}
}

// OrderPlacedEvent is raised when a customer or waiter places a new order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TableID     uuid.UUID       `json:"table_id"`
	TableNumber string          `json:"table_number"`
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID, o.RestaurantID),
		OrderNumber:     o.OrderNumber,
		TableID:         o.TableID,
		TableNumber:     o.TableNumber,
		ItemCount:       len(o.Items),
		TotalAmount:     o.TotalAmount,
	}
}

// OrderStatusChangedEvent is raised on every order status move
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	FromStatus  OrderStatus `json:"from_status"`
	ToStatus    OrderStatus `json:"to_status"`
	// Age in seconds since the order was placed
	AgeSeconds int64 `json:"age_seconds"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from, to OrderStatus) *OrderStatusChangedEvent {
	e := &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID, o.RestaurantID),
		OrderNumber:     o.OrderNumber,
		FromStatus:      from,
		ToStatus:        to,
	}
	e.AgeSeconds = int64(e.Timestamp.Sub(o.CreatedAt).Seconds())
	return e
}

// OrderItemStatusChangedEvent is raised when the kitchen moves a single line
type OrderItemStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string     `json:"order_number"`
	ItemID      uuid.UUID  `json:"item_id"`
	ItemName    string     `json:"item_name"`
	Batch       int        `json:"batch"`
	FromStatus  ItemStatus `json:"from_status"`
	ToStatus    ItemStatus `json:"to_status"`
}

// NewOrderItemStatusChangedEvent creates a new OrderItemStatusChangedEvent
func NewOrderItemStatusChangedEvent(o *Order, item *OrderItem, from ItemStatus) *OrderItemStatusChangedEvent {
	return &OrderItemStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderItemStatusChanged, AggregateTypeOrder, o.ID, o.RestaurantID),
		OrderNumber:     o.OrderNumber,
		ItemID:          item.ID,
		ItemName:        item.Name,
		Batch:           item.Batch,
		FromStatus:      from,
		ToStatus:        item.Status,
	}
}

// OrderReopenedEvent is raised when a new batch is appended to an existing order
type OrderReopenedEvent struct {
	shared.BaseDomainEvent
	OrderNumber    string          `json:"order_number"`
	Batch          int             `json:"batch"`
	ItemCount      int             `json:"item_count"`
	BatchAmount    decimal.Decimal `json:"batch_amount"`
	PreviousStatus OrderStatus     `json:"previous_status"`
}

// NewOrderReopenedEvent creates a new OrderReopenedEvent
func NewOrderReopenedEvent(o *Order, batch, itemCount int, amount decimal.Decimal, previous OrderStatus) *OrderReopenedEvent {
	return &OrderReopenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReopened, AggregateTypeOrder, o.ID, o.RestaurantID),
		OrderNumber:     o.OrderNumber,
		Batch:           batch,
		ItemCount:       itemCount,
		BatchAmount:     amount,
		PreviousStatus:  previous,
	}
}
