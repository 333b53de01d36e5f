package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one requested line of an order
type OrderLineRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1,max=99"`
	Notes      string    `json:"notes" binding:"max=500"`
}

// PlaceOrderRequest places a new order for a table.
// Customers identify the table by its QR token, staff by table id.
type PlaceOrderRequest struct {
	TableToken   string             `json:"table_token" binding:"omitempty,max=64"`
	TableID      *uuid.UUID         `json:"table_id"`
	CustomerNote string             `json:"customer_note" binding:"max=1000"`
	Items        []OrderLineRequest `json:"items" binding:"required,min=1,max=50,dive"`
}

// UpdateOrderRequest backs PUT /orders/:id. Status moves the order one step,
// items reopen it with a new batch.
type UpdateOrderRequest struct {
	Status       *string            `json:"status" binding:"omitempty,oneof=CONFIRMED PREPARING READY DELIVERED"`
	CustomerNote *string            `json:"customer_note" binding:"omitempty,max=1000"`
	Items        []OrderLineRequest `json:"items" binding:"omitempty,max=50,dive"`
}

// ReopenOrderRequest appends a batch of items to an order
type ReopenOrderRequest struct {
	Items []OrderLineRequest `json:"items" binding:"required,min=1,max=50,dive"`
}

// OrderListFilter represents filter options for listing orders.
// Dates are YYYY-MM-DD in the restaurant's timezone, both inclusive.
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED PREPARING READY DELIVERED"`
	TableID  string `form:"table_id" binding:"omitempty,uuid"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes,omitempty"`
	Status     string          `json:"status"`
	Batch      int             `json:"batch"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	RestaurantID  uuid.UUID           `json:"restaurant_id"`
	OrderNumber   string              `json:"order_number"`
	TableID       uuid.UUID           `json:"table_id"`
	TableNumber   string              `json:"table_number"`
	CustomerNote  string              `json:"customer_note,omitempty"`
	Status        string              `json:"status"`
	CurrentBatch  int                 `json:"current_batch"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	ItemCount     int                 `json:"item_count"`
	TotalQuantity int                 `json:"total_quantity"`
	IsComplete    bool                `json:"is_complete"`
	Items         []OrderItemResponse `json:"items"`
	ConfirmedAt   *time.Time          `json:"confirmed_at,omitempty"`
	PreparingAt   *time.Time          `json:"preparing_at,omitempty"`
	ReadyAt       *time.Time          `json:"ready_at,omitempty"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
	ReopenedAt    *time.Time          `json:"reopened_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Version       int                 `json:"version"`
}

// OrderListResponse is the compact order used in lists
type OrderListResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	TableID      uuid.UUID       `json:"table_id"`
	TableNumber  string          `json:"table_number"`
	Status       string          `json:"status"`
	CurrentBatch int             `json:"current_batch"`
	ItemCount    int             `json:"item_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToOrderItemResponse converts a domain order item to a response
func ToOrderItemResponse(item *ordering.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:         item.ID,
		MenuItemID: item.MenuItemID,
		Name:       item.Name,
		UnitPrice:  item.UnitPrice,
		Quantity:   item.Quantity,
		Amount:     item.Amount,
		Notes:      item.Notes,
		Status:     item.Status.String(),
		Batch:      item.Batch,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

// ToOrderItemResponses converts a slice of order items
func ToOrderItemResponses(items []ordering.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, len(items))
	for i := range items {
		out[i] = ToOrderItemResponse(&items[i])
	}
	return out
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *ordering.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		RestaurantID:  o.RestaurantID,
		OrderNumber:   o.OrderNumber,
		TableID:       o.TableID,
		TableNumber:   o.TableNumber,
		CustomerNote:  o.CustomerNote,
		Status:        o.Status.String(),
		CurrentBatch:  o.CurrentBatch,
		TotalAmount:   o.TotalAmount,
		ItemCount:     o.ItemCount(),
		TotalQuantity: o.TotalQuantity(),
		IsComplete:    o.IsComplete(),
		Items:         ToOrderItemResponses(o.Items),
		ConfirmedAt:   o.ConfirmedAt,
		PreparingAt:   o.PreparingAt,
		ReadyAt:       o.ReadyAt,
		DeliveredAt:   o.DeliveredAt,
		ReopenedAt:    o.ReopenedAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Version:       o.Version,
	}
}

// ToOrderListResponses converts orders to their compact list form
func ToOrderListResponses(orders []ordering.Order) []OrderListResponse {
	out := make([]OrderListResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		out[i] = OrderListResponse{
			ID:           o.ID,
			OrderNumber:  o.OrderNumber,
			TableID:      o.TableID,
			TableNumber:  o.TableNumber,
			Status:       o.Status.String(),
			CurrentBatch: o.CurrentBatch,
			ItemCount:    o.ItemCount(),
			TotalAmount:  o.TotalAmount,
			CreatedAt:    o.CreatedAt,
			UpdatedAt:    o.UpdatedAt,
		}
	}
	return out
}
