package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	RestaurantAggregateModel
	OrderNumber  string               `gorm:"type:varchar(50);not null;index"`
	TableID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	TableNumber  string               `gorm:"type:varchar(20);not null"`
	CustomerNote string               `gorm:"type:text"`
	Items        []OrderItemModel     `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount  decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	Status       ordering.OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CurrentBatch int                  `gorm:"not null;default:1"`
	ConfirmedAt  *time.Time
	PreparingAt  *time.Time
	ReadyAt      *time.Time
	DeliveredAt  *time.Time
	ReopenedAt   *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
// Items are ordered by batch, then creation time.
func (m *OrderModel) ToDomain() *ordering.Order {
	o := &ordering.Order{
		OrderNumber:  m.OrderNumber,
		TableID:      m.TableID,
		TableNumber:  m.TableNumber,
		CustomerNote: m.CustomerNote,
		TotalAmount:  m.TotalAmount,
		Status:       m.Status,
		CurrentBatch: m.CurrentBatch,
		ConfirmedAt:  m.ConfirmedAt,
		PreparingAt:  m.PreparingAt,
		ReadyAt:      m.ReadyAt,
		DeliveredAt:  m.DeliveredAt,
		ReopenedAt:   m.ReopenedAt,
		Items:        make([]ordering.OrderItem, len(m.Items)),
	}
	m.PopulateRestaurantAggregateRoot(&o.RestaurantAggregateRoot)
	for i := range m.Items {
		o.Items[i] = *m.Items[i].ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *ordering.Order) {
	m.FromDomainRestaurantAggregateRoot(o.RestaurantAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.TableID = o.TableID
	m.TableNumber = o.TableNumber
	m.CustomerNote = o.CustomerNote
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.CurrentBatch = o.CurrentBatch
	m.ConfirmedAt = utcPtr(o.ConfirmedAt)
	m.PreparingAt = utcPtr(o.PreparingAt)
	m.ReadyAt = utcPtr(o.ReadyAt)
	m.DeliveredAt = utcPtr(o.DeliveredAt)
	m.ReopenedAt = utcPtr(o.ReopenedAt)
	m.Items = make([]OrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i].FromDomain(&o.Items[i])
		m.Items[i].OrderID = o.ID
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line
type OrderItemModel struct {
	BaseModel
	OrderID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name       string              `gorm:"type:varchar(200);not null"`
	UnitPrice  decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Quantity   int                 `gorm:"not null"`
	Amount     decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Notes      string              `gorm:"type:varchar(500)"`
	Status     ordering.ItemStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Batch      int                 `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() *ordering.OrderItem {
	return &ordering.OrderItem{
		ID:         m.ID,
		OrderID:    m.OrderID,
		MenuItemID: m.MenuItemID,
		Name:       m.Name,
		UnitPrice:  m.UnitPrice,
		Quantity:   m.Quantity,
		Amount:     m.Amount,
		Notes:      m.Notes,
		Status:     m.Status,
		Batch:      m.Batch,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderItem
func (m *OrderItemModel) FromDomain(item *ordering.OrderItem) {
	m.ID = item.ID
	m.CreatedAt = item.CreatedAt.UTC()
	m.UpdatedAt = item.UpdatedAt.UTC()
	m.OrderID = item.OrderID
	m.MenuItemID = item.MenuItemID
	m.Name = item.Name
	m.UnitPrice = item.UnitPrice
	m.Quantity = item.Quantity
	m.Amount = item.Amount
	m.Notes = item.Notes
	m.Status = item.Status
	m.Batch = item.Batch
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
