package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	MaxItemQuantity = 99
	maxNotesLength  = 500
)

// OrderItem is one line of an order. Name and price are snapshots taken when the
// line was added, so later menu edits do not change placed orders.
type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	MenuItemID uuid.UUID
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int
	Amount     decimal.Decimal
	Notes      string
	Status     ItemStatus
	Batch      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LineInput describes a line to add to an order
type LineInput struct {
	MenuItemID uuid.UUID
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int
	Notes      string
}

// NewOrderItem creates a pending order line for the given batch
func NewOrderItem(orderID uuid.UUID, batch int, in LineInput) (*OrderItem, error) {
	if in.MenuItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MENU_ITEM", "Menu item ID cannot be empty")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_MENU_ITEM", "Menu item name cannot be empty")
	}
	if in.Quantity < 1 || in.Quantity > MaxItemQuantity {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be between 1 and 99")
	}
	if in.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	notes := strings.TrimSpace(in.Notes)
	if len(notes) > maxNotesLength {
		return nil, shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 500 characters")
	}
	if batch < 1 {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch must be positive")
	}

	now := time.Now()
	return &OrderItem{
		ID:         uuid.New(),
		OrderID:    orderID,
		MenuItemID: in.MenuItemID,
		Name:       name,
		UnitPrice:  in.UnitPrice,
		Quantity:   in.Quantity,
		Amount:     in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Notes:      notes,
		Status:     ItemStatusPending,
		Batch:      batch,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// advance moves the item one step forward
func (i *OrderItem) advance() (ItemStatus, error) {
	next, ok := i.Status.Next()
	if !ok {
		return "", shared.NewDomainErrorf("INVALID_STATE", "Item %s is already %s", i.Name, i.Status)
	}
	i.Status = next
	i.UpdatedAt = time.Now()
	return next, nil
}

// raiseTo moves the item forward to target if it is behind; never moves back
func (i *OrderItem) raiseTo(target ItemStatus) bool {
	if i.Status.AtLeast(target) {
		return false
	}
	i.Status = target
	i.UpdatedAt = time.Now()
	return true
}
