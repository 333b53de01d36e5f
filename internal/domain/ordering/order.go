package ordering

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const maxCustomerNoteLength = 1000

// Order is the aggregate root for a table order.
// Items are grouped in batches: batch 1 holds the lines placed with the order,
// every reopen appends a new batch to the same order.
type Order struct {
	shared.RestaurantAggregateRoot
	OrderNumber  string
	TableID      uuid.UUID
	TableNumber  string
	CustomerNote string
	Items        []OrderItem
	TotalAmount  decimal.Decimal
	Status       OrderStatus
	CurrentBatch int
	ConfirmedAt  *time.Time
	PreparingAt  *time.Time
	ReadyAt      *time.Time
	DeliveredAt  *time.Time
	ReopenedAt   *time.Time
}

// Batch is a read view of the items added to an order at the same time
type Batch struct {
	Number    int
	CreatedAt time.Time
	Items     []OrderItem
}

// NewOrder creates an empty pending order for a table
func NewOrder(restaurantID, tableID uuid.UUID, tableNumber, orderNumber string) (*Order, error) {
	if restaurantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESTAURANT", "Restaurant ID cannot be empty")
	}
	if tableID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TABLE", "Table ID cannot be empty")
	}
	if strings.TrimSpace(tableNumber) == "" {
		return nil, shared.NewDomainError("INVALID_TABLE", "Table number cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}

	return &Order{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		OrderNumber:             orderNumber,
		TableID:                 tableID,
		TableNumber:             tableNumber,
		Items:                   make([]OrderItem, 0),
		TotalAmount:             decimal.Zero,
		Status:                  OrderStatusPending,
		CurrentBatch:            1,
	}, nil
}

// AddItem adds a line to the first batch. Only allowed before the order is confirmed;
// later additions go through Reopen.
func (o *Order) AddItem(in LineInput) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a confirmed order, reopen it instead")
	}

	item, err := NewOrderItem(o.ID, o.CurrentBatch, in)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return item, nil
}

// Place validates the new order and records the OrderPlaced event
func (o *Order) Place() error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "An order needs at least one item")
	}
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return nil
}

// SetCustomerNote sets the free text note for the kitchen
func (o *Order) SetCustomerNote(note string) error {
	note = strings.TrimSpace(note)
	if len(note) > maxCustomerNoteLength {
		return shared.NewDomainError("INVALID_NOTES", "Customer note cannot exceed 1000 characters")
	}
	o.CustomerNote = note
	o.UpdatedAt = time.Now()
	return nil
}

// Advance moves the order to its next status
func (o *Order) Advance() error {
	next, ok := o.Status.Next()
	if !ok {
		return shared.NewDomainErrorf("INVALID_STATE", "Order %s is already %s", o.OrderNumber, o.Status)
	}
	return o.AdvanceTo(next)
}

// AdvanceTo moves the order to target, which must be the immediate successor of the
// current status. Items are pulled forward with the order:
// PREPARING starts pending items, READY finishes every item, DELIVERED serves them.
func (o *Order) AdvanceTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainErrorf("INVALID_STATUS", "Unknown order status %q", target)
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Order has no items")
	}

	o.transition(target, true)
	return nil
}

// AdvanceItem moves a single item one step forward, then lets the order follow
func (o *Order) AdvanceItem(itemID uuid.UUID) (*OrderItem, error) {
	if !o.Status.AtLeast(OrderStatusConfirmed) {
		return nil, shared.NewDomainError("INVALID_STATE", "Order must be confirmed before the kitchen can work on it")
	}

	item := o.findItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}

	from := item.Status
	if _, err := item.advance(); err != nil {
		return nil, err
	}
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderItemStatusChangedEvent(o, item, from))

	o.syncWithItems()
	return item, nil
}

// AdvanceBatch moves every item of the batch that sits at the batch's lowest
// status one step forward. Delivered items are ignored.
func (o *Order) AdvanceBatch(batch int) ([]OrderItem, error) {
	if !o.Status.AtLeast(OrderStatusConfirmed) {
		return nil, shared.NewDomainError("INVALID_STATE", "Order must be confirmed before the kitchen can work on it")
	}

	var (
		lowest ItemStatus
		found  bool
		active bool
	)
	for _, item := range o.Items {
		if item.Batch != batch {
			continue
		}
		found = true
		if !item.Status.IsActive() {
			continue
		}
		if !active || !item.Status.AtLeast(lowest) {
			lowest = item.Status
		}
		active = true
	}
	if !found {
		return nil, shared.NewDomainErrorf("BATCH_NOT_FOUND", "Batch %d not found", batch)
	}
	if !active {
		return nil, shared.NewDomainErrorf("INVALID_STATE", "Batch %d is already delivered", batch)
	}

	moved := make([]OrderItem, 0)
	for idx := range o.Items {
		item := &o.Items[idx]
		if item.Batch != batch || item.Status != lowest {
			continue
		}
		from := item.Status
		if _, err := item.advance(); err != nil {
			return nil, err
		}
		o.AddDomainEvent(NewOrderItemStatusChangedEvent(o, item, from))
		moved = append(moved, *item)
	}
	o.UpdatedAt = time.Now()

	o.syncWithItems()
	return moved, nil
}

// Reopen appends a new batch of pending items. A READY or DELIVERED order goes back
// to CONFIRMED so the kitchen picks it up again.
func (o *Order) Reopen(lines []LineInput) ([]OrderItem, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Reopening an order needs at least one item")
	}

	batch := o.CurrentBatch + 1
	added := make([]OrderItem, 0, len(lines))
	amount := decimal.Zero
	for _, line := range lines {
		item, err := NewOrderItem(o.ID, batch, line)
		if err != nil {
			return nil, err
		}
		added = append(added, *item)
		amount = amount.Add(item.Amount)
	}

	now := time.Now()
	previous := o.Status
	o.CurrentBatch = batch
	o.Items = append(o.Items, added...)
	o.recalculateTotals()
	if o.Status.AtLeast(OrderStatusReady) {
		o.Status = OrderStatusConfirmed
		o.ReadyAt = nil
		o.DeliveredAt = nil
	}
	o.ReopenedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderReopenedEvent(o, batch, len(added), amount, previous))

	return added, nil
}

// IsComplete reports whether every item is READY or DELIVERED
func (o *Order) IsComplete() bool {
	if len(o.Items) == 0 {
		return false
	}
	for _, item := range o.Items {
		if !item.Status.IsDone() {
			return false
		}
	}
	return true
}

// IsActive reports whether the order still needs the kitchen or the floor
func (o *Order) IsActive() bool {
	return o.Status.IsActive()
}

// Age returns how long the order has existed at now
func (o *Order) Age(now time.Time) time.Duration {
	age := now.Sub(o.CreatedAt)
	if age < 0 {
		return 0
	}
	return age
}

// Waiting returns how long the kitchen has had the current batch at now:
// since the last reopen for a reopened order, otherwise since creation.
func (o *Order) Waiting(now time.Time) time.Duration {
	since := o.CreatedAt
	if o.CurrentBatch > 1 && o.ReopenedAt != nil {
		since = *o.ReopenedAt
	}
	if wait := now.Sub(since); wait > 0 {
		return wait
	}
	return 0
}

// Priority returns the display label for the kitchen
func (o *Order) Priority(now time.Time, thresholds PriorityThresholds) Priority {
	if o.Status == OrderStatusDelivered {
		return PriorityNormal
	}
	return thresholds.Classify(o.Waiting(now))
}

// Batches groups items by batch number in ascending order.
// With activeOnly set, delivered items are left out and empty batches dropped.
func (o *Order) Batches(activeOnly bool) []Batch {
	byNumber := make(map[int]*Batch)
	for _, item := range o.Items {
		if activeOnly && !item.Status.IsActive() {
			continue
		}
		b, ok := byNumber[item.Batch]
		if !ok {
			b = &Batch{Number: item.Batch, CreatedAt: item.CreatedAt}
			byNumber[item.Batch] = b
		}
		if item.CreatedAt.Before(b.CreatedAt) {
			b.CreatedAt = item.CreatedAt
		}
		b.Items = append(b.Items, item)
	}

	batches := make([]Batch, 0, len(byNumber))
	for _, b := range byNumber {
		batches = append(batches, *b)
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].Number < batches[j].Number
	})
	return batches
}

// ItemCount returns the number of lines
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// HasMenuItem reports whether any line references the menu item
func (o *Order) HasMenuItem(menuItemID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.MenuItemID == menuItemID {
			return true
		}
	}
	return false
}

// transition sets the new status and its timestamp. With cascade set the items are
// pulled forward to match.
func (o *Order) transition(target OrderStatus, cascade bool) {
	from := o.Status
	now := time.Now()

	o.Status = target
	switch target {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusPreparing:
		o.PreparingAt = &now
	case OrderStatusReady:
		o.ReadyAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	}

	if cascade {
		var floor ItemStatus
		switch target {
		case OrderStatusPreparing:
			floor = ItemStatusPreparing
		case OrderStatusReady:
			floor = ItemStatusReady
		case OrderStatusDelivered:
			floor = ItemStatusDelivered
		}
		if floor != "" {
			for idx := range o.Items {
				o.Items[idx].raiseTo(floor)
			}
		}
	}

	o.UpdatedAt = now
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))
}

// syncWithItems walks the order forward one step at a time while its items allow it:
// work started on the current batch, every item done, every item served.
func (o *Order) syncWithItems() {
	for {
		var target OrderStatus
		switch {
		case o.Status == OrderStatusConfirmed && o.currentBatchStarted():
			target = OrderStatusPreparing
		case o.Status == OrderStatusPreparing && o.IsComplete():
			target = OrderStatusReady
		case o.Status == OrderStatusReady && o.allDelivered():
			target = OrderStatusDelivered
		default:
			return
		}
		o.transition(target, false)
	}
}

func (o *Order) currentBatchStarted() bool {
	for _, item := range o.Items {
		if item.Batch == o.CurrentBatch && item.Status.AtLeast(ItemStatusPreparing) {
			return true
		}
	}
	return false
}

func (o *Order) allDelivered() bool {
	if len(o.Items) == 0 {
		return false
	}
	for _, item := range o.Items {
		if item.Status != ItemStatusDelivered {
			return false
		}
	}
	return true
}

func (o *Order) findItem(itemID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

func (o *Order) recalculateTotals() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}
