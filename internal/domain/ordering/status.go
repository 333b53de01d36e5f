package ordering

// OrderStatus represents where an order is in its lifecycle
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

var orderStatusOrder = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
}

// AllOrderStatuses returns every order status in workflow order
func AllOrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatusOrder))
	copy(out, orderStatusOrder)
	return out
}

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	return s.rank() >= 0
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// Next returns the immediate successor, or false for DELIVERED
func (s OrderStatus) Next() (OrderStatus, bool) {
	r := s.rank()
	if r < 0 || r == len(orderStatusOrder)-1 {
		return "", false
	}
	return orderStatusOrder[r+1], true
}

// CanTransitionTo allows only the single step forward
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// AtLeast reports whether s is at or past other in the workflow
func (s OrderStatus) AtLeast(other OrderStatus) bool {
	return s.rank() >= other.rank()
}

// IsActive reports whether the kitchen still has work on the order
func (s OrderStatus) IsActive() bool {
	return s != OrderStatusDelivered
}

func (s OrderStatus) rank() int {
	for i, st := range orderStatusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// ItemStatus represents the kitchen progress of a single order line
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "PENDING"
	ItemStatusPreparing ItemStatus = "PREPARING"
	ItemStatusReady     ItemStatus = "READY"
	ItemStatusDelivered ItemStatus = "DELIVERED"
)

var itemStatusOrder = []ItemStatus{
	ItemStatusPending,
	ItemStatusPreparing,
	ItemStatusReady,
	ItemStatusDelivered,
}

// IsValid checks if the status is a known value
func (s ItemStatus) IsValid() bool {
	return s.rank() >= 0
}

// String returns the string representation
func (s ItemStatus) String() string {
	return string(s)
}

// Next returns the immediate successor, or false for DELIVERED
func (s ItemStatus) Next() (ItemStatus, bool) {
	r := s.rank()
	if r < 0 || r == len(itemStatusOrder)-1 {
		return "", false
	}
	return itemStatusOrder[r+1], true
}

// CanTransitionTo allows only the single step forward
func (s ItemStatus) CanTransitionTo(target ItemStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// AtLeast reports whether s is at or past other
func (s ItemStatus) AtLeast(other ItemStatus) bool {
	return s.rank() >= other.rank()
}

// IsDone reports whether the kitchen has finished the item
func (s ItemStatus) IsDone() bool {
	return s == ItemStatusReady || s == ItemStatusDelivered
}

// IsActive reports whether the item still shows on the kitchen display
func (s ItemStatus) IsActive() bool {
	return s != ItemStatusDelivered
}

func (s ItemStatus) rank() int {
	for i, st := range itemStatusOrder {
		if st == s {
			return i
		}
	}
	return -1
}
