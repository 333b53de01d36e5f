package shared

import (
	"github.com/google/uuid"
)

// BaseAggregateRoot is embedded by aggregate roots. It carries the row
// version and the events raised since the aggregate was last saved.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int
	domainEvents []DomainEvent
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// IncrementVersion bumps the version after a successful save
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent queues an event for publication after the next save
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the queued events without clearing them
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// PullDomainEvents returns the queued events and clears the queue
func (a *BaseAggregateRoot) PullDomainEvents() []DomainEvent {
	events := a.domainEvents
	a.domainEvents = nil
	return events
}

// RestaurantAggregateRoot is an aggregate owned by a single restaurant.
// Every staff query is scoped by RestaurantID.
type RestaurantAggregateRoot struct {
	BaseAggregateRoot
	RestaurantID uuid.UUID
}

func NewRestaurantAggregateRoot(restaurantID uuid.UUID) RestaurantAggregateRoot {
	return RestaurantAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		RestaurantID:      restaurantID,
	}
}

// BelongsTo reports whether the aggregate is owned by restaurantID
func (r *RestaurantAggregateRoot) BelongsTo(restaurantID uuid.UUID) bool {
	return r.RestaurantID == restaurantID
}
