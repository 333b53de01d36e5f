package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity.
// Timestamps are stored in UTC.
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt.UTC()
	m.UpdatedAt = e.UpdatedAt.UTC()
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with the version counter.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// PopulateAggregateRoot populates a domain BaseAggregateRoot from the model
func (m *AggregateModel) PopulateAggregateRoot(a *shared.BaseAggregateRoot) {
	a.BaseEntity = m.BaseModel.ToDomain()
	a.Version = m.Version
}

// RestaurantAggregateModel provides common persistence fields for restaurant-scoped aggregate roots
type RestaurantAggregateModel struct {
	AggregateModel
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainRestaurantAggregateRoot populates RestaurantAggregateModel from the domain root
func (m *RestaurantAggregateModel) FromDomainRestaurantAggregateRoot(r shared.RestaurantAggregateRoot) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.RestaurantID = r.RestaurantID
}

// PopulateRestaurantAggregateRoot populates a domain RestaurantAggregateRoot from the model
func (m *RestaurantAggregateModel) PopulateRestaurantAggregateRoot(r *shared.RestaurantAggregateRoot) {
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	r.RestaurantID = m.RestaurantID
}
