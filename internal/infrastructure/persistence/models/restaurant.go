package models

import (
	"github.com/qrdine/backend/internal/domain/restaurant"
)

// RestaurantModel is the persistence model for the Restaurant aggregate root.
type RestaurantModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(200);not null"`
	Slug     string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Timezone string `gorm:"type:varchar(64);not null;default:'UTC'"`
	Currency string `gorm:"type:varchar(3);not null;default:'USD'"`
	Address  string `gorm:"type:varchar(500)"`
	Phone    string `gorm:"type:varchar(50)"`
	IsActive bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RestaurantModel) TableName() string {
	return "restaurants"
}

// ToDomain converts the persistence model to a domain Restaurant
func (m *RestaurantModel) ToDomain() *restaurant.Restaurant {
	r := &restaurant.Restaurant{
		Name:     m.Name,
		Slug:     m.Slug,
		Timezone: m.Timezone,
		Currency: m.Currency,
		Address:  m.Address,
		Phone:    m.Phone,
		IsActive: m.IsActive,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Restaurant
func (m *RestaurantModel) FromDomain(r *restaurant.Restaurant) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Name = r.Name
	m.Slug = r.Slug
	m.Timezone = r.Timezone
	m.Currency = r.Currency
	m.Address = r.Address
	m.Phone = r.Phone
	m.IsActive = r.IsActive
}

// RestaurantModelFromDomain creates a new persistence model from a domain Restaurant
func RestaurantModelFromDomain(r *restaurant.Restaurant) *RestaurantModel {
	m := &RestaurantModel{}
	m.FromDomain(r)
	return m
}

// TableModel is the persistence model for the Table aggregate root.
// The QR token is globally unique; number uniqueness per restaurant is enforced by the migration.
type TableModel struct {
	RestaurantAggregateModel
	Number   string `gorm:"type:varchar(20);not null;index"`
	Seats    int    `gorm:"not null;default:1"`
	QRToken  string `gorm:"column:qr_token;type:varchar(64);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TableModel) TableName() string {
	return "dining_tables"
}

// ToDomain converts the persistence model to a domain Table
func (m *TableModel) ToDomain() *restaurant.Table {
	t := &restaurant.Table{
		Number:   m.Number,
		Seats:    m.Seats,
		QRToken:  m.QRToken,
		IsActive: m.IsActive,
	}
	m.PopulateRestaurantAggregateRoot(&t.RestaurantAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Table
func (m *TableModel) FromDomain(t *restaurant.Table) {
	m.FromDomainRestaurantAggregateRoot(t.RestaurantAggregateRoot)
	m.Number = t.Number
	m.Seats = t.Seats
	m.QRToken = t.QRToken
	m.IsActive = t.IsActive
}

// TableModelFromDomain creates a new persistence model from a domain Table
func TableModelFromDomain(t *restaurant.Table) *TableModel {
	m := &TableModel{}
	m.FromDomain(t)
	return m
}
