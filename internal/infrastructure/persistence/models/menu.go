package models

import (
	"encoding/json"

	"github.com/qrdine/backend/internal/domain/menu"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MenuItemModel is the persistence model for the MenuItem aggregate root.
// Tags are stored as a JSON array.
type MenuItemModel struct {
	RestaurantAggregateModel
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsAvailable bool            `gorm:"not null"`
	SortOrder   int             `gorm:"not null;default:0"`
	ImageURL    string          `gorm:"column:image_url;type:varchar(1000)"`
	Tags        datatypes.JSON  `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (MenuItemModel) TableName() string {
	return "menu_items"
}

// ToDomain converts the persistence model to a domain MenuItem
func (m *MenuItemModel) ToDomain() *menu.MenuItem {
	item := &menu.MenuItem{
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Price:       m.Price,
		IsAvailable: m.IsAvailable,
		SortOrder:   m.SortOrder,
		ImageURL:    m.ImageURL,
		Tags:        []string{},
	}
	if len(m.Tags) > 0 {
		// a malformed column leaves the item without tags
		_ = json.Unmarshal(m.Tags, &item.Tags)
		if item.Tags == nil {
			item.Tags = []string{}
		}
	}
	m.PopulateRestaurantAggregateRoot(&item.RestaurantAggregateRoot)
	return item
}

// FromDomain populates the persistence model from a domain MenuItem
func (m *MenuItemModel) FromDomain(item *menu.MenuItem) {
	m.FromDomainRestaurantAggregateRoot(item.RestaurantAggregateRoot)
	m.Name = item.Name
	m.Description = item.Description
	m.Category = item.Category
	m.Price = item.Price
	m.IsAvailable = item.IsAvailable
	m.SortOrder = item.SortOrder
	m.ImageURL = item.ImageURL

	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	m.Tags = datatypes.JSON(raw)
}

// MenuItemModelFromDomain creates a new persistence model from a domain MenuItem
func MenuItemModelFromDomain(item *menu.MenuItem) *MenuItemModel {
	m := &MenuItemModel{}
	m.FromDomain(item)
	return m
}
