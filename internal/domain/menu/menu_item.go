package menu

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	maxNameLength        = 200
	maxCategoryLength    = 100
	maxDescriptionLength = 2000
	maxTags              = 20
	maxTagLength         = 40
)

// MenuItem is a dish or drink a restaurant offers
type MenuItem struct {
	shared.RestaurantAggregateRoot
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	IsAvailable bool
	SortOrder   int
	ImageURL    string
	Tags        []string
}

// NewMenuItem creates a new available menu item
func NewMenuItem(restaurantID uuid.UUID, name, category string, price decimal.Decimal) (*MenuItem, error) {
	if restaurantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESTAURANT", "Restaurant ID cannot be empty")
	}

	item := &MenuItem{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		IsAvailable:             true,
		Tags:                    []string{},
	}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := item.SetCategory(category); err != nil {
		return nil, err
	}
	if err := item.SetPrice(price); err != nil {
		return nil, err
	}
	return item, nil
}

// Rename changes the item name
func (m *MenuItem) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Menu item name cannot be empty")
	}
	if len(name) > maxNameLength {
		return shared.NewDomainError("INVALID_NAME", "Menu item name cannot exceed 200 characters")
	}
	m.Name = name
	m.Touch()
	return nil
}

// SetCategory moves the item to another category
func (m *MenuItem) SetCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if len(category) > maxCategoryLength {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	m.Category = category
	m.Touch()
	return nil
}

// SetPrice sets the unit price. Prices are positive with at most two decimals.
func (m *MenuItem) SetPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	if !price.Equal(price.Round(2)) {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot have more than two decimal places")
	}
	m.Price = price
	m.Touch()
	return nil
}

// SetDescription sets the free text description
func (m *MenuItem) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if len(description) > maxDescriptionLength {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	m.Description = description
	m.Touch()
	return nil
}

// SetImageURL sets the picture shown to customers; empty clears it
func (m *MenuItem) SetImageURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL must be an absolute http(s) URL")
		}
	}
	m.ImageURL = raw
	m.Touch()
	return nil
}

// SetSortOrder sets the position within the category
func (m *MenuItem) SetSortOrder(order int) {
	m.SortOrder = order
	m.Touch()
}

// SetTags replaces the tag list. Tags are trimmed, lowercased and deduplicated.
func (m *MenuItem) SetTags(tags []string) error {
	seen := make(map[string]struct{}, len(tags))
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if len(tag) > maxTagLength {
			return shared.NewDomainError("INVALID_TAG", "Tag cannot exceed 40 characters")
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		cleaned = append(cleaned, tag)
	}
	if len(cleaned) > maxTags {
		return shared.NewDomainError("INVALID_TAG", "A menu item cannot have more than 20 tags")
	}
	m.Tags = cleaned
	m.Touch()
	return nil
}

// SetAvailability marks the item as orderable or sold out
func (m *MenuItem) SetAvailability(available bool) {
	m.IsAvailable = available
	m.Touch()
}
