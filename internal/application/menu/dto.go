package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/menu"
	"github.com/qrdine/backend/internal/infrastructure/excel"
	"github.com/shopspring/decimal"
)

// CreateMenuItemRequest represents a request to create a menu item
type CreateMenuItemRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description" binding:"max=2000"`
	IsAvailable *bool           `json:"is_available"`
	SortOrder   int             `json:"sort_order"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url"`
	Tags        []string        `json:"tags" binding:"max=20"`
}

// UpdateMenuItemRequest represents a request to update a menu item
type UpdateMenuItemRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category    *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	IsAvailable *bool            `json:"is_available"`
	SortOrder   *int             `json:"sort_order"`
	ImageURL    *string          `json:"image_url"`
	Tags        []string         `json:"tags" binding:"omitempty,max=20"`
}

// SetAvailabilityRequest toggles whether an item can be ordered
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// MenuItemListFilter represents filter options for the staff menu list
type MenuItemListFilter struct {
	Search      string `form:"search"`
	Category    string `form:"category"`
	IsAvailable *bool  `form:"is_available"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MenuItemResponse represents a menu item in staff API responses
type MenuItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	IsAvailable  bool            `json:"is_available"`
	SortOrder    int             `json:"sort_order"`
	ImageURL     string          `json:"image_url,omitempty"`
	Tags         []string        `json:"tags"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToMenuItemResponse converts a domain menu item to a response
func ToMenuItemResponse(item *menu.MenuItem) MenuItemResponse {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	return MenuItemResponse{
		ID:           item.ID,
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		Description:  item.Description,
		Category:     item.Category,
		Price:        item.Price,
		IsAvailable:  item.IsAvailable,
		SortOrder:    item.SortOrder,
		ImageURL:     item.ImageURL,
		Tags:         tags,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ToMenuItemResponses converts a slice of menu items
func ToMenuItemResponses(items []menu.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, len(items))
	for i := range items {
		out[i] = ToMenuItemResponse(&items[i])
	}
	return out
}

// PublicMenuItem is a menu item as customers see it
type PublicMenuItem struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Tags        []string        `json:"tags"`
}

// PublicMenuSection is one category of the customer menu
type PublicMenuSection struct {
	Category string           `json:"category"`
	Items    []PublicMenuItem `json:"items"`
}

// PublicMenuResponse is the grouped customer facing menu
type PublicMenuResponse struct {
	RestaurantID uuid.UUID           `json:"restaurant_id"`
	Sections     []PublicMenuSection `json:"sections"`
	ItemCount    int                 `json:"item_count"`
	GeneratedAt  time.Time           `json:"generated_at"`
}

// ToPublicMenuResponse converts grouped sections to the customer view
func ToPublicMenuResponse(restaurantID uuid.UUID, sections []menu.Section, now time.Time) PublicMenuResponse {
	resp := PublicMenuResponse{
		RestaurantID: restaurantID,
		Sections:     make([]PublicMenuSection, len(sections)),
		GeneratedAt:  now,
	}
	for i, section := range sections {
		items := make([]PublicMenuItem, len(section.Items))
		for j, item := range section.Items {
			tags := item.Tags
			if tags == nil {
				tags = []string{}
			}
			items[j] = PublicMenuItem{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				Price:       item.Price,
				ImageURL:    item.ImageURL,
				Tags:        tags,
			}
		}
		resp.Sections[i] = PublicMenuSection{Category: section.Category, Items: items}
		resp.ItemCount += len(items)
	}
	return resp
}

// MenuImportResult summarizes a spreadsheet import
type MenuImportResult struct {
	TotalRows   int              `json:"total_rows"`
	Created     int              `json:"created"`
	Updated     int              `json:"updated"`
	Skipped     int              `json:"skipped"`
	Errors      []excel.RowError `json:"errors"`
	TotalErrors int              `json:"total_errors"`
	IsTruncated bool             `json:"is_truncated,omitempty"`
}
