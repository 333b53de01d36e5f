package restaurant

import (
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/restaurant"
)

// ==================== Restaurant DTOs ====================

// CreateRestaurantRequest represents a request to create a restaurant
type CreateRestaurantRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Slug     string `json:"slug" binding:"required,slug"`
	Timezone string `json:"timezone" binding:"omitempty,max=64,timezone"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
	Address  string `json:"address" binding:"max=500"`
	Phone    string `json:"phone" binding:"max=50"`
}

// UpdateRestaurantRequest represents a request to update a restaurant
type UpdateRestaurantRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Timezone *string `json:"timezone" binding:"omitempty,max=64,timezone"`
	Currency *string `json:"currency" binding:"omitempty,len=3"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}

// RestaurantListFilter represents filter options for restaurant list
type RestaurantListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RestaurantResponse represents a restaurant in API responses
type RestaurantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Timezone  string    `json:"timezone"`
	Currency  string    `json:"currency"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToRestaurantResponse converts a domain restaurant to a response
func ToRestaurantResponse(r *restaurant.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      r.Slug,
		Timezone:  r.Timezone,
		Currency:  r.Currency,
		Address:   r.Address,
		Phone:     r.Phone,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Version:   r.Version,
	}
}

// ToRestaurantResponses converts a slice of restaurants
func ToRestaurantResponses(list []restaurant.Restaurant) []RestaurantResponse {
	out := make([]RestaurantResponse, len(list))
	for i := range list {
		out[i] = ToRestaurantResponse(&list[i])
	}
	return out
}

// ==================== Table DTOs ====================

// CreateTableRequest represents a request to create a table
type CreateTableRequest struct {
	Number string `json:"number" binding:"required,min=1,max=20"`
	Seats  int    `json:"seats" binding:"required,min=1,max=50"`
}

// UpdateTableRequest represents a request to update a table
type UpdateTableRequest struct {
	Number *string `json:"number" binding:"omitempty,min=1,max=20"`
	Seats  *int    `json:"seats" binding:"omitempty,min=1,max=50"`
}

// SetTableStatusRequest toggles whether a table accepts orders
type SetTableStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// TableListFilter represents filter options for table list
type TableListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TableResponse represents a table in API responses
type TableResponse struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Number       string    `json:"number"`
	Seats        int       `json:"seats"`
	QRToken      string    `json:"qr_token"`
	QRURL        string    `json:"qr_url"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToTableResponse converts a domain table to a response
func ToTableResponse(t *restaurant.Table, publicURL string) TableResponse {
	return TableResponse{
		ID:           t.ID,
		RestaurantID: t.RestaurantID,
		Number:       t.Number,
		Seats:        t.Seats,
		QRToken:      t.QRToken,
		QRURL:        t.QRURL(publicURL),
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToTableResponses converts a slice of tables
func ToTableResponses(tables []restaurant.Table, publicURL string) []TableResponse {
	out := make([]TableResponse, len(tables))
	for i := range tables {
		out[i] = ToTableResponse(&tables[i], publicURL)
	}
	return out
}

// TableContextResponse is what a customer sees after scanning a QR code
type TableContextResponse struct {
	TableID        uuid.UUID `json:"table_id"`
	TableNumber    string    `json:"table_number"`
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	Currency       string    `json:"currency"`
	Timezone       string    `json:"timezone"`
}
