package restaurant

import (
	"regexp"
	"strings"
	"time"

	"github.com/qrdine/backend/internal/domain/shared"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	DefaultTimezone = "UTC"
	DefaultCurrency = "USD"
)

// Restaurant owns tables, menu items and orders
type Restaurant struct {
	shared.BaseAggregateRoot
	Name     string
	Slug     string
	Timezone string
	Currency string
	Address  string
	Phone    string
	IsActive bool
}

// NewRestaurant creates a new active restaurant
func NewRestaurant(name, slug string) (*Restaurant, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	return &Restaurant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Timezone:          DefaultTimezone,
		Currency:          DefaultCurrency,
		IsActive:          true,
	}, nil
}

// Rename changes the display name
func (r *Restaurant) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	r.Name = name
	r.Touch()
	return nil
}

// SetContact updates the address and phone
func (r *Restaurant) SetContact(address, phone string) error {
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_INPUT", "Address cannot exceed 500 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "Phone cannot exceed 50 characters")
	}
	r.Address = strings.TrimSpace(address)
	r.Phone = strings.TrimSpace(phone)
	r.Touch()
	return nil
}

// SetTimezone sets the IANA timezone used for report bucketing
func (r *Restaurant) SetTimezone(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return shared.NewDomainErrorf("INVALID_INPUT", "Unknown timezone: %s", tz)
	}
	r.Timezone = tz
	r.Touch()
	return nil
}

// SetCurrency sets the ISO 4217 currency code
func (r *Restaurant) SetCurrency(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return shared.NewDomainError("INVALID_INPUT", "Currency must be a 3-letter ISO code")
	}
	for _, ch := range code {
		if ch < 'A' || ch > 'Z' {
			return shared.NewDomainError("INVALID_INPUT", "Currency must be a 3-letter ISO code")
		}
	}
	r.Currency = code
	r.Touch()
	return nil
}

// Activate re-enables ordering for the restaurant
func (r *Restaurant) Activate() {
	r.IsActive = true
	r.Touch()
}

// Deactivate stops new orders from being placed
func (r *Restaurant) Deactivate() {
	r.IsActive = false
	r.Touch()
}

// Location returns the restaurant's time zone, falling back to UTC
func (r *Restaurant) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Restaurant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Restaurant name cannot exceed 200 characters")
	}
	return nil
}

// IsValidSlug reports whether slug is 2 to 64 lowercase letters and digits
// in dash separated groups
func IsValidSlug(slug string) bool {
	return len(slug) >= 2 && len(slug) <= 64 && slugPattern.MatchString(slug)
}

func validateSlug(slug string) error {
	if len(slug) < 2 || len(slug) > 64 {
		return shared.NewDomainError("INVALID_SLUG", "Slug must be between 2 and 64 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug may only contain lowercase letters, digits and dashes")
	}
	return nil
}
