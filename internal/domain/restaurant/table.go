package restaurant

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/shared"
)

const qrTokenBytes = 16

// Table is a physical table carrying a QR code that customers scan to order
type Table struct {
	shared.RestaurantAggregateRoot
	Number   string
	Seats    int
	QRToken  string
	IsActive bool
}

// NewTable creates a new active table with a fresh QR token
func NewTable(restaurantID uuid.UUID, number string, seats int) (*Table, error) {
	if restaurantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESTAURANT", "Restaurant ID cannot be empty")
	}
	number = strings.TrimSpace(number)
	if err := validateNumber(number); err != nil {
		return nil, err
	}
	if err := validateSeats(seats); err != nil {
		return nil, err
	}
	token, err := NewQRToken()
	if err != nil {
		return nil, err
	}

	return &Table{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		Number:                  number,
		Seats:                   seats,
		QRToken:                 token,
		IsActive:                true,
	}, nil
}

// Update changes the table number and seat count
func (t *Table) Update(number string, seats int) error {
	number = strings.TrimSpace(number)
	if err := validateNumber(number); err != nil {
		return err
	}
	if err := validateSeats(seats); err != nil {
		return err
	}
	t.Number = number
	t.Seats = seats
	t.Touch()
	return nil
}

// RegenerateToken invalidates printed QR codes by issuing a new token
func (t *Table) RegenerateToken() error {
	token, err := NewQRToken()
	if err != nil {
		return err
	}
	t.QRToken = token
	t.Touch()
	return nil
}

// Activate allows orders from this table
func (t *Table) Activate() {
	t.IsActive = true
	t.Touch()
}

// Deactivate refuses new orders from this table
func (t *Table) Deactivate() {
	t.IsActive = false
	t.Touch()
}

// QRURL returns the link encoded in the table's QR code
func (t *Table) QRURL(publicURL string) string {
	return strings.TrimRight(publicURL, "/") + "/t/" + t.QRToken
}

// NewQRToken returns a random 32 character hex token
func NewQRToken() (string, error) {
	b := make([]byte, qrTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to generate table token")
	}
	return hex.EncodeToString(b), nil
}

func validateNumber(number string) error {
	if number == "" {
		return shared.NewDomainError("INVALID_TABLE_NUMBER", "Table number cannot be empty")
	}
	if len(number) > 20 {
		return shared.NewDomainError("INVALID_TABLE_NUMBER", "Table number cannot exceed 20 characters")
	}
	return nil
}

func validateSeats(seats int) error {
	if seats < 1 || seats > 50 {
		return shared.NewDomainError("INVALID_SEATS", "Seats must be between 1 and 50")
	}
	return nil
}
