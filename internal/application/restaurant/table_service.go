package restaurant

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/restaurant"
	"github.com/qrdine/backend/internal/domain/shared"
)

// OpenOrderChecker reports whether a table still has an undelivered order
type OpenOrderChecker interface {
	ExistsUnfinishedByTable(ctx context.Context, restaurantID, tableID uuid.UUID) (bool, error)
}

// TableService handles table and QR token operations
type TableService struct {
	tableRepo      restaurant.TableRepository
	restaurantRepo restaurant.RestaurantRepository
	orders         OpenOrderChecker
	publicURL      string
}

// NewTableService creates a new TableService.
// publicURL is the customer facing base URL printed into QR codes.
func NewTableService(tableRepo restaurant.TableRepository, restaurantRepo restaurant.RestaurantRepository, orders OpenOrderChecker, publicURL string) *TableService {
	return &TableService{
		tableRepo:      tableRepo,
		restaurantRepo: restaurantRepo,
		orders:         orders,
		publicURL:      publicURL,
	}
}

// Create creates a new table with a fresh QR token
func (s *TableService) Create(ctx context.Context, restaurantID uuid.UUID, req CreateTableRequest) (*TableResponse, error) {
	if _, err := s.restaurantRepo.FindByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	table, err := restaurant.NewTable(restaurantID, req.Number, req.Seats)
	if err != nil {
		return nil, err
	}

	exists, err := s.tableRepo.ExistsByNumber(ctx, restaurantID, table.Number, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Table with this number already exists")
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	response := ToTableResponse(table, s.publicURL)
	return &response, nil
}

// GetByID retrieves a table by ID
func (s *TableService) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*TableResponse, error) {
	table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	response := ToTableResponse(table, s.publicURL)
	return &response, nil
}

// List retrieves the tables of a restaurant
func (s *TableService) List(ctx context.Context, restaurantID uuid.UUID, filter TableListFilter) ([]TableResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	applyListDefaults(&domainFilter, "number", "asc")
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	tables, err := s.tableRepo.FindAllForRestaurant(ctx, restaurantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tableRepo.CountForRestaurant(ctx, restaurantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTableResponses(tables, s.publicURL), total, nil
}

// Update changes number and seats of a table
func (s *TableService) Update(ctx context.Context, restaurantID, id uuid.UUID, req UpdateTableRequest) (*TableResponse, error) {
	table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	number, seats := table.Number, table.Seats
	if req.Number != nil {
		number = strings.TrimSpace(*req.Number)
	}
	if req.Seats != nil {
		seats = *req.Seats
	}

	if number != table.Number {
		exists, err := s.tableRepo.ExistsByNumber(ctx, restaurantID, number, &table.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Table with this number already exists")
		}
	}

	if err := table.Update(number, seats); err != nil {
		return nil, err
	}
	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	response := ToTableResponse(table, s.publicURL)
	return &response, nil
}

// SetActive activates or deactivates a table
func (s *TableService) SetActive(ctx context.Context, restaurantID, id uuid.UUID, active bool) (*TableResponse, error) {
	table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if active {
		table.Activate()
	} else {
		table.Deactivate()
	}
	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	response := ToTableResponse(table, s.publicURL)
	return &response, nil
}

// RegenerateToken issues a new QR token; previously printed codes stop working
func (s *TableService) RegenerateToken(ctx context.Context, restaurantID, id uuid.UUID) (*TableResponse, error) {
	table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if err := table.RegenerateToken(); err != nil {
		return nil, err
	}
	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	response := ToTableResponse(table, s.publicURL)
	return &response, nil
}

// Delete removes a table that has no undelivered order
func (s *TableService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return err
	}

	busy, err := s.orders.ExistsUnfinishedByTable(ctx, restaurantID, table.ID)
	if err != nil {
		return err
	}
	if busy {
		return shared.NewDomainError("TABLE_HAS_ACTIVE_ORDER", "Table has an order that is not delivered yet")
	}

	return s.tableRepo.DeleteForRestaurant(ctx, restaurantID, table.ID)
}

// ResolveToken maps a scanned QR token to its table and restaurant.
// Inactive tables and restaurants refuse the customer flow.
func (s *TableService) ResolveToken(ctx context.Context, token string) (*TableContextResponse, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, shared.ErrNotFound
	}

	table, err := s.tableRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !table.IsActive {
		return nil, shared.NewDomainError("TABLE_INACTIVE", "This table is not taking orders")
	}

	r, err := s.restaurantRepo.FindByID(ctx, table.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return nil, shared.NewDomainError("RESTAURANT_INACTIVE", "This restaurant is not taking orders")
	}

	return &TableContextResponse{
		TableID:        table.ID,
		TableNumber:    table.Number,
		RestaurantID:   r.ID,
		RestaurantName: r.Name,
		Currency:       r.Currency,
		Timezone:       r.Timezone,
	}, nil
}
