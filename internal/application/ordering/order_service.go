package ordering

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/menu"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/qrdine/backend/internal/domain/restaurant"
	"github.com/qrdine/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"

	orderNumberAttempts = 5
)

// OrderService handles the order workflow
type OrderService struct {
	orderRepo      ordering.OrderRepository
	tableRepo      restaurant.TableRepository
	restaurantRepo restaurant.RestaurantRepository
	menuRepo       menu.MenuItemRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	tableRepo restaurant.TableRepository,
	restaurantRepo restaurant.RestaurantRepository,
	menuRepo menu.MenuItemRepository,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:      orderRepo,
		tableRepo:      tableRepo,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// SetEventPublisher sets the event publisher for the service
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PlaceOrder creates an order for a table. With a table token the restaurant is
// taken from the table; with a table id restaurantID must be set.
func (s *OrderService) PlaceOrder(ctx context.Context, restaurantID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	table, err := s.resolveTable(ctx, restaurantID, req)
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

	lines, err := s.buildLines(ctx, table.RestaurantID, req.Items)
	if err != nil {
		return nil, err
	}

	order, err := s.createOrder(ctx, table, s.now().In(r.Location()), req.CustomerNote, lines)
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination, newest first by default
func (s *OrderService) List(ctx context.Context, restaurantID uuid.UUID, filter OrderListFilter) ([]OrderListResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}
	if domainFilter.OrderDir == "" {
		domainFilter.OrderDir = "desc"
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.TableID != "" {
		tableID, err := uuid.Parse(filter.TableID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "table_id must be a UUID")
		}
		domainFilter.Filters["table_id"] = tableID
	}

	if filter.From != "" || filter.To != "" {
		r, err := s.restaurantRepo.FindByID(ctx, restaurantID)
		if err != nil {
			return nil, 0, err
		}
		if err := applyDateRange(&domainFilter, filter.From, filter.To, r.Location()); err != nil {
			return nil, 0, err
		}
	}

	orders, err := s.orderRepo.FindAllForRestaurant(ctx, restaurantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForRestaurant(ctx, restaurantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderListResponses(orders), total, nil
}

// ActiveForTable returns the newest undelivered order of a table
func (s *OrderService) ActiveForTable(ctx context.Context, restaurantID, tableID uuid.UUID) (*OrderResponse, error) {
	if _, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, tableID); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindActiveByTable(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Update changes the note, moves the status one step, or reopens the order with new items.
// Status and items cannot be combined in one request.
func (s *OrderService) Update(ctx context.Context, restaurantID, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	if req.Status == nil && req.CustomerNote == nil && len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Nothing to update")
	}
	if req.Status != nil && len(req.Items) > 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Status change and new items must be sent separately")
	}

	order, err := s.orderRepo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerNote != nil {
		if err := order.SetCustomerNote(*req.CustomerNote); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		target := ordering.OrderStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		if err := order.AdvanceTo(target); err != nil {
			return nil, err
		}
	}
	if len(req.Items) > 0 {
		lines, err := s.buildLines(ctx, restaurantID, req.Items)
		if err != nil {
			return nil, err
		}
		if _, err := order.Reopen(lines); err != nil {
			return nil, err
		}
	}

	return s.saveAndRespond(ctx, order)
}

// Reopen appends a new batch of items to an order
func (s *OrderService) Reopen(ctx context.Context, restaurantID, id uuid.UUID, req ReopenOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.buildLines(ctx, restaurantID, req.Items)
	if err != nil {
		return nil, err
	}
	if _, err := order.Reopen(lines); err != nil {
		return nil, err
	}
	return s.saveAndRespond(ctx, order)
}

// AdvanceItem moves one order item a step forward
func (s *OrderService) AdvanceItem(ctx context.Context, restaurantID, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForRestaurant(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := order.AdvanceItem(itemID); err != nil {
		return nil, err
	}
	return s.saveAndRespond(ctx, order)
}

// AdvanceBatch moves the lagging items of one batch a step forward
func (s *OrderService) AdvanceBatch(ctx context.Context, restaurantID, orderID uuid.UUID, batch int) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForRestaurant(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := order.AdvanceBatch(batch); err != nil {
		return nil, err
	}
	return s.saveAndRespond(ctx, order)
}

func (s *OrderService) saveAndRespond(ctx context.Context, order *ordering.Order) (*OrderResponse, error) {
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// createOrder numbers, builds and saves a placed order. A number lost to a
// concurrent placement is regenerated, up to orderNumberAttempts times.
func (s *OrderService) createOrder(ctx context.Context, table *restaurant.Table, day time.Time, note string, lines []ordering.LineInput) (*ordering.Order, error) {
	for attempt := 1; ; attempt++ {
		number, err := s.orderRepo.GenerateOrderNumber(ctx, table.RestaurantID, day)
		if err != nil {
			return nil, err
		}

		order, err := ordering.NewOrder(table.RestaurantID, table.ID, table.Number, number)
		if err != nil {
			return nil, err
		}
		if err := order.SetCustomerNote(note); err != nil {
			return nil, err
		}
		for _, line := range lines {
			if _, err := order.AddItem(line); err != nil {
				return nil, err
			}
		}
		if err := order.Place(); err != nil {
			return nil, err
		}

		err = s.orderRepo.Save(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, ordering.ErrOrderNumberTaken) || attempt == orderNumberAttempts {
			return nil, err
		}
		s.logger.Debug("order number taken, retrying",
			zap.String("order_number", number),
			zap.Int("attempt", attempt),
		)
	}
}

func (s *OrderService) resolveTable(ctx context.Context, restaurantID uuid.UUID, req PlaceOrderRequest) (*restaurant.Table, error) {
	token := strings.ToLower(strings.TrimSpace(req.TableToken))
	switch {
	case token != "":
		table, err := s.tableRepo.FindByToken(ctx, token)
		if err != nil {
			return nil, err
		}
		if restaurantID != uuid.Nil && table.RestaurantID != restaurantID {
			return nil, shared.ErrNotFound
		}
		return table, nil
	case req.TableID != nil:
		if restaurantID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "restaurant_id is required when ordering by table_id")
		}
		return s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, *req.TableID)
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "table_token or table_id is required")
	}
}

// buildLines checks the requested menu items and snapshots their names and prices
func (s *OrderService) buildLines(ctx context.Context, restaurantID uuid.UUID, requested []OrderLineRequest) ([]ordering.LineInput, error) {
	if len(requested) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "An order needs at least one item")
	}

	ids := make([]uuid.UUID, 0, len(requested))
	seen := make(map[uuid.UUID]struct{}, len(requested))
	for _, line := range requested {
		if _, ok := seen[line.MenuItemID]; ok {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		ids = append(ids, line.MenuItemID)
	}

	items, err := s.menuRepo.FindByIDsForRestaurant(ctx, restaurantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*menu.MenuItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	lines := make([]ordering.LineInput, 0, len(requested))
	for _, line := range requested {
		item, ok := byID[line.MenuItemID]
		if !ok {
			return nil, shared.NewDomainErrorf("MENU_ITEM_NOT_FOUND", "Menu item %s does not exist", line.MenuItemID)
		}
		if !item.IsAvailable {
			return nil, shared.NewDomainErrorf("MENU_ITEM_UNAVAILABLE", "%s is currently unavailable", item.Name)
		}
		lines = append(lines, ordering.LineInput{
			MenuItemID: item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   line.Quantity,
			Notes:      line.Notes,
		})
	}
	return lines, nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *ordering.Order) {
	events := order.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish order events",
			zap.String("order_id", order.ID.String()),
			zap.Int("event_count", len(events)),
			zap.Error(err),
		)
	}
}

// applyDateRange turns inclusive local dates into a [from, to) created_at window
func applyDateRange(filter *shared.Filter, from, to string, loc *time.Location) error {
	if from != "" {
		start, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE_RANGE", "from must be a date in YYYY-MM-DD format")
		}
		filter.Filters["from"] = start
	}
	if to != "" {
		end, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE_RANGE", "to must be a date in YYYY-MM-DD format")
		}
		filter.Filters["to"] = end.AddDate(0, 0, 1)
	}
	if start, ok := filter.Filters["from"].(time.Time); ok {
		if end, ok := filter.Filters["to"].(time.Time); ok && !end.After(start) {
			return shared.NewDomainError("INVALID_DATE_RANGE", "to cannot be before from")
		}
	}
	return nil
}
