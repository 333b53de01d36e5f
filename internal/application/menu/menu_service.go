package menu

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/menu"
	"github.com/qrdine/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MenuCache stores the rendered public menu of a restaurant
type MenuCache interface {
	Get(ctx context.Context, restaurantID uuid.UUID) ([]byte, bool)
	Set(ctx context.Context, restaurantID uuid.UUID, payload []byte)
	Invalidate(ctx context.Context, restaurantID uuid.UUID)
}

// MenuUsageChecker reports whether orders still reference a menu item
type MenuUsageChecker interface {
	ExistsByMenuItem(ctx context.Context, restaurantID, menuItemID uuid.UUID) (bool, error)
}

// MenuService handles menu item business operations
type MenuService struct {
	repo   menu.MenuItemRepository
	usage  MenuUsageChecker
	cache  MenuCache
	logger *zap.Logger
	now    func() time.Time
}

// NewMenuService creates a new MenuService. cache may be nil.
func NewMenuService(repo menu.MenuItemRepository, usage MenuUsageChecker, cache MenuCache, logger *zap.Logger) *MenuService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MenuService{
		repo:   repo,
		usage:  usage,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Create creates a new menu item
func (s *MenuService) Create(ctx context.Context, restaurantID uuid.UUID, req CreateMenuItemRequest) (*MenuItemResponse, error) {
	item, err := menu.NewMenuItem(restaurantID, req.Name, req.Category, req.Price)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, restaurantID, item.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Menu item with this name already exists")
	}

	if err := item.SetDescription(req.Description); err != nil {
		return nil, err
	}
	if err := item.SetImageURL(req.ImageURL); err != nil {
		return nil, err
	}
	if err := item.SetTags(req.Tags); err != nil {
		return nil, err
	}
	item.SetSortOrder(req.SortOrder)
	if req.IsAvailable != nil {
		item.SetAvailability(*req.IsAvailable)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, restaurantID)

	response := ToMenuItemResponse(item)
	return &response, nil
}

// GetByID retrieves a menu item
func (s *MenuService) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*MenuItemResponse, error) {
	item, err := s.repo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	response := ToMenuItemResponse(item)
	return &response, nil
}

// List retrieves menu items with filtering and pagination
func (s *MenuService) List(ctx context.Context, restaurantID uuid.UUID, filter MenuItemListFilter) ([]MenuItemResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "sort_order"
	}
	if domainFilter.OrderDir == "" {
		domainFilter.OrderDir = "asc"
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		domainFilter.Filters["category"] = category
	}
	if filter.IsAvailable != nil {
		domainFilter.Filters["is_available"] = *filter.IsAvailable
	}

	items, err := s.repo.FindAllForRestaurant(ctx, restaurantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForRestaurant(ctx, restaurantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToMenuItemResponses(items), total, nil
}

// Categories returns the distinct categories of a restaurant
func (s *MenuService) Categories(ctx context.Context, restaurantID uuid.UUID) ([]string, error) {
	categories, err := s.repo.Categories(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// Update updates a menu item
func (s *MenuService) Update(ctx context.Context, restaurantID, id uuid.UUID, req UpdateMenuItemRequest) (*MenuItemResponse, error) {
	item, err := s.repo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := item.Rename(*req.Name); err != nil {
			return nil, err
		}
		exists, err := s.repo.ExistsByName(ctx, restaurantID, item.Name, &item.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Menu item with this name already exists")
		}
	}
	if req.Category != nil {
		if err := item.SetCategory(*req.Category); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := item.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := item.SetDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		if err := item.SetImageURL(*req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.Tags != nil {
		if err := item.SetTags(req.Tags); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		item.SetSortOrder(*req.SortOrder)
	}
	if req.IsAvailable != nil {
		item.SetAvailability(*req.IsAvailable)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, restaurantID)

	response := ToMenuItemResponse(item)
	return &response, nil
}

// SetAvailability marks a menu item as orderable or sold out
func (s *MenuService) SetAvailability(ctx context.Context, restaurantID, id uuid.UUID, available bool) (*MenuItemResponse, error) {
	item, err := s.repo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	item.SetAvailability(available)
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, restaurantID)

	response := ToMenuItemResponse(item)
	return &response, nil
}

// Delete removes a menu item that no order references
func (s *MenuService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForRestaurant(ctx, restaurantID, id); err != nil {
		return err
	}

	inUse, err := s.usage.ExistsByMenuItem(ctx, restaurantID, id)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewDomainError("MENU_ITEM_IN_USE", "Menu item is referenced by orders; mark it unavailable instead")
	}

	if err := s.repo.DeleteForRestaurant(ctx, restaurantID, id); err != nil {
		return err
	}
	s.invalidate(ctx, restaurantID)
	return nil
}

// PublicMenu returns the grouped customer menu, served from cache when possible
func (s *MenuService) PublicMenu(ctx context.Context, restaurantID uuid.UUID) (*PublicMenuResponse, error) {
	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx, restaurantID); ok {
			var cached PublicMenuResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
			s.logger.Warn("Discarding unreadable cached menu", zap.String("restaurant_id", restaurantID.String()))
		}
	}

	items, err := s.repo.FindAvailable(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	response := ToPublicMenuResponse(restaurantID, menu.GroupByCategory(items), s.now().UTC())

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err != nil {
			s.logger.Warn("Failed to encode menu for cache", zap.Error(err))
		} else {
			s.cache.Set(ctx, restaurantID, payload)
		}
	}
	return &response, nil
}

func (s *MenuService) invalidate(ctx context.Context, restaurantID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, restaurantID)
	}
}
