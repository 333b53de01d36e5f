package restaurant

import (
	"context"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/restaurant"
	"github.com/qrdine/backend/internal/domain/shared"
)

// RestaurantService handles restaurant business operations
type RestaurantService struct {
	repo restaurant.RestaurantRepository
}

// NewRestaurantService creates a new RestaurantService
func NewRestaurantService(repo restaurant.RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

// Create creates a new restaurant
func (s *RestaurantService) Create(ctx context.Context, req CreateRestaurantRequest) (*RestaurantResponse, error) {
	r, err := restaurant.NewRestaurant(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsBySlug(ctx, r.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Restaurant with this slug already exists")
	}

	if req.Timezone != "" {
		if err := r.SetTimezone(req.Timezone); err != nil {
			return nil, err
		}
	}
	if req.Currency != "" {
		if err := r.SetCurrency(req.Currency); err != nil {
			return nil, err
		}
	}
	if err := r.SetContact(req.Address, req.Phone); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToRestaurantResponse(r)
	return &response, nil
}

// GetByID retrieves a restaurant by ID
func (s *RestaurantService) GetByID(ctx context.Context, id uuid.UUID) (*RestaurantResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToRestaurantResponse(r)
	return &response, nil
}

// List retrieves restaurants with filtering and pagination
func (s *RestaurantService) List(ctx context.Context, filter RestaurantListFilter) ([]RestaurantResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	applyListDefaults(&domainFilter, "name", "asc")
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToRestaurantResponses(list), total, nil
}

// Update updates restaurant settings
func (s *RestaurantService) Update(ctx context.Context, id uuid.UUID, req UpdateRestaurantRequest) (*RestaurantResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := r.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Timezone != nil {
		if err := r.SetTimezone(*req.Timezone); err != nil {
			return nil, err
		}
	}
	if req.Currency != nil {
		if err := r.SetCurrency(*req.Currency); err != nil {
			return nil, err
		}
	}
	if req.Address != nil || req.Phone != nil {
		address, phone := r.Address, r.Phone
		if req.Address != nil {
			address = *req.Address
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := r.SetContact(address, phone); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			r.Activate()
		} else {
			r.Deactivate()
		}
	}

	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToRestaurantResponse(r)
	return &response, nil
}

// applyListDefaults fills paging and sort defaults
func applyListDefaults(f *shared.Filter, orderBy, orderDir string) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.OrderBy == "" {
		f.OrderBy = orderBy
	}
	if f.OrderDir == "" {
		f.OrderDir = orderDir
	}
}
