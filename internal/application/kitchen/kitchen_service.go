package kitchen

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/ordering"
)

// DefaultPollInterval is the refresh period suggested to kitchen displays
const DefaultPollInterval = 3 * time.Second

// KitchenService builds the polled kitchen display. It only reads; item and batch
// progress goes through the order service.
type KitchenService struct {
	orderRepo    ordering.OrderRepository
	thresholds   ordering.PriorityThresholds
	pollInterval time.Duration
	now          func() time.Time
}

// NewKitchenService creates a new KitchenService
func NewKitchenService(orderRepo ordering.OrderRepository, thresholds ordering.PriorityThresholds, pollInterval time.Duration) *KitchenService {
	if thresholds.HighAfter <= 0 || thresholds.UrgentAfter <= thresholds.HighAfter {
		thresholds = ordering.DefaultPriorityThresholds()
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &KitchenService{
		orderRepo:    orderRepo,
		thresholds:   thresholds,
		pollInterval: pollInterval,
		now:          time.Now,
	}
}

// Board returns the active orders, oldest first, with their undelivered items by batch
func (s *KitchenService) Board(ctx context.Context, restaurantID uuid.UUID, filter BoardFilter) (*BoardResponse, error) {
	orders, err := s.orderRepo.FindActiveForKitchen(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cards := make([]KitchenOrder, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if !hasActiveItems(o) {
			continue
		}
		if filter.Status != "" && o.Status.String() != filter.Status {
			continue
		}
		card := ToKitchenOrder(o, now, s.thresholds)
		if filter.Priority != "" && card.Priority != filter.Priority {
			continue
		}
		cards = append(cards, card)
	}

	return &BoardResponse{
		Orders:         cards,
		Count:          len(cards),
		PollIntervalMs: s.pollInterval.Milliseconds(),
		ServerTime:     now.UTC(),
	}, nil
}

// Summary counts active orders per status and per priority label
func (s *KitchenService) Summary(ctx context.Context, restaurantID uuid.UUID) (*SummaryResponse, error) {
	orders, err := s.orderRepo.FindActiveForKitchen(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resp := &SummaryResponse{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
		ServerTime: now.UTC(),
	}
	for _, st := range ordering.AllOrderStatuses() {
		if st.IsActive() {
			resp.ByStatus[st.String()] = 0
		}
	}
	for _, p := range ordering.AllPriorities() {
		resp.ByPriority[string(p)] = 0
	}

	for i := range orders {
		o := &orders[i]
		if !hasActiveItems(o) {
			continue
		}
		resp.ActiveOrders++
		resp.ByStatus[o.Status.String()]++
		resp.ByPriority[string(o.Priority(now, s.thresholds))]++
		for _, item := range o.Items {
			if item.Status.IsActive() {
				resp.ActiveItems++
			}
		}
	}
	return resp, nil
}

func hasActiveItems(o *ordering.Order) bool {
	for _, item := range o.Items {
		if item.Status.IsActive() {
			return true
		}
	}
	return false
}
