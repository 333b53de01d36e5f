package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/qrdine/backend/internal/domain/report"
	"github.com/qrdine/backend/internal/domain/restaurant"
)

// ReportQuery is the common query string of the analytics endpoints.
// Dates are YYYY-MM-DD in the restaurant's timezone; both ends are inclusive.
type ReportQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	TopN      int    `form:"top_n" binding:"omitempty,min=1,max=100"`
}

// PeriodInfo describes the period a report covers
type PeriodInfo struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
	Timezone  string `json:"timezone"`
	Currency  string `json:"currency"`
}

// ReportResponse wraps report data with its period
type ReportResponse[T any] struct {
	Period PeriodInfo `json:"period"`
	Data   T          `json:"data"`
}

// ReportService provides the analytics reports of a restaurant
type ReportService struct {
	reportRepo     report.Repository
	restaurantRepo restaurant.RestaurantRepository
	now            func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo report.Repository, restaurantRepo restaurant.RestaurantRepository) *ReportService {
	return &ReportService{
		reportRepo:     reportRepo,
		restaurantRepo: restaurantRepo,
		now:            time.Now,
	}
}

// ===================== Order based reports =====================

// Summary returns order count, revenue and average order value
func (s *ReportService) Summary(ctx context.Context, restaurantID uuid.UUID, q ReportQuery) (*ReportResponse[report.Summary], error) {
	p, info, filter, err := s.prepare(ctx, restaurantID, q)
	if err != nil {
		return nil, err
	}
	facts, err := s.reportRepo.OrderFacts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ReportResponse[report.Summary]{Period: info, Data: report.Summarize(p, facts)}, nil
}

// DailyTrend returns orders and revenue per local day
func (s *ReportService) DailyTrend(ctx context.Context, restaurantID uuid.UUID, q ReportQuery) (*ReportResponse[[]report.DailyPoint], error) {
	p, info, filter, err := s.prepare(ctx, restaurantID, q)
	if err != nil {
		return nil, err
	}
	facts, err := s.reportRepo.OrderFacts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ReportResponse[[]report.DailyPoint]{Period: info, Data: report.DailyTrend(p, facts)}, nil
}

// Hourly returns orders and revenue per local hour of the day
func (s *ReportService) Hourly(ctx context.Context, restaurantID uuid.UUID, q ReportQuery) (*ReportResponse[[]report.HourlyPoint], error) {
	p, info, filter, err := s.prepare(ctx, restaurantID, q)
	if err != nil {
		return nil, err
	}
	facts, err := s.reportRepo.OrderFacts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ReportResponse[[]report.HourlyPoint]{Period: info, Data: report.HourlyDistribution(p, facts)}, nil
}

// Tables returns orders and revenue per table
func (s *ReportService) Tables(ctx context.Context, restaurantID uuid.UUID, q ReportQuery) (*ReportResponse[[]report.TableStat], error) {
	_, info, filter, err := s.prepare(ctx, restaurantID, q)
	if err != nil {
		return nil, err
	}
	facts, err := s.reportRepo.OrderFacts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ReportResponse[[]report.TableStat]{Period: info, Data: report.TableBreakdown(facts)}, nil
}

// ===================== Item based reports =====================

// TopItems returns the best selling menu items by quantity
func (s *ReportService) TopItems(ctx context.Context, restaurantID uuid.UUID, q ReportQuery) (*ReportResponse[[]report.ItemRanking], error) {
	_, info, filter, err := s.prepare(ctx, restaurantID, q)
	if err != nil {
		return nil, err
	}
	sales, err := s.reportRepo.ItemSales(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ReportResponse[[]report.ItemRanking]{Period: info, Data: report.RankItems(sales, filter.TopN)}, nil
}

// Categories returns revenue and quantity per menu category
func (s *ReportService) Categories(ctx context.Context, restaurantID uuid.UUID, q ReportQuery) (*ReportResponse[[]report.CategoryStat], error) {
	_, info, filter, err := s.prepare(ctx, restaurantID, q)
	if err != nil {
		return nil, err
	}
	sales, err := s.reportRepo.ItemSales(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ReportResponse[[]report.CategoryStat]{Period: info, Data: report.CategoryBreakdown(sales)}, nil
}

// StatusBreakdown counts orders of every status created in the period
func (s *ReportService) StatusBreakdown(ctx context.Context, restaurantID uuid.UUID, q ReportQuery) (*ReportResponse[[]report.StatusCount], error) {
	_, info, filter, err := s.prepare(ctx, restaurantID, q)
	if err != nil {
		return nil, err
	}
	counts, err := s.reportRepo.StatusCounts(ctx, filter)
	if err != nil {
		return nil, err
	}

	statuses := make([]string, 0, 5)
	for _, st := range ordering.AllOrderStatuses() {
		statuses = append(statuses, st.String())
	}
	return &ReportResponse[[]report.StatusCount]{Period: info, Data: report.CompleteStatusCounts(statuses, counts)}, nil
}

// prepare resolves the restaurant timezone and turns the query into a period and filter
func (s *ReportService) prepare(ctx context.Context, restaurantID uuid.UUID, q ReportQuery) (report.Period, PeriodInfo, report.Filter, error) {
	r, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		return report.Period{}, PeriodInfo{}, report.Filter{}, err
	}

	p, err := report.ParsePeriod(q.StartDate, q.EndDate, r.Location(), s.now())
	if err != nil {
		return report.Period{}, PeriodInfo{}, report.Filter{}, err
	}

	info := PeriodInfo{
		StartDate: p.StartLabel(),
		EndDate:   p.EndLabel(),
		Days:      p.Days(),
		Timezone:  r.Location().String(),
		Currency:  r.Currency,
	}
	filter := p.Filter(report.Filter{
		RestaurantID: restaurantID,
		TopN:         report.NormalizeTopN(q.TopN),
	})
	return p, info, filter, nil
}
