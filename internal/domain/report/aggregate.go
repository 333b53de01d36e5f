package report

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTopN and MaxTopN bound the best seller list
const (
	DefaultTopN = 10
	MaxTopN     = 100
)

// Summarize aggregates counted orders into the period summary
func Summarize(p Period, facts []OrderFact) Summary {
	s := Summary{
		PeriodStart:       p.StartLabel(),
		PeriodEnd:         p.EndLabel(),
		Revenue:           decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	for _, f := range facts {
		s.OrderCount++
		s.ItemQuantity += f.ItemQuantity
		s.Revenue = s.Revenue.Add(f.TotalAmount)
		if f.Reopened {
			s.ReopenedOrders++
		}
	}
	if s.OrderCount > 0 {
		s.AverageOrderValue = s.Revenue.Div(decimal.NewFromInt(s.OrderCount)).Round(2)
	}
	return s
}

// DailyTrend buckets orders by local day; days without orders are omitted
func DailyTrend(p Period, facts []OrderFact) []DailyPoint {
	byDay := make(map[string]*DailyPoint)
	for _, f := range facts {
		day := f.CreatedAt.In(p.Location).Format(DateLayout)
		point, ok := byDay[day]
		if !ok {
			point = &DailyPoint{Date: day, Revenue: decimal.Zero}
			byDay[day] = point
		}
		point.Orders++
		point.Revenue = point.Revenue.Add(f.TotalAmount)
		point.ItemsSold += f.ItemQuantity
	}

	points := make([]DailyPoint, 0, len(byDay))
	for _, point := range byDay {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// HourlyDistribution buckets orders into 24 local hours
func HourlyDistribution(p Period, facts []OrderFact) []HourlyPoint {
	points := make([]HourlyPoint, 24)
	for h := range points {
		points[h] = HourlyPoint{Hour: h, Revenue: decimal.Zero}
	}
	for _, f := range facts {
		h := f.CreatedAt.In(p.Location).Hour()
		points[h].Orders++
		points[h].Revenue = points[h].Revenue.Add(f.TotalAmount)
	}
	return points
}

// TableBreakdown aggregates orders per table, highest revenue first
func TableBreakdown(facts []OrderFact) []TableStat {
	byTable := make(map[uuid.UUID]*TableStat)
	for _, f := range facts {
		stat, ok := byTable[f.TableID]
		if !ok {
			stat = &TableStat{TableID: f.TableID, TableNumber: f.TableNumber, Revenue: decimal.Zero}
			byTable[f.TableID] = stat
		}
		stat.Orders++
		stat.Revenue = stat.Revenue.Add(f.TotalAmount)
	}

	stats := make([]TableStat, 0, len(byTable))
	for _, stat := range byTable {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].TableNumber < stats[j].TableNumber
	})
	return stats
}

// NormalizeTopN clamps the requested list size
func NormalizeTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

// RankItems orders menu items by quantity sold, then revenue, then name
func RankItems(sales []ItemSales, n int) []ItemRanking {
	n = NormalizeTopN(n)
	sorted := make([]ItemSales, len(sales))
	copy(sorted, sales)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	rankings := make([]ItemRanking, len(sorted))
	for i, s := range sorted {
		rankings[i] = ItemRanking{
			Rank:       i + 1,
			MenuItemID: s.MenuItemID,
			Name:       s.Name,
			Category:   s.Category,
			Quantity:   s.Quantity,
			Revenue:    s.Revenue,
			OrderCount: s.OrderCount,
		}
	}
	return rankings
}

// CategoryBreakdown aggregates item sales per category, highest revenue first
func CategoryBreakdown(sales []ItemSales) []CategoryStat {
	total := decimal.Zero
	byCategory := make(map[string]*CategoryStat)
	for _, s := range sales {
		stat, ok := byCategory[s.Category]
		if !ok {
			stat = &CategoryStat{Category: s.Category, Revenue: decimal.Zero}
			byCategory[s.Category] = stat
		}
		stat.Quantity += s.Quantity
		stat.Revenue = stat.Revenue.Add(s.Revenue)
		total = total.Add(s.Revenue)
	}

	stats := make([]CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		stat.Share = decimal.Zero
		if !total.IsZero() {
			stat.Share = stat.Revenue.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// CompleteStatusCounts returns one entry per known status in workflow order,
// filling the ones the query did not return with zero
func CompleteStatusCounts(statuses []string, counts []StatusCount) []StatusCount {
	byStatus := make(map[string]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	out := make([]StatusCount, len(statuses))
	for i, s := range statuses {
		out[i] = StatusCount{Status: s, Count: byStatus[s]}
	}
	return out
}
