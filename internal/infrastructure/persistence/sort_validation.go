package persistence

import (
	"strings"

	"github.com/qrdine/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortPolicy allow-lists the columns a listing may be ordered by. Anything not
// listed, including injection attempts, falls back to the default column.
type sortPolicy struct {
	columns      map[string]struct{}
	defaultField string
	// tiebreak is appended when ordering by another column, keeping pages stable
	tiebreak string
}

func newSortPolicy(defaultField, tiebreak string, columns ...string) sortPolicy {
	s := sortPolicy{
		columns:      make(map[string]struct{}, len(columns)+3),
		defaultField: defaultField,
		tiebreak:     tiebreak,
	}
	for _, c := range append(columns, "id", "created_at", "updated_at") {
		s.columns[c] = struct{}{}
	}
	return s
}

// resolve returns the column to order by and whether it is descending.
// Only an explicit "asc" sorts ascending.
func (s sortPolicy) resolve(orderBy, orderDir string) (string, bool) {
	column := strings.TrimSpace(orderBy)
	if _, ok := s.columns[column]; !ok {
		column = s.defaultField
	}
	desc := !strings.EqualFold(strings.TrimSpace(orderDir), "asc")
	return column, desc
}

func (s sortPolicy) apply(query *gorm.DB, filter shared.Filter) *gorm.DB {
	column, desc := s.resolve(filter.OrderBy, filter.OrderDir)
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	if s.tiebreak != "" && column != s.tiebreak {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: s.tiebreak}})
	}
	return query
}

var (
	restaurantSort = newSortPolicy("name", "", "name", "slug", "is_active")
	tableSort      = newSortPolicy("number", "", "number", "seats", "is_active")
	menuItemSort   = newSortPolicy("sort_order", "name", "name", "category", "price", "sort_order", "is_available")
	orderSort      = newSortPolicy("created_at", "", "order_number", "table_number", "status", "total_amount", "delivered_at")
)
