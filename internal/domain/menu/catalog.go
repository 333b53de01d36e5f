package menu

import (
	"sort"
	"strings"
)

// Section is one category of the customer facing menu
type Section struct {
	Category string
	Items    []MenuItem
}

// GroupByCategory builds the customer facing menu: unavailable items are dropped,
// sections are sorted by category name and items by sort order then name.
func GroupByCategory(items []MenuItem) []Section {
	byCategory := make(map[string][]MenuItem)
	for _, item := range items {
		if !item.IsAvailable {
			continue
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	sections := make([]Section, 0, len(byCategory))
	for category, list := range byCategory {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].SortOrder != list[j].SortOrder {
				return list[i].SortOrder < list[j].SortOrder
			}
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
		sections = append(sections, Section{Category: category, Items: list})
	}
	sort.Slice(sections, func(i, j int) bool {
		return strings.ToLower(sections[i].Category) < strings.ToLower(sections[j].Category)
	})
	return sections
}
