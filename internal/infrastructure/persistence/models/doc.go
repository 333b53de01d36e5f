// Package models holds the GORM rows behind the restaurant, menu and ordering
// aggregates. Each file pairs a row type with ToDomain and FromDomain mappers;
// repositories never hand these types to callers.
//
// Every row owned by a restaurant embeds RestaurantAggregateModel, so scoping
// a query is always a restaurant_id filter. Money columns are decimal(12,2)
// and order lines keep name and price snapshots taken when the order was
// placed.
package models
