package router

import (
	"github.com/qrdine/backend/internal/interfaces/http/handler"
	"github.com/qrdine/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the HTTP handlers mounted under /api
type Handlers struct {
	Restaurant *handler.RestaurantHandler
	Table      *handler.TableHandler
	Menu       *handler.MenuHandler
	Order      *handler.OrderHandler
	Kitchen    *handler.KitchenHandler
	Report     *handler.ReportHandler
}

// Limits sets the request body caps. Workbook uploads get their own, larger cap.
type Limits struct {
	MaxBodySize   int64
	MaxUploadSize int64
}

// RegisterAPI mounts every domain group. Staff endpoints require a restaurant
// scope; QR resolution and order placement by token do not.
func RegisterAPI(r *Router, h Handlers, limits Limits) *Router {
	if limits.MaxBodySize <= 0 {
		limits.MaxBodySize = 1 << 20
	}
	if limits.MaxUploadSize <= 0 {
		limits.MaxUploadSize = handler.DefaultMaxUploadSize
	}
	body := middleware.BodyLimit(limits.MaxBodySize)
	scope := middleware.RestaurantScope()

	restaurants := NewDomainGroup("restaurants", "/restaurants").Use(body)
	restaurants.POST("", h.Restaurant.Create)
	restaurants.GET("", h.Restaurant.List)
	restaurants.GET("/:id", h.Restaurant.GetByID)
	restaurants.PUT("/:id", h.Restaurant.Update)

	// Customer facing: the token alone identifies table and restaurant
	tablesPublic := NewDomainGroup("tables-public", "/tables").Use(body)
	tablesPublic.GET("/qr/:token", h.Table.ResolveQR)

	tables := NewDomainGroup("tables", "/tables").Use(body, scope)
	tables.GET("", h.Table.List)
	tables.POST("", h.Table.Create)
	tables.GET("/:id", h.Table.GetByID)
	tables.PUT("/:id", h.Table.Update)
	tables.DELETE("/:id", h.Table.Delete)
	tables.POST("/:id/token", h.Table.RegenerateToken)
	tables.PATCH("/:id/status", h.Table.SetStatus)
	tables.GET("/:id/orders/active", h.Table.ActiveOrder)

	menu := NewDomainGroup("menu", "/menu").Use(body, scope)
	menu.GET("", h.Menu.PublicMenu)
	menu.GET("/categories", h.Menu.Categories)
	menu.GET("/items", h.Menu.List)
	menu.POST("/items", h.Menu.Create)
	menu.GET("/items/:id", h.Menu.GetByID)
	menu.PUT("/items/:id", h.Menu.Update)
	menu.DELETE("/items/:id", h.Menu.Delete)
	menu.PATCH("/items/:id/availability", h.Menu.SetAvailability)
	menu.GET("/excel/template", h.Menu.Template)

	menuUpload := NewDomainGroup("menu-upload", "/menu").Use(middleware.BodyLimit(limits.MaxUploadSize), scope)
	menuUpload.POST("/excel", h.Menu.Import)

	ordersPublic := NewDomainGroup("orders-public", "/orders").Use(body, middleware.OptionalRestaurantScope())
	ordersPublic.POST("", h.Order.Place)

	orders := NewDomainGroup("orders", "/orders").Use(body, scope)
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.GetByID)
	orders.PUT("/:id", h.Order.Update)
	orders.POST("/:id/items", h.Order.AddItems)

	kitchen := NewDomainGroup("kitchen", "/kitchen").Use(body, scope)
	kitchen.GET("/orders", h.Kitchen.Board)
	kitchen.GET("/summary", h.Kitchen.Summary)
	kitchen.PUT("/items/:id", h.Kitchen.AdvanceItem)
	kitchen.POST("/orders/:id/batches/:batch/advance", h.Order.AdvanceBatch)

	reports := NewDomainGroup("reports", "/reports").Use(body, scope)
	reports.GET("/summary", h.Report.Summary)
	reports.GET("/daily-trend", h.Report.DailyTrend)
	reports.GET("/hourly", h.Report.Hourly)
	reports.GET("/top-items", h.Report.TopItems)
	reports.GET("/categories", h.Report.Categories)
	reports.GET("/tables", h.Report.Tables)
	reports.GET("/status-breakdown", h.Report.StatusBreakdown)

	return r.Register(restaurants).
		Register(tablesPublic).
		Register(tables).
		Register(menu).
		Register(menuUpload).
		Register(ordersPublic).
		Register(orders).
		Register(kitchen).
		Register(reports)
}
