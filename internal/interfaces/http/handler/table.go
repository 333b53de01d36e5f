package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	orderingapp "github.com/qrdine/backend/internal/application/ordering"
	restaurantapp "github.com/qrdine/backend/internal/application/restaurant"
)

// TableHandler handles dining table endpoints, including QR token resolution
type TableHandler struct {
	BaseHandler
	tableService *restaurantapp.TableService
	orderService *orderingapp.OrderService
}

// NewTableHandler creates a new TableHandler
func NewTableHandler(tableService *restaurantapp.TableService, orderService *orderingapp.OrderService) *TableHandler {
	return &TableHandler{
		tableService: tableService,
		orderService: orderService,
	}
}

// Create godoc
// @Summary      Create a table
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        request body restaurantapp.CreateTableRequest true "Table"
// @Success      201 {object} dto.Response{data=restaurantapp.TableResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tables [post]
func (h *TableHandler) Create(c *gin.Context) {
	var req restaurantapp.CreateTableRequest
	if !h.BindJSON(c, &req) {
		return
	}

	table, err := h.tableService.Create(c.Request.Context(), getRestaurantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, table)
}

// GetByID godoc
// @Summary      Get a table
// @Tags         tables
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Table ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.TableResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tables/{id} [get]
func (h *TableHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	table, err := h.tableService.GetByID(c.Request.Context(), getRestaurantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, table)
}

// List godoc
// @Summary      List tables
// @Tags         tables
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        search query string false "Table number"
// @Param        is_active query bool false "Active filter"
// @Success      200 {object} dto.Response{data=[]restaurantapp.TableResponse,meta=dto.Meta}
// @Router       /tables [get]
func (h *TableHandler) List(c *gin.Context) {
	var filter restaurantapp.TableListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	tables, total, err := h.tableService.List(c.Request.Context(), getRestaurantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, tables, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a table
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Table ID" format(uuid)
// @Param        request body restaurantapp.UpdateTableRequest true "Changes"
// @Success      200 {object} dto.Response{data=restaurantapp.TableResponse}
// @Router       /tables/{id} [put]
func (h *TableHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	var req restaurantapp.UpdateTableRequest
	if !h.BindJSON(c, &req) {
		return
	}

	table, err := h.tableService.Update(c.Request.Context(), getRestaurantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, table)
}

// SetStatus godoc
// @Summary      Activate or deactivate a table
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Table ID" format(uuid)
// @Param        request body restaurantapp.SetTableStatusRequest true "Status"
// @Success      200 {object} dto.Response{data=restaurantapp.TableResponse}
// @Router       /tables/{id}/status [patch]
func (h *TableHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	var req restaurantapp.SetTableStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	table, err := h.tableService.SetActive(c.Request.Context(), getRestaurantID(c), id, *req.IsActive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, table)
}

// RegenerateToken godoc
// @Summary      Issue a new QR token
// @Description  The previous token stops resolving immediately
// @Tags         tables
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Table ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.TableResponse}
// @Router       /tables/{id}/token [post]
func (h *TableHandler) RegenerateToken(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	table, err := h.tableService.RegenerateToken(c.Request.Context(), getRestaurantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, table)
}

// Delete godoc
// @Summary      Delete a table
// @Tags         tables
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Table ID" format(uuid)
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tables/{id} [delete]
func (h *TableHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	if err := h.tableService.Delete(c.Request.Context(), getRestaurantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ResolveQR godoc
// @Summary      Resolve a scanned QR token
// @Description  Public. Returns the table and restaurant a customer is ordering for.
// @Tags         tables
// @Produce      json
// @Param        token path string true "QR token"
// @Success      200 {object} dto.Response{data=restaurantapp.TableContextResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tables/qr/{token} [get]
func (h *TableHandler) ResolveQR(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		h.BadRequest(c, "QR token is required")
		return
	}

	tableCtx, err := h.tableService.ResolveToken(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tableCtx)
}

// ActiveOrder godoc
// @Summary      Current order of a table
// @Tags         tables
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Table ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tables/{id}/orders/active [get]
func (h *TableHandler) ActiveOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	order, err := h.orderService.ActiveForTable(c.Request.Context(), getRestaurantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
