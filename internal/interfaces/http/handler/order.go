package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	orderingapp "github.com/qrdine/backend/internal/application/ordering"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Place godoc
// @Summary      Place an order
// @Description  Customers send the table_token from the QR code; staff send table_id with a restaurant scope.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Restaurant-ID header string false "Restaurant ID (staff)"
// @Param        request body orderingapp.PlaceOrderRequest true "Order"
// @Success      201 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	var req orderingapp.PlaceOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), getRestaurantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        status query string false "Status" Enums(PENDING, CONFIRMED, PREPARING, READY, DELIVERED)
// @Param        table_id query string false "Table ID"
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]orderingapp.OrderListResponse,meta=dto.Meta}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderingapp.OrderListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), getRestaurantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), getRestaurantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Update godoc
// @Summary      Update an order
// @Description  Moves the status one step, edits the note, or reopens the order with new items
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body orderingapp.UpdateOrderRequest true "Changes"
// @Success      200 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.UpdateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), getRestaurantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// AddItems godoc
// @Summary      Reopen an order with more items
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body orderingapp.ReopenOrderRequest true "Items"
// @Success      200 {object} dto.Response{data=orderingapp.OrderResponse}
// @Router       /orders/{id}/items [post]
func (h *OrderHandler) AddItems(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.ReopenOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Reopen(c.Request.Context(), getRestaurantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// AdvanceBatch godoc
// @Summary      Advance a batch
// @Description  Moves every lagging item of the batch one step
// @Tags         kitchen
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Order ID" format(uuid)
// @Param        batch path int true "Batch number"
// @Success      200 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /kitchen/orders/{id}/batches/{batch}/advance [post]
func (h *OrderHandler) AdvanceBatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	batch, err := strconv.Atoi(c.Param("batch"))
	if err != nil || batch < 1 {
		h.BadRequest(c, "Batch must be a positive number")
		return
	}

	order, err := h.orderService.AdvanceBatch(c.Request.Context(), getRestaurantID(c), id, batch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
