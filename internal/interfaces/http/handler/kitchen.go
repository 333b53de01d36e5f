package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	kitchenapp "github.com/qrdine/backend/internal/application/kitchen"
	orderingapp "github.com/qrdine/backend/internal/application/ordering"
)

// KitchenHandler serves the polled kitchen display and item progress
type KitchenHandler struct {
	BaseHandler
	kitchenService *kitchenapp.KitchenService
	orderService   *orderingapp.OrderService
}

// NewKitchenHandler creates a new KitchenHandler
func NewKitchenHandler(kitchenService *kitchenapp.KitchenService, orderService *orderingapp.OrderService) *KitchenHandler {
	return &KitchenHandler{
		kitchenService: kitchenService,
		orderService:   orderService,
	}
}

// Board godoc
// @Summary      Kitchen display
// @Description  Active orders oldest first with their undelivered items grouped by batch.
// @Description  X-Poll-Interval carries the suggested refresh period in milliseconds.
// @Tags         kitchen
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        status query string false "Order status"
// @Param        priority query string false "Priority" Enums(NORMAL, HIGH, URGENT)
// @Success      200 {object} dto.Response{data=kitchenapp.BoardResponse}
// @Router       /kitchen/orders [get]
func (h *KitchenHandler) Board(c *gin.Context) {
	var filter kitchenapp.BoardFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	board, err := h.kitchenService.Board(c.Request.Context(), getRestaurantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Header("X-Poll-Interval", strconv.FormatInt(board.PollIntervalMs, 10))
	h.Success(c, board)
}

// Summary godoc
// @Summary      Kitchen workload
// @Tags         kitchen
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Success      200 {object} dto.Response{data=kitchenapp.SummaryResponse}
// @Router       /kitchen/summary [get]
func (h *KitchenHandler) Summary(c *gin.Context) {
	summary, err := h.kitchenService.Summary(c.Request.Context(), getRestaurantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	h.Success(c, summary)
}

// AdvanceItem godoc
// @Summary      Advance an order item
// @Description  Moves the item one step; the order status follows its slowest item
// @Tags         kitchen
// @Accept       json
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Order item ID" format(uuid)
// @Param        request body kitchenapp.AdvanceItemRequest true "Owning order"
// @Success      200 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /kitchen/items/{id} [put]
func (h *KitchenHandler) AdvanceItem(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order item ID format")
		return
	}

	var req kitchenapp.AdvanceItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.AdvanceItem(c.Request.Context(), getRestaurantID(c), req.OrderID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
