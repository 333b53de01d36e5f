package handler

import (
	"github.com/gin-gonic/gin"
	restaurantapp "github.com/qrdine/backend/internal/application/restaurant"
)

// RestaurantHandler handles restaurant API endpoints
type RestaurantHandler struct {
	BaseHandler
	restaurantService *restaurantapp.RestaurantService
}

// NewRestaurantHandler creates a new RestaurantHandler
func NewRestaurantHandler(restaurantService *restaurantapp.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// Create godoc
// @Summary      Create a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        request body restaurantapp.CreateRestaurantRequest true "Restaurant"
// @Success      201 {object} dto.Response{data=restaurantapp.RestaurantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /restaurants [post]
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req restaurantapp.CreateRestaurantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r, err := h.restaurantService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// GetByID godoc
// @Summary      Get a restaurant
// @Tags         restaurants
// @Produce      json
// @Param        id path string true "Restaurant ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.RestaurantResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /restaurants/{id} [get]
func (h *RestaurantHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid restaurant ID format")
		return
	}

	r, err := h.restaurantService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// List godoc
// @Summary      List restaurants
// @Tags         restaurants
// @Produce      json
// @Param        search query string false "Name or slug"
// @Param        is_active query bool false "Active filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]restaurantapp.RestaurantResponse,meta=dto.Meta}
// @Router       /restaurants [get]
func (h *RestaurantHandler) List(c *gin.Context) {
	var filter restaurantapp.RestaurantListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	list, total, err := h.restaurantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        id path string true "Restaurant ID" format(uuid)
// @Param        request body restaurantapp.UpdateRestaurantRequest true "Changes"
// @Success      200 {object} dto.Response{data=restaurantapp.RestaurantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /restaurants/{id} [put]
func (h *RestaurantHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid restaurant ID format")
		return
	}

	var req restaurantapp.UpdateRestaurantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r, err := h.restaurantService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}
