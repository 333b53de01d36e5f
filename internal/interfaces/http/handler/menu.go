package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	menuapp "github.com/qrdine/backend/internal/application/menu"
	"github.com/qrdine/backend/internal/interfaces/http/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultMaxUploadSize caps menu workbook uploads
const DefaultMaxUploadSize int64 = 5 << 20

// MenuHandler handles menu endpoints: the public menu, staff CRUD and
// the xlsx import/export.
type MenuHandler struct {
	BaseHandler
	menuService   *menuapp.MenuService
	importService *menuapp.MenuImportService
	maxUploadSize int64
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(menuService *menuapp.MenuService, importService *menuapp.MenuImportService, maxUploadSize int64) *MenuHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &MenuHandler{
		menuService:   menuService,
		importService: importService,
		maxUploadSize: maxUploadSize,
	}
}

// PublicMenu godoc
// @Summary      Customer menu
// @Description  Available items grouped by category
// @Tags         menu
// @Produce      json
// @Param        restaurant_id query string true "Restaurant ID"
// @Success      200 {object} dto.Response{data=menuapp.PublicMenuResponse}
// @Router       /menu [get]
func (h *MenuHandler) PublicMenu(c *gin.Context) {
	m, err := h.menuService.PublicMenu(c.Request.Context(), getRestaurantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// List godoc
// @Summary      List menu items
// @Tags         menu
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        search query string false "Name or description"
// @Param        category query string false "Category"
// @Param        is_available query bool false "Availability"
// @Success      200 {object} dto.Response{data=[]menuapp.MenuItemResponse,meta=dto.Meta}
// @Router       /menu/items [get]
func (h *MenuHandler) List(c *gin.Context) {
	var filter menuapp.MenuItemListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.menuService.List(c.Request.Context(), getRestaurantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Categories godoc
// @Summary      Menu categories
// @Tags         menu
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Success      200 {object} dto.Response{data=[]string}
// @Router       /menu/categories [get]
func (h *MenuHandler) Categories(c *gin.Context) {
	categories, err := h.menuService.Categories(c.Request.Context(), getRestaurantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Create godoc
// @Summary      Create a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        request body menuapp.CreateMenuItemRequest true "Menu item"
// @Success      201 {object} dto.Response{data=menuapp.MenuItemResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /menu/items [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req menuapp.CreateMenuItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.menuService.Create(c.Request.Context(), getRestaurantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// GetByID godoc
// @Summary      Get a menu item
// @Tags         menu
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Menu item ID" format(uuid)
// @Success      200 {object} dto.Response{data=menuapp.MenuItemResponse}
// @Router       /menu/items/{id} [get]
func (h *MenuHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID format")
		return
	}

	item, err := h.menuService.GetByID(c.Request.Context(), getRestaurantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update godoc
// @Summary      Update a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Menu item ID" format(uuid)
// @Param        request body menuapp.UpdateMenuItemRequest true "Changes"
// @Success      200 {object} dto.Response{data=menuapp.MenuItemResponse}
// @Router       /menu/items/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID format")
		return
	}

	var req menuapp.UpdateMenuItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.menuService.Update(c.Request.Context(), getRestaurantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// SetAvailability godoc
// @Summary      Toggle availability
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Menu item ID" format(uuid)
// @Param        request body menuapp.SetAvailabilityRequest true "Availability"
// @Success      200 {object} dto.Response{data=menuapp.MenuItemResponse}
// @Router       /menu/items/{id}/availability [patch]
func (h *MenuHandler) SetAvailability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID format")
		return
	}

	var req menuapp.SetAvailabilityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.menuService.SetAvailability(c.Request.Context(), getRestaurantID(c), id, *req.IsAvailable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete a menu item
// @Description  Items referenced by orders cannot be deleted; mark them unavailable instead
// @Tags         menu
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        id path string true "Menu item ID" format(uuid)
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /menu/items/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid menu item ID format")
		return
	}

	if err := h.menuService.Delete(c.Request.Context(), getRestaurantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Import godoc
// @Summary      Import the menu from a workbook
// @Description  Upserts items by name. Row level problems are reported, valid rows are still applied.
// @Tags         menu
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Param        file formData file true "xlsx workbook"
// @Success      200 {object} dto.Response{data=menuapp.MenuImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /menu/excel [post]
func (h *MenuHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A workbook must be uploaded in the 'file' field")
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge,
			fmt.Sprintf("Workbook exceeds the %d byte limit", h.maxUploadSize))
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		h.BadRequest(c, "Only .xlsx workbooks are supported")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read the uploaded workbook")
		return
	}
	defer f.Close()

	result, err := h.importService.Import(c.Request.Context(), getRestaurantID(c), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Template godoc
// @Summary      Download the menu workbook
// @Description  Header row followed by the current menu, ready to edit and re-import
// @Tags         menu
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        X-Restaurant-ID header string true "Restaurant ID"
// @Success      200 {file} binary
// @Router       /menu/excel/template [get]
func (h *MenuHandler) Template(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.importService.ExportTemplate(c.Request.Context(), getRestaurantID(c), &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="menu.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
