package handler

import (
	inventoryapp "github.com/fieldsales/backend/internal/application/inventory"
	"github.com/fieldsales/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler handles inventory item and stock ledger endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.Service) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Register godoc
// @Summary      Register an inventory item
// @Description  Create the stock record for a product with an initial quantity
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.RegisterItemRequest true "Item registration request"
// @Success      201 {object} dto.Response{data=inventoryapp.ItemResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/items [post]
func (h *InventoryHandler) Register(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var req inventoryapp.RegisterItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.inventoryService.Register(c.Request.Context(), agencyID, req.ProductID, req.ProductName, req.InitialQuantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// GetByProduct godoc
// @Summary      Get stock for a product
// @Tags         inventory
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.ItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/items/product/{product_id} [get]
func (h *InventoryHandler) GetByProduct(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	item, err := h.inventoryService.GetByProduct(c.Request.Context(), agencyID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// List godoc
// @Summary      List inventory items
// @Tags         inventory
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]inventoryapp.ItemResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /inventory/items [get]
func (h *InventoryHandler) List(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.Normalize()

	result, err := h.inventoryService.List(c.Request.Context(), agencyID, listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Adjust godoc
// @Summary      Apply a manual stock adjustment
// @Description  Positive quantities add stock, negative quantities remove it; both are recorded in the ledger
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.AdjustStockRequest true "Adjustment request"
// @Success      200 {object} dto.Response{data=inventoryapp.ItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	agencyID, actorID, ok := h.identity(c)
	if !ok {
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.inventoryService.Adjust(c.Request.Context(), agencyID, req.ProductID, req.Quantity, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// ListTransactions godoc
// @Summary      List the stock ledger for an item
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Inventory item ID" format(uuid)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]inventoryapp.TransactionResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /inventory/items/{id}/transactions [get]
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.Normalize()

	result, err := h.inventoryService.ListTransactions(c.Request.Context(), agencyID, itemID, listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
