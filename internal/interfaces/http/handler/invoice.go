package handler

import (
	salesapp "github.com/fieldsales/backend/internal/application/sales"
	"github.com/fieldsales/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *salesapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *salesapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateDirect godoc
// @Summary      Issue a direct invoice
// @Description  Issue an invoice without a sales order; stock is decremented per line, failures surface as warnings
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateDirectInvoiceRequest true "Direct invoice request"
// @Success      201 {object} dto.Response{data=salesapp.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/invoices [post]
func (h *InvoiceHandler) CreateDirect(c *gin.Context) {
	agencyID, actorID, ok := h.identity(c)
	if !ok {
		return
	}

	var req salesapp.CreateDirectInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.CreateDirect(c.Request.Context(), agencyID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// ConvertOrder godoc
// @Summary      Invoice an approved order
// @Description  Issue an invoice for part or all of an approved order's remaining amount
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Sales order ID" format(uuid)
// @Param        request body salesapp.ConvertOrderToInvoiceRequest true "Order conversion request"
// @Success      201 {object} dto.Response{data=salesapp.InvoiceResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/orders/{id}/invoices [post]
func (h *InvoiceHandler) ConvertOrder(c *gin.Context) {
	agencyID, actorID, ok := h.identity(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req salesapp.ConvertOrderToInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.ConvertOrder(c.Request.Context(), agencyID, orderID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), agencyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ListByOrder godoc
// @Summary      List invoices for an order
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Sales order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]salesapp.InvoiceResponse}
// @Security     BearerAuth
// @Router       /sales/orders/{id}/invoices [get]
func (h *InvoiceHandler) ListByOrder(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	invoices, err := h.invoiceService.ListByOrder(c.Request.Context(), agencyID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoices)
}

// List godoc
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]salesapp.InvoiceResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /sales/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
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

	result, err := h.invoiceService.List(c.Request.Context(), agencyID, listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
