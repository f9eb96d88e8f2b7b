package handler

import (
	salesapp "github.com/fieldsales/backend/internal/application/sales"
	"github.com/fieldsales/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesReturnHandler handles sales return endpoints
type SalesReturnHandler struct {
	BaseHandler
	returnService *salesapp.ReturnService
}

// NewSalesReturnHandler creates a new SalesReturnHandler
func NewSalesReturnHandler(returnService *salesapp.ReturnService) *SalesReturnHandler {
	return &SalesReturnHandler{returnService: returnService}
}

// Create godoc
// @Summary      Create a sales return
// @Description  Record returned items, optionally linked to an invoice; stock is restored per line
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateSalesReturnRequest true "Sales return request"
// @Success      201 {object} dto.Response{data=salesapp.SalesReturnResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/returns [post]
func (h *SalesReturnHandler) Create(c *gin.Context) {
	agencyID, actorID, ok := h.identity(c)
	if !ok {
		return
	}

	var req salesapp.CreateSalesReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ret, err := h.returnService.Create(c.Request.Context(), agencyID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ret)
}

// LinkInvoice godoc
// @Summary      Link a return to an invoice
// @Description  Attach a deferred invoice reference; per-item caps are re-validated against the invoice
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        id path string true "Return ID" format(uuid)
// @Param        request body salesapp.LinkReturnInvoiceRequest true "Invoice link request"
// @Success      200 {object} dto.Response{data=salesapp.SalesReturnResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/returns/{id}/invoice [put]
func (h *SalesReturnHandler) LinkInvoice(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	var req salesapp.LinkReturnInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ret, err := h.returnService.LinkInvoice(c.Request.Context(), agencyID, returnID, req.InvoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}

// GetByID godoc
// @Summary      Get a sales return
// @Tags         returns
// @Produce      json
// @Param        id path string true "Return ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.SalesReturnResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/returns/{id} [get]
func (h *SalesReturnHandler) GetByID(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	ret, err := h.returnService.GetByID(c.Request.Context(), agencyID, returnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}

// List godoc
// @Summary      List sales returns
// @Tags         returns
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]salesapp.SalesReturnResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /sales/returns [get]
func (h *SalesReturnHandler) List(c *gin.Context) {
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

	result, err := h.returnService.List(c.Request.Context(), agencyID, listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
