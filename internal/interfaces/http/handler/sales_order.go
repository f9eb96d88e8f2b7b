package handler

import (
	salesapp "github.com/fieldsales/backend/internal/application/sales"
	"github.com/fieldsales/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesOrderHandler handles sales order endpoints, including the
// discount approval queue
type SalesOrderHandler struct {
	BaseHandler
	orderService *salesapp.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *salesapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Create a sales order
// @Description  Create a sales order; discounts above the agency limit enter the approval queue
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateSalesOrderRequest true "Sales order creation request"
// @Success      201 {object} dto.Response{data=salesapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/orders [post]
func (h *SalesOrderHandler) Create(c *gin.Context) {
	agencyID, actorID, ok := h.identity(c)
	if !ok {
		return
	}

	var req salesapp.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), agencyID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Sales order ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.SalesOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/orders/{id} [get]
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), agencyID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
// @Summary      List sales orders
// @Description  Paginated order list with status, customer, and search filters
// @Tags         sales-orders
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Order status filter"
// @Param        customer_id query string false "Customer filter" format(uuid)
// @Param        search query string false "Search in order number and customer name"
// @Success      200 {object} dto.Response{data=[]salesapp.SalesOrderResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /sales/orders [get]
func (h *SalesOrderHandler) List(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var filter salesapp.SalesOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.List(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListPendingApproval godoc
// @Summary      List orders awaiting discount approval
// @Description  The approval queue: PENDING orders whose discount exceeded the agency limit
// @Tags         approvals
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]salesapp.SalesOrderResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /sales/approvals [get]
func (h *SalesOrderHandler) ListPendingApproval(c *gin.Context) {
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

	result, err := h.orderService.ListPendingApproval(c.Request.Context(), agencyID, listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Approve godoc
// @Summary      Approve a pending order
// @Description  Superuser approval of an over-limit discount (PENDING only)
// @Tags         approvals
// @Produce      json
// @Param        id path string true "Sales order ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.SalesOrderResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/approvals/{id}/approve [post]
func (h *SalesOrderHandler) Approve(c *gin.Context) {
	agencyID, actorID, ok := h.identity(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Approve(c.Request.Context(), agencyID, orderID, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Reject godoc
// @Summary      Reject a pending order
// @Description  Superuser rejection with a mandatory reason (PENDING only)
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id path string true "Sales order ID" format(uuid)
// @Param        request body salesapp.RejectSalesOrderRequest true "Rejection reason"
// @Success      200 {object} dto.Response{data=salesapp.SalesOrderResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/approvals/{id}/reject [post]
func (h *SalesOrderHandler) Reject(c *gin.Context) {
	agencyID, actorID, ok := h.identity(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req salesapp.RejectSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Reject(c.Request.Context(), agencyID, orderID, actorID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel godoc
// @Summary      Cancel a sales order
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Sales order ID" format(uuid)
// @Param        request body salesapp.CancelSalesOrderRequest false "Cancellation reason"
// @Success      200 {object} dto.Response{data=salesapp.SalesOrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/orders/{id}/cancel [post]
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req salesapp.CancelSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), agencyID, orderID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Close godoc
// @Summary      Close a sales order
// @Description  Close a fully invoiced order
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Sales order ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.SalesOrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/orders/{id}/close [post]
func (h *SalesOrderHandler) Close(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Close(c.Request.Context(), agencyID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
