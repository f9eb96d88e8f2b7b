package handler

import (
	salesapp "github.com/fieldsales/backend/internal/application/sales"
	"github.com/fieldsales/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeliveryHandler handles delivery endpoints
type DeliveryHandler struct {
	BaseHandler
	deliveryService *salesapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService *salesapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// Create godoc
// @Summary      Create a delivery
// @Description  Assign an invoice delivery to an agent
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateDeliveryRequest true "Delivery creation request"
// @Success      201 {object} dto.Response{data=salesapp.DeliveryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/deliveries [post]
func (h *DeliveryHandler) Create(c *gin.Context) {
	agencyID, actorID, ok := h.identity(c)
	if !ok {
		return
	}

	var req salesapp.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	delivery, err := h.deliveryService.Create(c.Request.Context(), agencyID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, delivery)
}

// GetByID godoc
// @Summary      Get a delivery
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.DeliveryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	delivery, err := h.deliveryService.GetByID(c.Request.Context(), agencyID, deliveryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, delivery)
}

// ListByAgent godoc
// @Summary      List deliveries assigned to an agent
// @Tags         deliveries
// @Produce      json
// @Param        agent_id path string true "Agent ID" format(uuid)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]salesapp.DeliveryResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /sales/deliveries/agent/{agent_id} [get]
func (h *DeliveryHandler) ListByAgent(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	agentID, err := uuid.Parse(c.Param("agent_id"))
	if err != nil {
		h.BadRequest(c, "Invalid agent ID format")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.Normalize()

	result, err := h.deliveryService.ListByAgent(c.Request.Context(), agencyID, agentID, listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Dispatch godoc
// @Summary      Dispatch a delivery
// @Description  Move a pending delivery out for delivery
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.DeliveryResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/deliveries/{id}/dispatch [post]
func (h *DeliveryHandler) Dispatch(c *gin.Context) {
	h.transition(c, func(agencyID, deliveryID uuid.UUID) (*salesapp.DeliveryResponse, error) {
		return h.deliveryService.Dispatch(c.Request.Context(), agencyID, deliveryID)
	})
}

// Complete godoc
// @Summary      Complete a delivery
// @Description  Confirm hand-off with receiver signature and name; delivered is terminal
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Param        request body salesapp.CompleteDeliveryRequest true "Completion proof"
// @Success      200 {object} dto.Response{data=salesapp.DeliveryResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/deliveries/{id}/complete [post]
func (h *DeliveryHandler) Complete(c *gin.Context) {
	var req salesapp.CompleteDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.transition(c, func(agencyID, deliveryID uuid.UUID) (*salesapp.DeliveryResponse, error) {
		return h.deliveryService.Complete(c.Request.Context(), agencyID, deliveryID, req)
	})
}

// Fail godoc
// @Summary      Mark a delivery attempt as failed
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Param        request body salesapp.FailDeliveryRequest true "Failure reason"
// @Success      200 {object} dto.Response{data=salesapp.DeliveryResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/deliveries/{id}/fail [post]
func (h *DeliveryHandler) Fail(c *gin.Context) {
	var req salesapp.FailDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.transition(c, func(agencyID, deliveryID uuid.UUID) (*salesapp.DeliveryResponse, error) {
		return h.deliveryService.Fail(c.Request.Context(), agencyID, deliveryID, req.Reason)
	})
}

// Cancel godoc
// @Summary      Cancel a delivery
// @Description  Cancel a non-terminal delivery
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.DeliveryResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/deliveries/{id}/cancel [post]
func (h *DeliveryHandler) Cancel(c *gin.Context) {
	h.transition(c, func(agencyID, deliveryID uuid.UUID) (*salesapp.DeliveryResponse, error) {
		return h.deliveryService.Cancel(c.Request.Context(), agencyID, deliveryID)
	})
}

func (h *DeliveryHandler) transition(c *gin.Context, apply func(agencyID, deliveryID uuid.UUID) (*salesapp.DeliveryResponse, error)) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	delivery, err := apply(agencyID, deliveryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, delivery)
}
