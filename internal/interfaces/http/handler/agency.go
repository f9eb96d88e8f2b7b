package handler

import (
	partnerapp "github.com/fieldsales/backend/internal/application/partner"
	"github.com/fieldsales/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AgencyHandler handles agency administration endpoints. All routes are
// restricted to superusers at the router level.
type AgencyHandler struct {
	BaseHandler
	agencyService *partnerapp.AgencyService
}

// NewAgencyHandler creates a new AgencyHandler
func NewAgencyHandler(agencyService *partnerapp.AgencyService) *AgencyHandler {
	return &AgencyHandler{agencyService: agencyService}
}

// Create godoc
// @Summary      Create an agency
// @Tags         agencies
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateAgencyRequest true "Agency creation request"
// @Success      201 {object} dto.Response{data=partnerapp.AgencyResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /agencies [post]
func (h *AgencyHandler) Create(c *gin.Context) {
	var req partnerapp.CreateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	agency, err := h.agencyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, agency)
}

// GetByID godoc
// @Summary      Get an agency by ID
// @Tags         agencies
// @Produce      json
// @Param        id path string true "Agency ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.AgencyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /agencies/{id} [get]
func (h *AgencyHandler) GetByID(c *gin.Context) {
	agencyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid agency ID format")
		return
	}

	agency, err := h.agencyService.GetByID(c.Request.Context(), agencyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agency)
}

// List godoc
// @Summary      List agencies
// @Tags         agencies
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]partnerapp.AgencyResponse}
// @Security     BearerAuth
// @Router       /agencies [get]
func (h *AgencyHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.Normalize()

	agencies, err := h.agencyService.List(c.Request.Context(), listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agencies)
}

// SetDiscountLimit godoc
// @Summary      Set or clear an agency's discount approval limit
// @Description  Orders with a discount at or below the limit auto-approve; a null limit reverts to the policy default
// @Tags         agencies
// @Accept       json
// @Produce      json
// @Param        id path string true "Agency ID" format(uuid)
// @Param        request body partnerapp.SetDiscountLimitRequest true "Limit request"
// @Success      200 {object} dto.Response{data=partnerapp.AgencyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /agencies/{id}/discount-limit [put]
func (h *AgencyHandler) SetDiscountLimit(c *gin.Context) {
	agencyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid agency ID format")
		return
	}

	var req partnerapp.SetDiscountLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	agency, err := h.agencyService.SetDiscountLimit(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agency)
}

// Deactivate godoc
// @Summary      Deactivate an agency
// @Tags         agencies
// @Produce      json
// @Param        id path string true "Agency ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.AgencyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /agencies/{id} [delete]
func (h *AgencyHandler) Deactivate(c *gin.Context) {
	agencyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid agency ID format")
		return
	}

	agency, err := h.agencyService.Deactivate(c.Request.Context(), agencyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agency)
}
