package handler

import (
	"strings"

	pricingapp "github.com/fieldsales/backend/internal/application/pricing"
	"github.com/fieldsales/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DiscountRuleHandler handles discount rule and evaluation endpoints
type DiscountRuleHandler struct {
	BaseHandler
	pricingService *pricingapp.Service
}

// NewDiscountRuleHandler creates a new DiscountRuleHandler
func NewDiscountRuleHandler(pricingService *pricingapp.Service) *DiscountRuleHandler {
	return &DiscountRuleHandler{pricingService: pricingService}
}

// Create godoc
// @Summary      Create a discount rule
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request body pricingapp.CreateRuleRequest true "Rule creation request"
// @Success      201 {object} dto.Response{data=pricingapp.RuleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/rules [post]
func (h *DiscountRuleHandler) Create(c *gin.Context) {
	agencyID, actorID, ok := h.identity(c)
	if !ok {
		return
	}

	var req pricingapp.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rule, err := h.pricingService.CreateRule(c.Request.Context(), agencyID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rule)
}

// GetByID godoc
// @Summary      Get a discount rule by ID
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Rule ID" format(uuid)
// @Success      200 {object} dto.Response{data=pricingapp.RuleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/rules/{id} [get]
func (h *DiscountRuleHandler) GetByID(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	rule, err := h.pricingService.GetRule(c.Request.Context(), agencyID, ruleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rule)
}

// List godoc
// @Summary      List discount rules
// @Tags         pricing
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]pricingapp.RuleResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /pricing/rules [get]
func (h *DiscountRuleHandler) List(c *gin.Context) {
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

	result, err := h.pricingService.ListRules(c.Request.Context(), agencyID, listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListApplicable godoc
// @Summary      List rules applicable to the given scope references
// @Description  Returns active, in-window rules whose scope matches the agency or any of the supplied product/customer IDs
// @Tags         pricing
// @Produce      json
// @Param        scope_refs query string false "Comma-separated scope reference IDs"
// @Success      200 {object} dto.Response{data=[]pricingapp.RuleResponse}
// @Security     BearerAuth
// @Router       /pricing/rules/applicable [get]
func (h *DiscountRuleHandler) ListApplicable(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var scopeRefs []uuid.UUID
	if raw := c.Query("scope_refs"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			ref, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				h.BadRequest(c, "Invalid scope reference ID format")
				return
			}
			scopeRefs = append(scopeRefs, ref)
		}
	}

	rules, err := h.pricingService.ListApplicable(c.Request.Context(), agencyID, scopeRefs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rules)
}

// RecordUsage godoc
// @Summary      Record one usage of a rule
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Rule ID" format(uuid)
// @Success      200 {object} dto.Response{data=pricingapp.RuleResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/rules/{id}/usages [post]
func (h *DiscountRuleHandler) RecordUsage(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	rule, err := h.pricingService.RecordUsage(c.Request.Context(), agencyID, ruleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rule)
}

// Deactivate godoc
// @Summary      Deactivate a discount rule
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Rule ID" format(uuid)
// @Success      200 {object} dto.Response{data=pricingapp.RuleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/rules/{id} [delete]
func (h *DiscountRuleHandler) Deactivate(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	rule, err := h.pricingService.DeactivateRule(c.Request.Context(), agencyID, ruleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rule)
}

// Evaluate godoc
// @Summary      Evaluate a requested discount
// @Description  Checks the requested discount against the agency limit and reports whether approval is required
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request body pricingapp.EvaluateDiscountRequest true "Evaluation request"
// @Success      200 {object} dto.Response{data=pricingapp.VerdictResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/evaluate [post]
func (h *DiscountRuleHandler) Evaluate(c *gin.Context) {
	agencyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var req pricingapp.EvaluateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	verdict, err := h.pricingService.Evaluate(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, verdict)
}
