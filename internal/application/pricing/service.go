package pricing

import (
	"context"
	"time"

	"github.com/fieldsales/backend/internal/domain/pricing"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgencyLimitSource resolves the configured discount ceiling for an agency
type AgencyLimitSource interface {
	DiscountLimit(ctx context.Context, agencyID uuid.UUID) (*decimal.Decimal, error)
}

// Service manages discount and promotional rules and exposes the discount
// verdict for ad-hoc evaluation (the UI pre-checks before order submission).
type Service struct {
	ruleRepo pricing.DiscountRuleRepository
	limits   AgencyLimitSource
	policy   *pricing.DiscountPolicy
}

// NewService creates a new pricing Service
func NewService(ruleRepo pricing.DiscountRuleRepository, limits AgencyLimitSource, policy *pricing.DiscountPolicy) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		limits:   limits,
		policy:   policy,
	}
}

// Evaluate returns the discount verdict for a proposed percentage discount
func (s *Service) Evaluate(ctx context.Context, agencyID uuid.UUID, req EvaluateDiscountRequest) (*VerdictResponse, error) {
	limit, err := s.limits.DiscountLimit(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	var verdict pricing.Verdict
	if req.DiscountAmount != nil {
		verdict = s.policy.EvaluateFixedAmount(*req.DiscountAmount, req.Subtotal, limit)
	} else {
		verdict = s.policy.Evaluate(req.DiscountPercent, limit)
	}

	return &VerdictResponse{
		RequiresApproval: verdict.RequiresApproval,
		Message:          verdict.Message,
	}, nil
}

// CreateRule creates a discount or promotional rule
func (s *Service) CreateRule(ctx context.Context, agencyID, actorID uuid.UUID, req CreateRuleRequest) (*RuleResponse, error) {
	rule, err := pricing.NewDiscountRule(agencyID, req.Name, req.Scope, req.ScopeRef, req.Kind, req.Value, req.ValidFrom, req.ValidTo)
	if err != nil {
		return nil, err
	}
	rule.SetCreatedBy(actorID)

	if req.Kind == pricing.RuleKindBuyXGetY {
		if err := rule.SetBuyGetQuantities(req.BuyQuantity, req.GetQuantity); err != nil {
			return nil, err
		}
	}
	if req.MaxUsageCount != nil {
		if err := rule.SetUsageCap(*req.MaxUsageCount); err != nil {
			return nil, err
		}
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	response := ToRuleResponse(rule)
	return &response, nil
}

// GetRule retrieves a rule by ID within the agency
func (s *Service) GetRule(ctx context.Context, agencyID, ruleID uuid.UUID) (*RuleResponse, error) {
	rule, err := s.ruleRepo.FindByIDForAgency(ctx, agencyID, ruleID)
	if err != nil {
		return nil, err
	}
	response := ToRuleResponse(rule)
	return &response, nil
}

// ListRules retrieves rules with pagination
func (s *Service) ListRules(ctx context.Context, agencyID uuid.UUID, page, pageSize int) (*shared.Paginated[RuleResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	rules, err := s.ruleRepo.FindAllForAgency(ctx, agencyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ruleRepo.CountForAgency(ctx, agencyID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RuleResponse, len(rules))
	for i := range rules {
		responses[i] = ToRuleResponse(&rules[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListApplicable returns rules currently applicable to any of the scope refs
func (s *Service) ListApplicable(ctx context.Context, agencyID uuid.UUID, scopeRefs []uuid.UUID) ([]RuleResponse, error) {
	rules, err := s.ruleRepo.FindApplicable(ctx, agencyID, time.Now(), scopeRefs)
	if err != nil {
		return nil, err
	}
	responses := make([]RuleResponse, len(rules))
	for i := range rules {
		responses[i] = ToRuleResponse(&rules[i])
	}
	return responses, nil
}

// RecordUsage consumes one use of a capped rule under optimistic locking
func (s *Service) RecordUsage(ctx context.Context, agencyID, ruleID uuid.UUID) (*RuleResponse, error) {
	rule, err := s.ruleRepo.FindByIDForAgency(ctx, agencyID, ruleID)
	if err != nil {
		return nil, err
	}

	if err := rule.RecordUsage(); err != nil {
		return nil, err
	}

	if err := s.ruleRepo.SaveWithLock(ctx, rule); err != nil {
		return nil, err
	}
	response := ToRuleResponse(rule)
	return &response, nil
}

// DeactivateRule turns a rule off
func (s *Service) DeactivateRule(ctx context.Context, agencyID, ruleID uuid.UUID) (*RuleResponse, error) {
	rule, err := s.ruleRepo.FindByIDForAgency(ctx, agencyID, ruleID)
	if err != nil {
		return nil, err
	}

	rule.Deactivate()

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	response := ToRuleResponse(rule)
	return &response, nil
}
