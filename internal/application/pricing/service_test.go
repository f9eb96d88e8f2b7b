package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldsales/backend/internal/domain/pricing"
	"github.com/fieldsales/backend/internal/domain/shared"
)

// MockDiscountRuleRepository is a mock implementation of pricing.DiscountRuleRepository
type MockDiscountRuleRepository struct {
	mock.Mock
}

func (m *MockDiscountRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.DiscountRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.DiscountRule), args.Error(1)
}

func (m *MockDiscountRuleRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*pricing.DiscountRule, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.DiscountRule), args.Error(1)
}

func (m *MockDiscountRuleRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]pricing.DiscountRule, error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.DiscountRule), args.Error(1)
}

func (m *MockDiscountRuleRepository) FindApplicable(ctx context.Context, agencyID uuid.UUID, at time.Time, scopeRefs []uuid.UUID) ([]pricing.DiscountRule, error) {
	args := m.Called(ctx, agencyID, at, scopeRefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.DiscountRule), args.Error(1)
}

func (m *MockDiscountRuleRepository) Save(ctx context.Context, rule *pricing.DiscountRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockDiscountRuleRepository) SaveWithLock(ctx context.Context, rule *pricing.DiscountRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockDiscountRuleRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	args := m.Called(ctx, agencyID, id)
	return args.Error(0)
}

func (m *MockDiscountRuleRepository) CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, agencyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type stubLimitSource struct {
	limit *decimal.Decimal
	err   error
}

func (s *stubLimitSource) DiscountLimit(ctx context.Context, agencyID uuid.UUID) (*decimal.Decimal, error) {
	return s.limit, s.err
}

func newTestService(repo *MockDiscountRuleRepository, limit *decimal.Decimal) *Service {
	return NewService(repo, &stubLimitSource{limit: limit}, pricing.NewDiscountPolicy(pricing.PolicyOptions{}))
}

func validityWindow() (time.Time, time.Time) {
	from := time.Now().Add(-time.Hour)
	return from, from.Add(30 * 24 * time.Hour)
}

func TestService_Evaluate_WithinLimit(t *testing.T) {
	limit := decimal.NewFromInt(25)
	service := newTestService(new(MockDiscountRuleRepository), &limit)

	resp, err := service.Evaluate(context.Background(), uuid.New(), EvaluateDiscountRequest{
		DiscountPercent: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.False(t, resp.RequiresApproval)
}

func TestService_Evaluate_AboveLimit(t *testing.T) {
	limit := decimal.NewFromInt(10)
	service := newTestService(new(MockDiscountRuleRepository), &limit)

	resp, err := service.Evaluate(context.Background(), uuid.New(), EvaluateDiscountRequest{
		DiscountPercent: decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	assert.True(t, resp.RequiresApproval)
	assert.Contains(t, resp.Message, "requires superuser approval")
}

func TestService_Evaluate_FixedAmount(t *testing.T) {
	limit := decimal.NewFromInt(20)
	service := newTestService(new(MockDiscountRuleRepository), &limit)

	amount := decimal.NewFromInt(30)
	resp, err := service.Evaluate(context.Background(), uuid.New(), EvaluateDiscountRequest{
		DiscountAmount: &amount,
		Subtotal:       decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.True(t, resp.RequiresApproval)
}

func TestService_Evaluate_NilLimitUsesDefault(t *testing.T) {
	service := newTestService(new(MockDiscountRuleRepository), nil)

	resp, err := service.Evaluate(context.Background(), uuid.New(), EvaluateDiscountRequest{
		DiscountPercent: decimal.NewFromInt(21),
	})
	require.NoError(t, err)
	assert.True(t, resp.RequiresApproval)
}

func TestService_CreateRule(t *testing.T) {
	repo := new(MockDiscountRuleRepository)
	service := newTestService(repo, nil)
	agencyID := uuid.New()
	actorID := uuid.New()
	from, to := validityWindow()

	repo.On("Save", mock.Anything, mock.AnythingOfType("*pricing.DiscountRule")).Return(nil)

	resp, err := service.CreateRule(context.Background(), agencyID, actorID, CreateRuleRequest{
		Name:      "Season opener",
		Scope:     pricing.RuleScopeGlobal,
		Kind:      pricing.RuleKindPercentage,
		Value:     decimal.NewFromInt(10),
		ValidFrom: from,
		ValidTo:   to,
	})
	require.NoError(t, err)
	assert.Equal(t, agencyID, resp.AgencyID)
	assert.Equal(t, string(pricing.RuleKindPercentage), resp.Kind)
	assert.True(t, resp.Active)
	assert.Nil(t, resp.RemainingUses)
	repo.AssertExpectations(t)
}

func TestService_CreateRule_BuyXGetY(t *testing.T) {
	repo := new(MockDiscountRuleRepository)
	service := newTestService(repo, nil)
	from, to := validityWindow()
	productID := uuid.New()

	repo.On("Save", mock.Anything, mock.AnythingOfType("*pricing.DiscountRule")).Return(nil)

	resp, err := service.CreateRule(context.Background(), uuid.New(), uuid.New(), CreateRuleRequest{
		Name:        "Buy 10 get 1",
		Scope:       pricing.RuleScopeProduct,
		ScopeRef:    &productID,
		Kind:        pricing.RuleKindBuyXGetY,
		BuyQuantity: 10,
		GetQuantity: 1,
		ValidFrom:   from,
		ValidTo:     to,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.BuyQuantity)
	assert.Equal(t, 1, resp.GetQuantity)
}

func TestService_CreateRule_InvalidWindow(t *testing.T) {
	repo := new(MockDiscountRuleRepository)
	service := newTestService(repo, nil)
	from, _ := validityWindow()

	_, err := service.CreateRule(context.Background(), uuid.New(), uuid.New(), CreateRuleRequest{
		Name:      "Backwards",
		Scope:     pricing.RuleScopeGlobal,
		Kind:      pricing.RuleKindPercentage,
		Value:     decimal.NewFromInt(5),
		ValidFrom: from,
		ValidTo:   from.Add(-time.Hour),
	})
	require.Error(t, err)
	repo.AssertNotCalled(t, "Save")
}

func TestService_CreateRule_WithUsageCap(t *testing.T) {
	repo := new(MockDiscountRuleRepository)
	service := newTestService(repo, nil)
	from, to := validityWindow()
	maxUses := 50

	repo.On("Save", mock.Anything, mock.AnythingOfType("*pricing.DiscountRule")).Return(nil)

	resp, err := service.CreateRule(context.Background(), uuid.New(), uuid.New(), CreateRuleRequest{
		Name:          "Capped promo",
		Scope:         pricing.RuleScopeGlobal,
		Kind:          pricing.RuleKindPercentage,
		Value:         decimal.NewFromInt(5),
		ValidFrom:     from,
		ValidTo:       to,
		MaxUsageCount: &maxUses,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.MaxUsageCount)
	assert.Equal(t, 50, *resp.MaxUsageCount)
	require.NotNil(t, resp.RemainingUses)
	assert.Equal(t, 50, *resp.RemainingUses)
}

func TestService_ListRules(t *testing.T) {
	repo := new(MockDiscountRuleRepository)
	service := newTestService(repo, nil)
	agencyID := uuid.New()
	from, to := validityWindow()

	rule, err := pricing.NewDiscountRule(agencyID, "Season opener", pricing.RuleScopeGlobal, nil, pricing.RuleKindPercentage, decimal.NewFromInt(10), from, to)
	require.NoError(t, err)

	repo.On("FindAllForAgency", mock.Anything, agencyID, mock.AnythingOfType("shared.Filter")).Return([]pricing.DiscountRule{*rule}, nil)
	repo.On("CountForAgency", mock.Anything, agencyID, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	result, err := service.ListRules(context.Background(), agencyID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Season opener", result.Items[0].Name)
}

func TestService_ListApplicable(t *testing.T) {
	repo := new(MockDiscountRuleRepository)
	service := newTestService(repo, nil)
	agencyID := uuid.New()
	customerID := uuid.New()
	from, to := validityWindow()

	rule, err := pricing.NewDiscountRule(agencyID, "Key account", pricing.RuleScopeCustomer, &customerID, pricing.RuleKindPercentage, decimal.NewFromInt(8), from, to)
	require.NoError(t, err)

	repo.On("FindApplicable", mock.Anything, agencyID, mock.AnythingOfType("time.Time"), []uuid.UUID{customerID}).
		Return([]pricing.DiscountRule{*rule}, nil)

	rules, err := service.ListApplicable(context.Background(), agencyID, []uuid.UUID{customerID})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, string(pricing.RuleScopeCustomer), rules[0].Scope)
}

func TestService_RecordUsage(t *testing.T) {
	repo := new(MockDiscountRuleRepository)
	service := newTestService(repo, nil)
	agencyID := uuid.New()
	from, to := validityWindow()

	rule, err := pricing.NewDiscountRule(agencyID, "Capped promo", pricing.RuleScopeGlobal, nil, pricing.RuleKindPercentage, decimal.NewFromInt(5), from, to)
	require.NoError(t, err)
	require.NoError(t, rule.SetUsageCap(2))

	repo.On("FindByIDForAgency", mock.Anything, agencyID, rule.ID).Return(rule, nil)
	repo.On("SaveWithLock", mock.Anything, rule).Return(nil)

	resp, err := service.RecordUsage(context.Background(), agencyID, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CurrentUsageCount)
	require.NotNil(t, resp.RemainingUses)
	assert.Equal(t, 1, *resp.RemainingUses)
}

func TestService_RecordUsage_CapReached(t *testing.T) {
	repo := new(MockDiscountRuleRepository)
	service := newTestService(repo, nil)
	agencyID := uuid.New()
	from, to := validityWindow()

	rule, err := pricing.NewDiscountRule(agencyID, "Capped promo", pricing.RuleScopeGlobal, nil, pricing.RuleKindPercentage, decimal.NewFromInt(5), from, to)
	require.NoError(t, err)
	require.NoError(t, rule.SetUsageCap(1))
	require.NoError(t, rule.RecordUsage())

	repo.On("FindByIDForAgency", mock.Anything, agencyID, rule.ID).Return(rule, nil)

	_, err = service.RecordUsage(context.Background(), agencyID, rule.ID)
	require.Error(t, err)
	repo.AssertNotCalled(t, "SaveWithLock")
}

func TestService_DeactivateRule(t *testing.T) {
	repo := new(MockDiscountRuleRepository)
	service := newTestService(repo, nil)
	agencyID := uuid.New()
	from, to := validityWindow()

	rule, err := pricing.NewDiscountRule(agencyID, "Season opener", pricing.RuleScopeGlobal, nil, pricing.RuleKindPercentage, decimal.NewFromInt(10), from, to)
	require.NoError(t, err)

	repo.On("FindByIDForAgency", mock.Anything, agencyID, rule.ID).Return(rule, nil)
	repo.On("Save", mock.Anything, rule).Return(nil)

	resp, err := service.DeactivateRule(context.Background(), agencyID, rule.ID)
	require.NoError(t, err)
	assert.False(t, resp.Active)
}
