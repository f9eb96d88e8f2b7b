package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRule(t *testing.T, scope RuleScope, scopeRef *uuid.UUID) *DiscountRule {
	t.Helper()
	rule, err := NewDiscountRule(
		uuid.New(), "Summer promo", scope, scopeRef,
		RuleKindPercentage, decimal.NewFromInt(10),
		time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour),
	)
	require.NoError(t, err)
	return rule
}

func TestNewDiscountRule(t *testing.T) {
	agencyID := uuid.New()
	from := time.Now()
	to := from.Add(24 * time.Hour)

	t.Run("creates global rule", func(t *testing.T) {
		rule, err := NewDiscountRule(agencyID, "10% off", RuleScopeGlobal, nil, RuleKindPercentage, decimal.NewFromInt(10), from, to)
		require.NoError(t, err)
		assert.True(t, rule.Active)
		assert.Zero(t, rule.CurrentUsageCount)
		assert.Nil(t, rule.MaxUsageCount)
		assert.Len(t, rule.GetDomainEvents(), 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewDiscountRule(agencyID, "", RuleScopeGlobal, nil, RuleKindPercentage, decimal.NewFromInt(10), from, to)
		assert.Error(t, err)
	})

	t.Run("rejects scoped rule without reference", func(t *testing.T) {
		_, err := NewDiscountRule(agencyID, "customer promo", RuleScopeCustomer, nil, RuleKindPercentage, decimal.NewFromInt(10), from, to)
		assert.Error(t, err)
	})

	t.Run("rejects global rule with reference", func(t *testing.T) {
		ref := uuid.New()
		_, err := NewDiscountRule(agencyID, "promo", RuleScopeGlobal, &ref, RuleKindPercentage, decimal.NewFromInt(10), from, to)
		assert.Error(t, err)
	})

	t.Run("rejects inverted validity window", func(t *testing.T) {
		_, err := NewDiscountRule(agencyID, "promo", RuleScopeGlobal, nil, RuleKindPercentage, decimal.NewFromInt(10), to, from)
		assert.Error(t, err)
	})

	t.Run("rejects negative value", func(t *testing.T) {
		_, err := NewDiscountRule(agencyID, "promo", RuleScopeGlobal, nil, RuleKindFixedAmount, decimal.NewFromInt(-5), from, to)
		assert.Error(t, err)
	})
}

func TestDiscountRule_UsageCap(t *testing.T) {
	rule := createTestRule(t, RuleScopeGlobal, nil)

	require.NoError(t, rule.SetUsageCap(2))

	require.NoError(t, rule.RecordUsage())
	require.NoError(t, rule.RecordUsage())
	assert.Equal(t, 2, rule.CurrentUsageCount)

	err := rule.RecordUsage()
	assert.Error(t, err)
	assert.Equal(t, 2, rule.CurrentUsageCount)

	remaining := rule.RemainingUses()
	require.NotNil(t, remaining)
	assert.Equal(t, 0, *remaining)

	t.Run("cap cannot drop below usage", func(t *testing.T) {
		assert.Error(t, rule.SetUsageCap(1))
	})
}

func TestDiscountRule_IsApplicable(t *testing.T) {
	now := time.Now()
	customerID := uuid.New()
	otherID := uuid.New()

	t.Run("global rule applies to everything in window", func(t *testing.T) {
		rule := createTestRule(t, RuleScopeGlobal, nil)
		assert.True(t, rule.IsApplicable(now, nil))
		assert.True(t, rule.IsApplicable(now, &customerID))
	})

	t.Run("scoped rule only matches its reference", func(t *testing.T) {
		rule := createTestRule(t, RuleScopeCustomer, &customerID)
		assert.True(t, rule.IsApplicable(now, &customerID))
		assert.False(t, rule.IsApplicable(now, &otherID))
		assert.False(t, rule.IsApplicable(now, nil))
	})

	t.Run("outside validity window", func(t *testing.T) {
		rule := createTestRule(t, RuleScopeGlobal, nil)
		assert.False(t, rule.IsApplicable(now.Add(48*time.Hour), nil))
		assert.False(t, rule.IsApplicable(now.Add(-2*time.Hour), nil))
	})

	t.Run("deactivated rule never applies", func(t *testing.T) {
		rule := createTestRule(t, RuleScopeGlobal, nil)
		rule.Deactivate()
		assert.False(t, rule.IsApplicable(now, nil))
		rule.Activate()
		assert.True(t, rule.IsApplicable(now, nil))
	})

	t.Run("exhausted rule never applies", func(t *testing.T) {
		rule := createTestRule(t, RuleScopeGlobal, nil)
		require.NoError(t, rule.SetUsageCap(1))
		require.NoError(t, rule.RecordUsage())
		assert.False(t, rule.IsApplicable(now, nil))
	})
}

func TestDiscountRule_BuyXGetY(t *testing.T) {
	rule, err := NewDiscountRule(
		uuid.New(), "Buy 2 get 1", RuleScopeGlobal, nil,
		RuleKindBuyXGetY, decimal.Zero,
		time.Now(), time.Now().Add(time.Hour),
	)
	require.NoError(t, err)

	require.NoError(t, rule.SetBuyGetQuantities(2, 1))
	assert.Equal(t, 2, rule.BuyQuantity)
	assert.Equal(t, 1, rule.GetQuantity)

	assert.Error(t, rule.SetBuyGetQuantities(0, 1))

	pct := createTestRule(t, RuleScopeGlobal, nil)
	assert.Error(t, pct.SetBuyGetQuantities(2, 1))
}
