package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountPolicy_Evaluate(t *testing.T) {
	policy := NewDiscountPolicy(PolicyOptions{})
	limit30 := decimal.NewFromInt(30)
	limitZero := decimal.Zero

	tests := []struct {
		name             string
		percent          float64
		limit            *decimal.Decimal
		requiresApproval bool
	}{
		{"below default limit", 10, nil, false},
		{"at default limit", 20, nil, false},
		{"above default limit", 20.01, nil, true},
		{"well above default limit", 25, nil, true},
		{"zero discount", 0, nil, false},
		{"below explicit limit", 25, &limit30, false},
		{"at explicit limit", 30, &limit30, false},
		{"above explicit limit", 31, &limit30, true},
		{"zero limit falls back to default", 15, &limitZero, false},
		{"zero limit falls back to default above", 21, &limitZero, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := policy.Evaluate(decimal.NewFromFloat(tt.percent), tt.limit)
			assert.Equal(t, tt.requiresApproval, verdict.RequiresApproval)
			assert.NotEmpty(t, verdict.Message)
		})
	}
}

func TestDiscountPolicy_EvaluateFixedAmount(t *testing.T) {
	policy := NewDiscountPolicy(PolicyOptions{})

	t.Run("normalizes fixed amount to percentage", func(t *testing.T) {
		// 250 off 1000 = 25%, above the default 20% limit
		verdict := policy.EvaluateFixedAmount(decimal.NewFromInt(250), decimal.NewFromInt(1000), nil)
		assert.True(t, verdict.RequiresApproval)

		// 150 off 1000 = 15%, within the default limit
		verdict = policy.EvaluateFixedAmount(decimal.NewFromInt(150), decimal.NewFromInt(1000), nil)
		assert.False(t, verdict.RequiresApproval)
	})

	t.Run("zero subtotal yields zero effective percentage", func(t *testing.T) {
		verdict := policy.EvaluateFixedAmount(decimal.NewFromInt(100), decimal.Zero, nil)
		assert.False(t, verdict.RequiresApproval)
	})

	t.Run("zero subtotal forces approval when configured", func(t *testing.T) {
		strict := NewDiscountPolicy(PolicyOptions{ApproveOnZeroSubtotal: true})
		verdict := strict.EvaluateFixedAmount(decimal.NewFromInt(100), decimal.Zero, nil)
		assert.True(t, verdict.RequiresApproval)

		// A zero discount on a zero subtotal still auto-approves
		verdict = strict.EvaluateFixedAmount(decimal.Zero, decimal.Zero, nil)
		assert.False(t, verdict.RequiresApproval)
	})
}

func TestDiscountPolicy_EffectivePercent(t *testing.T) {
	policy := NewDiscountPolicy(PolicyOptions{})

	assert.True(t, policy.EffectivePercent(decimal.NewFromInt(250), decimal.NewFromInt(1000)).Equal(decimal.NewFromInt(25)))
	assert.True(t, policy.EffectivePercent(decimal.Zero, decimal.NewFromInt(1000)).IsZero())
	assert.True(t, policy.EffectivePercent(decimal.NewFromInt(100), decimal.Zero).IsZero())
}
