package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultDiscountLimitPercent is the discount ceiling applied when an agency
// has no explicit limit configured.
var DefaultDiscountLimitPercent = decimal.NewFromInt(20)

// Verdict is the outcome of evaluating a proposed discount against an
// agency's limit.
type Verdict struct {
	RequiresApproval bool
	Message          string
}

// PolicyOptions tunes edge-case behavior of the evaluator.
type PolicyOptions struct {
	// ApproveOnZeroSubtotal forces approval for fixed-amount discounts on a
	// zero subtotal. The effective percentage of such a discount is
	// undefined; by default it is treated as zero and auto-approved.
	ApproveOnZeroSubtotal bool
}

// DiscountPolicy decides whether a proposed discount needs superuser
// approval. It is a pure function over caller-supplied state: the agency's
// configured limit is passed in, never looked up.
type DiscountPolicy struct {
	opts PolicyOptions
}

// NewDiscountPolicy creates a policy with the given options
func NewDiscountPolicy(opts PolicyOptions) *DiscountPolicy {
	return &DiscountPolicy{opts: opts}
}

// Evaluate checks a percentage discount against the agency limit.
// A nil or zero limit falls back to DefaultDiscountLimitPercent.
// Discounts strictly above the limit require approval.
func (p *DiscountPolicy) Evaluate(discountPercent decimal.Decimal, agencyLimit *decimal.Decimal) Verdict {
	limit := DefaultDiscountLimitPercent
	if agencyLimit != nil && agencyLimit.IsPositive() {
		limit = *agencyLimit
	}

	if discountPercent.GreaterThan(limit) {
		return Verdict{
			RequiresApproval: true,
			Message:          fmt.Sprintf("Discount %s%% exceeds agency limit of %s%% and requires superuser approval", discountPercent, limit),
		}
	}
	return Verdict{
		RequiresApproval: false,
		Message:          fmt.Sprintf("Discount %s%% is within agency limit of %s%%", discountPercent, limit),
	}
}

// EvaluateFixedAmount normalizes a fixed-amount discount to an effective
// percentage of the subtotal and applies the same check.
func (p *DiscountPolicy) EvaluateFixedAmount(discountAmount, subtotal decimal.Decimal, agencyLimit *decimal.Decimal) Verdict {
	effective := p.EffectivePercent(discountAmount, subtotal)
	if subtotal.IsZero() && p.opts.ApproveOnZeroSubtotal && discountAmount.IsPositive() {
		return Verdict{
			RequiresApproval: true,
			Message:          "Fixed discount on a zero subtotal requires superuser approval",
		}
	}
	return p.Evaluate(effective, agencyLimit)
}

// EffectivePercent converts a fixed discount amount into a percentage of the
// subtotal. A zero subtotal yields zero.
func (p *DiscountPolicy) EffectivePercent(discountAmount, subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	return discountAmount.Div(subtotal).Mul(decimal.NewFromInt(100))
}
