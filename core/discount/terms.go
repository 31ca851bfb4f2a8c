package discount

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// startSkew backdates startsAt so platform clock skew never rejects a new discount.
const startSkew = 60 * time.Second

var hundred = decimal.NewFromInt(100)

// Terms are the discount terms derived from a tier, shared by create and update.
type Terms struct {
	Code            string
	Title           string
	Fraction        decimal.Decimal
	MinimumQuantity string
	StartsAt        time.Time
}

// NewTerms derives the terms for a tier issued at now.
func NewTerms(t Tier, prefix string, now time.Time) Terms {
	return Terms{
		Code:            CodeFor(t, prefix),
		Title:           TitleFor(t),
		Fraction:        decimal.NewFromFloat(t.Percentage).Div(hundred).Round(2),
		MinimumQuantity: strconv.Itoa(t.Count),
		StartsAt:        now.Add(-startSkew).UTC().Truncate(time.Second),
	}
}

// Input renders the terms as a DiscountCodeBasicInput.
// Eligibility is shop-wide: every customer, every product, no combining, reusable.
func (t Terms) Input() map[string]any {
	return map[string]any{
		"title":    t.Title,
		"code":     t.Code,
		"startsAt": t.StartsAt.Format(time.RFC3339),
		"customerSelection": map[string]any{
			"all": true,
		},
		"customerGets": map[string]any{
			"value": map[string]any{
				"percentage": t.Fraction.InexactFloat64(),
			},
			"items": map[string]any{
				"all": true,
			},
		},
		"minimumRequirement": map[string]any{
			"quantity": map[string]any{
				"greaterThanOrEqualToQuantity": t.MinimumQuantity,
			},
		},
		"combinesWith": map[string]any{
			"orderDiscounts":    false,
			"productDiscounts":  false,
			"shippingDiscounts": false,
		},
		"appliesOncePerCustomer": false,
	}
}
