package shift

// Fulfillment classifies staffing adequacy of assigned vs. required workers.
type Fulfillment string

const (
	FulfillmentCritical          Fulfillment = "CRITICAL"
	FulfillmentLow               Fulfillment = "LOW"
	FulfillmentGood              Fulfillment = "GOOD"
	FulfillmentFull              Fulfillment = "FULL"
	FulfillmentOverstaffedLow    Fulfillment = "OVERSTAFFED_LOW"
	FulfillmentOverstaffedMedium Fulfillment = "OVERSTAFFED_MEDIUM"
	FulfillmentOverstaffedHigh   Fulfillment = "OVERSTAFFED_HIGH"
)

// ClassifyFulfillment turns required and assigned headcounts into a staffing
// classification. required is the sum of the six role counters; assigned is
// the count of non-no-show assignments. Pure function, no side effects.
func ClassifyFulfillment(required, assigned int) Fulfillment {
	if assigned == required {
		return FulfillmentFull
	}

	if assigned < required {
		pct := float64(assigned) / float64(required) * 100
		switch {
		case pct < 50:
			return FulfillmentCritical
		case pct < 80:
			return FulfillmentLow
		default:
			return FulfillmentGood
		}
	}

	// Overstaffed: required of zero with any assignment is maximal excess.
	if required == 0 {
		return FulfillmentOverstaffedHigh
	}

	overPct := float64(assigned-required) / float64(required) * 100
	switch {
	case overPct < 20:
		return FulfillmentOverstaffedLow
	case overPct <= 50:
		return FulfillmentOverstaffedMedium
	default:
		return FulfillmentOverstaffedHigh
	}
}
