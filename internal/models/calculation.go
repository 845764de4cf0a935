package models

// CalculationType selects how row amounts combine into a total.
type CalculationType string

const (
	CalculationSum        CalculationType = "sum"
	CalculationSubtract   CalculationType = "subtract"
	CalculationPercentage CalculationType = "percentage"
	CalculationAverage    CalculationType = "average"
	CalculationCount      CalculationType = "count"
)

// CalculationTypes lists the supported types in display order.
var CalculationTypes = []CalculationType{
	CalculationSum,
	CalculationSubtract,
	CalculationPercentage,
	CalculationAverage,
	CalculationCount,
}

// Label returns the human-readable name of the calculation type.
// Unknown types are labelled as Sum, matching how they are calculated.
func (t CalculationType) Label() string {
	switch t {
	case CalculationSubtract:
		return "Sub (Value - Sum)"
	case CalculationPercentage:
		return "Percentage Breakdown"
	case CalculationAverage:
		return "Average"
	case CalculationCount:
		return "Count Items"
	default:
		return "Sum"
	}
}

// NeedsValue reports whether the type takes a baseline value.
func (t CalculationType) NeedsValue() bool {
	return t == CalculationSubtract
}

// Valid reports whether t is one of the supported types.
func (t CalculationType) Valid() bool {
	for _, known := range CalculationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// CalculationConfig is the aggregation mode applied to a table.
type CalculationConfig struct {
	Type CalculationType `json:"type"`

	// SubtractValue is the baseline for CalculationSubtract. Nil means 0.
	SubtractValue *float64 `json:"subtractValue,omitempty"`
}

// Baseline returns the subtract baseline, or 0 when unset.
func (c CalculationConfig) Baseline() float64 {
	if c.SubtractValue == nil {
		return 0
	}
	return *c.SubtractValue
}

// Subtract returns a subtract configuration with the given baseline.
func Subtract(value float64) CalculationConfig {
	return CalculationConfig{Type: CalculationSubtract, SubtractValue: &value}
}
