package kpi

import "fmt"

// ComputationError reports an input that cannot produce a meaningful score,
// such as a negative count or point value. Zero denominators are not errors;
// they follow the worst-case score-0 policy instead.
type ComputationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("kpi: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func errNegative(field string, value float64) error {
	return &ComputationError{Field: field, Value: value, Reason: "must not be negative"}
}
