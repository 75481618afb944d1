package valueobject

import (
	"errors"
	"fmt"
)

// ErrUnknownRiskLabel is returned when a decoded class label is not one of
// Low, Medium or High.
var ErrUnknownRiskLabel = errors.New("unknown risk label")

// RiskLevel is an immutable value object representing the predicted
// crop-failure risk class.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "Low"}
	RiskLevelMedium = RiskLevel{value: "Medium"}
	RiskLevelHigh   = RiskLevel{value: "High"}
)

// RiskLevels lists every risk class the payout table must cover.
func RiskLevels() []RiskLevel {
	return []RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh}
}

// RiskLevelFromString reconstructs a RiskLevel from the label encoder's
// class name. Matching is exact.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "Low":
		return RiskLevelLow, nil
	case "Medium":
		return RiskLevelMedium, nil
	case "High":
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("%w: %q", ErrUnknownRiskLabel, s)
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
