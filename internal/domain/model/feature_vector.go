package model

import (
	"errors"
	"fmt"
)

// ErrSchemaMismatch is returned when a vector does not match the 19-column
// training schema.
var ErrSchemaMismatch = errors.New("feature schema mismatch")

// featureNames is the training-time column order. The classifier is
// positional: reordering this list silently corrupts predictions.
var featureNames = [...]string{
	"rainfall_mm",
	"avg_temp_c",
	"heat_stress_days",
	"ndvi_peak",
	"soil_ph",
	"soc_percent",
	"fertilizer_n_kg_ha",
	"pest_disease_level",
	"irrigated",
	"country_Kenya",
	"country_Malawi",
	"country_Tanzania",
	"country_Uganda",
	"country_Zambia",
	"crop_Cassava",
	"crop_Groundnut",
	"crop_Maize",
	"crop_Millet",
	"crop_Sorghum",
}

// FeatureCount is the width of every FeatureVector.
const FeatureCount = len(featureNames)

// FeatureNames returns the column names in schema order.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	copy(names, featureNames[:])
	return names
}

// FeatureIndex returns the position of a named column.
func FeatureIndex(name string) (int, bool) {
	for i, n := range featureNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// FeatureVector is a fixed-order numeric record matching the classifier's
// training schema.
type FeatureVector struct {
	values        [FeatureCount]float64
	unrepresented []string
}

// NewFeatureVector builds a vector from values in schema order.
// unrepresented names categorical values that have no indicator column and
// therefore encoded as an all-zero block.
func NewFeatureVector(values []float64, unrepresented ...string) (FeatureVector, error) {
	if len(values) != FeatureCount {
		return FeatureVector{}, fmt.Errorf("%w: expected %d values, got %d", ErrSchemaMismatch, FeatureCount, len(values))
	}
	var v FeatureVector
	copy(v.values[:], values)
	if len(unrepresented) > 0 {
		v.unrepresented = append([]string(nil), unrepresented...)
	}
	return v, nil
}

// Len returns the number of fields, always FeatureCount.
func (v FeatureVector) Len() int { return FeatureCount }

// Values returns a copy of the values in schema order.
func (v FeatureVector) Values() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v.values[:])
	return out
}

// Value returns the value of a named column.
func (v FeatureVector) Value(name string) (float64, bool) {
	i, ok := FeatureIndex(name)
	if !ok {
		return 0, false
	}
	return v.values[i], true
}

// UnrepresentedCategories lists categorical inputs encoded as all-zero
// indicator blocks, e.g. "country=Ethiopia".
func (v FeatureVector) UnrepresentedCategories() []string {
	return append([]string(nil), v.unrepresented...)
}

// Feature is a single named column value.
type Feature struct {
	Name  string
	Value float64
}

// Features returns name/value pairs in schema order.
func (v FeatureVector) Features() []Feature {
	out := make([]Feature, FeatureCount)
	for i, n := range featureNames {
		out[i] = Feature{Name: n, Value: v.values[i]}
	}
	return out
}
