package service

import (
	"math"

	"github.com/harvestguard/croprisk/internal/domain/model"
	"github.com/harvestguard/croprisk/internal/domain/valueobject"
)

// HeatStressThresholdC is the temperature above which heat stress days accrue.
const HeatStressThresholdC = 28.0

// HeatStressDays derives the number of heat stress days from the seasonal
// average temperature: max(0, floor((t - 28) * 4)).
func HeatStressDays(avgTempC float64) int {
	days := math.Floor((avgTempC - HeatStressThresholdC) * 4)
	if days < 0 {
		return 0
	}
	return int(days)
}

// FeatureEncoder turns season parameters into the classifier's 19-column
// feature vector.
type FeatureEncoder struct{}

// NewFeatureEncoder creates a new FeatureEncoder.
func NewFeatureEncoder() *FeatureEncoder {
	return &FeatureEncoder{}
}

// Encode builds the vector in training column order. Baseline categories
// (Ethiopia, Beans) have no indicator column and leave their block at zero;
// the vector records them as unrepresented.
func (e *FeatureEncoder) Encode(in model.SeasonInput) (model.FeatureVector, error) {
	values := make([]float64, 0, model.FeatureCount)
	values = append(values,
		in.RainfallMM(),
		in.AvgTempC(),
		float64(HeatStressDays(in.AvgTempC())),
		in.NDVIPeak(),
		in.SoilPH(),
		in.SOCPercent(),
		float64(in.FertilizerNKgHa()),
		float64(in.PestDiseaseLevel()),
		boolToFloat(in.Irrigated()),
	)

	var unrepresented []string

	for _, c := range valueobject.EncodedCountries() {
		values = append(values, boolToFloat(in.Country().Equal(c)))
	}
	if in.Country().IsBaseline() {
		unrepresented = append(unrepresented, "country="+in.Country().String())
	}

	for _, c := range valueobject.EncodedCrops() {
		values = append(values, boolToFloat(in.Crop().Equal(c)))
	}
	if in.Crop().IsBaseline() {
		unrepresented = append(unrepresented, "crop="+in.Crop().String())
	}

	return model.NewFeatureVector(values, unrepresented...)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
