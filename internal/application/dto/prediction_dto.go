package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestguard/croprisk/internal/domain/model"
	"github.com/harvestguard/croprisk/internal/domain/service"
	"github.com/harvestguard/croprisk/internal/domain/valueobject"
)

// Informational banners shown with every result.
const (
	ModelPerformanceBanner = "Model performance: 89.7% overall accuracy | Medium class recall: 71.7%"
	PayoutMethodBanner     = "Payout is approximated from predicted risk class (High = severe loss, Medium = partial, Low = minimal/no payout)."
)

// PredictionRequest is the input DTO for the GeneratePrediction use case.
type PredictionRequest struct {
	Country          string  `json:"country"`
	Crop             string  `json:"crop"`
	RainfallMM       float64 `json:"rainfall_mm"`
	AvgTempC         float64 `json:"avg_temp_c"`
	NDVIPeak         float64 `json:"ndvi_peak"`
	SoilPH           float64 `json:"soil_ph"`
	SOCPercent       float64 `json:"soc_percent"`
	FertilizerNKgHa  int     `json:"fertilizer_n_kg_ha"`
	PestDiseaseLevel int     `json:"pest_disease_level"`
	Irrigated        bool    `json:"irrigated"`
}

// DefaultPredictionRequest returns the request the form starts with.
func DefaultPredictionRequest() PredictionRequest {
	return FromParams(model.DefaultSeasonParams())
}

// FromParams maps season parameters to a request.
func FromParams(p model.SeasonParams) PredictionRequest {
	return PredictionRequest{
		Country:          p.Country,
		Crop:             p.Crop,
		RainfallMM:       p.RainfallMM,
		AvgTempC:         p.AvgTempC,
		NDVIPeak:         p.NDVIPeak,
		SoilPH:           p.SoilPH,
		SOCPercent:       p.SOCPercent,
		FertilizerNKgHa:  p.FertilizerNKgHa,
		PestDiseaseLevel: p.PestDiseaseLevel,
		Irrigated:        p.Irrigated,
	}
}

// Params maps the request to season parameters.
func (r PredictionRequest) Params() model.SeasonParams {
	return model.SeasonParams{
		Country:          r.Country,
		Crop:             r.Crop,
		RainfallMM:       r.RainfallMM,
		AvgTempC:         r.AvgTempC,
		NDVIPeak:         r.NDVIPeak,
		SoilPH:           r.SoilPH,
		SOCPercent:       r.SOCPercent,
		FertilizerNKgHa:  r.FertilizerNKgHa,
		PestDiseaseLevel: r.PestDiseaseLevel,
		Irrigated:        r.Irrigated,
	}
}

// FeatureValue is one encoded column.
type FeatureValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ClassProbability is the averaged classifier probability of one risk class.
type ClassProbability struct {
	RiskLevel   string  `json:"risk_level"`
	Probability float64 `json:"probability"`
}

// PredictionResponse is the output DTO of a prediction.
type PredictionResponse struct {
	PayoutUSDPerHa decimal.Decimal    `json:"payout_usd_per_ha"`
	Probabilities  []ClassProbability `json:"probabilities"`
	Features       []FeatureValue     `json:"features"`
	Notices        []string           `json:"notices"`
	Banners        []string           `json:"banners"`
	RiskLevel      string             `json:"risk_level"`
	PayoutEstimate string             `json:"payout_estimate"`
	PayoutRange    string             `json:"payout_range"`
	Tone           string             `json:"tone"`
	ID             uuid.UUID          `json:"id"`
}

// NewPredictionResponse assembles the response from the pipeline outputs.
func NewPredictionResponse(
	id uuid.UUID,
	vector model.FeatureVector,
	classification service.Classification,
	estimate service.PayoutEstimate,
) PredictionResponse {
	features := make([]FeatureValue, 0, vector.Len())
	for _, f := range vector.Features() {
		features = append(features, FeatureValue{Name: f.Name, Value: f.Value})
	}

	probs := make([]ClassProbability, 0, len(classification.Probabilities))
	for _, level := range valueobject.RiskLevels() {
		if p, ok := classification.Probabilities[level.String()]; ok {
			probs = append(probs, ClassProbability{RiskLevel: level.String(), Probability: p})
		}
	}

	notices := make([]string, 0)
	for _, c := range vector.UnrepresentedCategories() {
		notices = append(notices, c+" has no indicator column in the trained model and was encoded as the baseline category")
	}

	return PredictionResponse{
		ID:             id,
		RiskLevel:      classification.Level.String(),
		PayoutUSDPerHa: estimate.Point.Amount(),
		PayoutEstimate: estimate.FormatPoint(),
		PayoutRange:    estimate.FormatRange(),
		Tone:           estimate.Tone,
		Probabilities:  probs,
		Features:       features,
		Notices:        notices,
		Banners:        []string{ModelPerformanceBanner, PayoutMethodBanner},
	}
}
