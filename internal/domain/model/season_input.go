package model

import (
	"errors"
	"fmt"

	"github.com/harvestguard/croprisk/internal/domain/valueobject"
)

// ErrInvalidInput is returned when a season parameter falls outside the
// domain the classifier was trained on.
var ErrInvalidInput = errors.New("invalid season input")

// Input domain bounds, inclusive.
const (
	MinRainfallMM      = 40.0
	MaxRainfallMM      = 2800.0
	MinAvgTempC        = 15.0
	MaxAvgTempC        = 36.0
	MinNDVIPeak        = 0.04
	MaxNDVIPeak        = 0.96
	MinSoilPH          = 4.3
	MaxSoilPH          = 8.4
	MinSOCPercent      = 0.1
	MaxSOCPercent      = 4.0
	MinFertilizerNKgHa = 0
	MaxFertilizerNKgHa = 250
	MinPestLevel       = 0
	MaxPestLevel       = 3
)

// SeasonParams carries the raw parameters for one growing season.
type SeasonParams struct {
	Country          string
	Crop             string
	RainfallMM       float64
	AvgTempC         float64
	NDVIPeak         float64
	SoilPH           float64
	SOCPercent       float64
	FertilizerNKgHa  int
	PestDiseaseLevel int
	Irrigated        bool
}

// DefaultSeasonParams returns the parameters the form starts with.
func DefaultSeasonParams() SeasonParams {
	return SeasonParams{
		Country:          valueobject.CountryKenya.String(),
		Crop:             valueobject.CropMaize.String(),
		RainfallMM:       600,
		AvgTempC:         25.0,
		NDVIPeak:         0.60,
		SoilPH:           5.9,
		SOCPercent:       1.0,
		FertilizerNKgHa:  50,
		PestDiseaseLevel: 1,
		Irrigated:        false,
	}
}

// SeasonInput is a validated, immutable set of season parameters. It is
// built per prediction request and discarded afterwards.
type SeasonInput struct {
	country          valueobject.Country
	crop             valueobject.Crop
	rainfallMM       float64
	avgTempC         float64
	ndviPeak         float64
	soilPH           float64
	socPercent       float64
	fertilizerNKgHa  int
	pestDiseaseLevel int
	irrigated        bool
}

// NewSeasonInput validates params against the input domain.
func NewSeasonInput(p SeasonParams) (SeasonInput, error) {
	country, err := valueobject.CountryFromString(p.Country)
	if err != nil {
		return SeasonInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	crop, err := valueobject.CropFromString(p.Crop)
	if err != nil {
		return SeasonInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	checks := []struct {
		field    string
		value    float64
		min, max float64
	}{
		{"rainfall_mm", p.RainfallMM, MinRainfallMM, MaxRainfallMM},
		{"avg_temp_c", p.AvgTempC, MinAvgTempC, MaxAvgTempC},
		{"ndvi_peak", p.NDVIPeak, MinNDVIPeak, MaxNDVIPeak},
		{"soil_ph", p.SoilPH, MinSoilPH, MaxSoilPH},
		{"soc_percent", p.SOCPercent, MinSOCPercent, MaxSOCPercent},
		{"fertilizer_n_kg_ha", float64(p.FertilizerNKgHa), MinFertilizerNKgHa, MaxFertilizerNKgHa},
		{"pest_disease_level", float64(p.PestDiseaseLevel), MinPestLevel, MaxPestLevel},
	}
	for _, c := range checks {
		// Written so NaN fails too.
		if !(c.value >= c.min && c.value <= c.max) {
			return SeasonInput{}, fmt.Errorf("%w: %s must be between %v and %v, got %v",
				ErrInvalidInput, c.field, c.min, c.max, c.value)
		}
	}

	return SeasonInput{
		country:          country,
		crop:             crop,
		rainfallMM:       p.RainfallMM,
		avgTempC:         p.AvgTempC,
		ndviPeak:         p.NDVIPeak,
		soilPH:           p.SoilPH,
		socPercent:       p.SOCPercent,
		fertilizerNKgHa:  p.FertilizerNKgHa,
		pestDiseaseLevel: p.PestDiseaseLevel,
		irrigated:        p.Irrigated,
	}, nil
}

// --- Accessors ---

func (s SeasonInput) Country() valueobject.Country { return s.country }
func (s SeasonInput) Crop() valueobject.Crop       { return s.crop }
func (s SeasonInput) RainfallMM() float64          { return s.rainfallMM }
func (s SeasonInput) AvgTempC() float64            { return s.avgTempC }
func (s SeasonInput) NDVIPeak() float64            { return s.ndviPeak }
func (s SeasonInput) SoilPH() float64              { return s.soilPH }
func (s SeasonInput) SOCPercent() float64          { return s.socPercent }
func (s SeasonInput) FertilizerNKgHa() int         { return s.fertilizerNKgHa }
func (s SeasonInput) PestDiseaseLevel() int        { return s.pestDiseaseLevel }
func (s SeasonInput) Irrigated() bool              { return s.irrigated }

// Params returns the raw parameters this input was built from.
func (s SeasonInput) Params() SeasonParams {
	return SeasonParams{
		Country:          s.country.String(),
		Crop:             s.crop.String(),
		RainfallMM:       s.rainfallMM,
		AvgTempC:         s.avgTempC,
		NDVIPeak:         s.ndviPeak,
		SoilPH:           s.soilPH,
		SOCPercent:       s.socPercent,
		FertilizerNKgHa:  s.fertilizerNKgHa,
		PestDiseaseLevel: s.pestDiseaseLevel,
		Irrigated:        s.irrigated,
	}
}
