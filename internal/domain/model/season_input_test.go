package model_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvestguard/croprisk/internal/domain/model"
	"github.com/harvestguard/croprisk/internal/domain/valueobject"
)

func TestNewSeasonInput_Defaults(t *testing.T) {
	in, err := model.NewSeasonInput(model.DefaultSeasonParams())
	require.NoError(t, err)

	assert.True(t, valueobject.CountryKenya.Equal(in.Country()))
	assert.True(t, valueobject.CropMaize.Equal(in.Crop()))
	assert.Equal(t, 600.0, in.RainfallMM())
	assert.Equal(t, 25.0, in.AvgTempC())
	assert.Equal(t, 0.60, in.NDVIPeak())
	assert.Equal(t, 5.9, in.SoilPH())
	assert.Equal(t, 1.0, in.SOCPercent())
	assert.Equal(t, 50, in.FertilizerNKgHa())
	assert.Equal(t, 1, in.PestDiseaseLevel())
	assert.False(t, in.Irrigated())
	assert.Equal(t, model.DefaultSeasonParams(), in.Params())
}

func TestNewSeasonInput_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *model.SeasonParams)
		wantErr bool
	}{
		{"min rainfall", func(p *model.SeasonParams) { p.RainfallMM = 40 }, false},
		{"max rainfall", func(p *model.SeasonParams) { p.RainfallMM = 2800 }, false},
		{"rainfall too low", func(p *model.SeasonParams) { p.RainfallMM = 39 }, true},
		{"rainfall too high", func(p *model.SeasonParams) { p.RainfallMM = 2810 }, true},
		{"min temp", func(p *model.SeasonParams) { p.AvgTempC = 15.0 }, false},
		{"max temp", func(p *model.SeasonParams) { p.AvgTempC = 36.0 }, false},
		{"temp too high", func(p *model.SeasonParams) { p.AvgTempC = 36.5 }, true},
		{"temp NaN", func(p *model.SeasonParams) { p.AvgTempC = math.NaN() }, true},
		{"ndvi too low", func(p *model.SeasonParams) { p.NDVIPeak = 0.03 }, true},
		{"ndvi max", func(p *model.SeasonParams) { p.NDVIPeak = 0.96 }, false},
		{"ph too high", func(p *model.SeasonParams) { p.SoilPH = 8.5 }, true},
		{"soc too low", func(p *model.SeasonParams) { p.SOCPercent = 0 }, true},
		{"fertilizer max", func(p *model.SeasonParams) { p.FertilizerNKgHa = 250 }, false},
		{"fertilizer negative", func(p *model.SeasonParams) { p.FertilizerNKgHa = -5 }, true},
		{"pest too high", func(p *model.SeasonParams) { p.PestDiseaseLevel = 4 }, true},
		{"unknown country", func(p *model.SeasonParams) { p.Country = "Rwanda" }, true},
		{"unknown crop", func(p *model.SeasonParams) { p.Crop = "Rice" }, true},
		{"baseline country", func(p *model.SeasonParams) { p.Country = "Ethiopia" }, false},
		{"baseline crop", func(p *model.SeasonParams) { p.Crop = "Beans" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.DefaultSeasonParams()
			tt.mutate(&p)
			_, err := model.NewSeasonInput(p)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewSeasonInput_ErrorNamesField(t *testing.T) {
	p := model.DefaultSeasonParams()
	p.SoilPH = 9
	_, err := model.NewSeasonInput(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "soil_ph")
}
