package ml_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvestguard/croprisk/internal/domain/model"
	"github.com/harvestguard/croprisk/internal/domain/service"
	"github.com/harvestguard/croprisk/internal/domain/valueobject"
	"github.com/harvestguard/croprisk/internal/infrastructure/ml"
	"github.com/harvestguard/croprisk/pkg/testutil"
)

const (
	forestPath  = "testdata/forest.json"
	encoderPath = "testdata/encoder.json"
)

func TestLoadArtifacts(t *testing.T) {
	a, err := ml.LoadArtifacts(forestPath, encoderPath)
	require.NoError(t, err)

	assert.Equal(t, 19, a.Classifier.NumFeatures())
	assert.Equal(t, model.FeatureNames(), a.Classifier.FeatureNames())
	assert.Equal(t, []int{0, 1, 2}, a.Classifier.Classes())
	assert.Equal(t, []string{"High", "Low", "Medium"}, a.Encoder.Classes())
	assert.Equal(t, forestPath, a.ClassifierPath)
	assert.Equal(t, encoderPath, a.EncoderPath)
	assert.False(t, a.LoadedAt.IsZero())
}

func TestLoadArtifacts_Missing(t *testing.T) {
	_, err := ml.LoadArtifacts("testdata/does-not-exist.json", encoderPath)
	testutil.RequireErrorIs(t, err, ml.ErrArtifactNotFound)
	assert.Contains(t, err.Error(), "does-not-exist.json")

	_, err = ml.LoadArtifacts(forestPath, "testdata/missing-encoder.json")
	testutil.RequireErrorIs(t, err, ml.ErrArtifactNotFound)
}

func TestLoadArtifacts_Truncated(t *testing.T) {
	_, err := ml.LoadArtifacts("testdata/forest_truncated.json", encoderPath)
	testutil.RequireErrorIs(t, err, ml.ErrArtifactCorrupt)
}

func TestLoadArtifacts_ReorderedColumns(t *testing.T) {
	_, err := ml.LoadArtifacts("testdata/forest_reordered.json", encoderPath)
	testutil.RequireErrorIs(t, err, model.ErrSchemaMismatch)
}

func TestLoadArtifacts_UndecodableClass(t *testing.T) {
	_, err := ml.LoadArtifacts(forestPath, "testdata/encoder_two_classes.json")
	testutil.RequireErrorIs(t, err, ml.ErrArtifactCorrupt)
	assert.Contains(t, err.Error(), "class 2")
}

func TestLoadArtifacts_CorruptEncoder(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty classes", `{"classes":[]}`},
		{"duplicate labels", `{"classes":["Low","Low","High"]}`},
		{"not json", `joblib pickle`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteTempFile(t, "encoder.json", tt.content)
			_, err := ml.LoadArtifacts(forestPath, path)
			testutil.RequireErrorIs(t, err, ml.ErrArtifactCorrupt)
		})
	}
}

func TestLoadArtifacts_CorruptForest(t *testing.T) {
	names := `["rainfall_mm","avg_temp_c","heat_stress_days","ndvi_peak","soil_ph","soc_percent",` +
		`"fertilizer_n_kg_ha","pest_disease_level","irrigated","country_Kenya","country_Malawi",` +
		`"country_Tanzania","country_Uganda","country_Zambia","crop_Cassava","crop_Groundnut",` +
		`"crop_Maize","crop_Millet","crop_Sorghum"]`
	forest := func(trees string) string {
		return `{"format":"croprisk.forest/v1","n_features":19,"feature_names":` + names +
			`,"classes":[0,1,2],"trees":` + trees + `}`
	}

	tests := []struct {
		name    string
		content string
	}{
		{"wrong format", `{"format":"joblib","n_features":19,"feature_names":` + names + `,"classes":[0,1,2],"trees":[]}`},
		{"no trees", forest(`[]`)},
		{"no nodes", forest(`[{"children_left":[],"children_right":[],"feature":[],"threshold":[],"value":[]}]`)},
		{"ragged arrays", forest(`[{"children_left":[-1],"children_right":[-1,-1],"feature":[-2],"threshold":[-2],"value":[[1,1,1]]}]`)},
		{"backward child", forest(`[{"children_left":[1,0],"children_right":[1,-1],"feature":[0,-2],"threshold":[1,-2],"value":[[1,1,1],[1,1,1]]}]`)},
		{"child out of range", forest(`[{"children_left":[5,-1],"children_right":[1,-1],"feature":[0,-2],"threshold":[1,-2],"value":[[1,1,1],[1,1,1]]}]`)},
		{"split feature out of range", forest(`[{"children_left":[1,-1,-1],"children_right":[2,-1,-1],"feature":[19,-2,-2],"threshold":[1,-2,-2],"value":[[1,1,1],[1,0,0],[0,1,0]]}]`)},
		{"leaf width", forest(`[{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[1,1]]}]`)},
		{"empty leaf", forest(`[{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[0,0,0]]}]`)},
		{"single child", forest(`[{"children_left":[1,-1],"children_right":[-1,-1],"feature":[0,-2],"threshold":[1,-2],"value":[[1,1,1],[1,1,1]]}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteTempFile(t, "forest.json", tt.content)
			_, err := ml.LoadArtifacts(path, encoderPath)
			testutil.RequireErrorIs(t, err, ml.ErrArtifactCorrupt)
		})
	}
}

func TestLoadArtifacts_LabelOutsideRiskLevels(t *testing.T) {
	// Labels are only mapped to risk levels per request, so the load succeeds.
	a, err := ml.LoadArtifacts(forestPath, "testdata/encoder_unknown_label.json")
	require.NoError(t, err)

	predictor := service.NewPredictor(a.Classifier, a.Encoder)

	v, err := model.NewFeatureVector(vector(map[string]float64{"avg_temp_c": 32, "heat_stress_days": 16}))
	require.NoError(t, err)
	_, err = predictor.Predict(context.Background(), v)
	testutil.RequireErrorIs(t, err, valueobject.ErrUnknownRiskLabel)
	assert.Contains(t, err.Error(), "Severe")

	v, err = model.NewFeatureVector(vector(nil))
	require.NoError(t, err)
	got, err := predictor.Predict(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, valueobject.RiskLevelLow, got.Level)
}
