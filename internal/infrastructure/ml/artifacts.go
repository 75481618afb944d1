package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/harvestguard/croprisk/internal/domain/model"
)

var (
	// ErrArtifactNotFound is returned when an artifact file does not exist.
	ErrArtifactNotFound = errors.New("model artifact not found")

	// ErrArtifactCorrupt is returned when an artifact cannot be decoded or
	// is structurally invalid.
	ErrArtifactCorrupt = errors.New("model artifact corrupt")
)

// Artifacts holds the classifier and label encoder loaded at startup. It is
// never mutated after LoadArtifacts returns and may be shared freely.
type Artifacts struct {
	Classifier     *RandomForest
	Encoder        *LabelEncoder
	ClassifierPath string
	EncoderPath    string
	LoadedAt       time.Time
}

// LoadArtifacts reads both artifacts and checks that the classifier was
// trained on the encoder's feature schema and that every class it can emit
// decodes.
func LoadArtifacts(classifierPath, encoderPath string) (*Artifacts, error) {
	var forestExp forestExport
	if err := readJSON(classifierPath, &forestExp); err != nil {
		return nil, err
	}
	forest, err := newRandomForest(forestExp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", classifierPath, err)
	}

	var encoderExp labelEncoderExport
	if err := readJSON(encoderPath, &encoderExp); err != nil {
		return nil, err
	}
	encoder, err := newLabelEncoder(encoderExp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", encoderPath, err)
	}

	if !slices.Equal(forest.FeatureNames(), model.FeatureNames()) {
		return nil, fmt.Errorf("%w: classifier %s was trained on columns %v, encoder emits %v",
			model.ErrSchemaMismatch, classifierPath, forest.FeatureNames(), model.FeatureNames())
	}

	for _, class := range forest.Classes() {
		if _, err := encoder.InverseTransform(class); err != nil {
			return nil, fmt.Errorf("%w: classifier class %d has no label in %s", ErrArtifactCorrupt, class, encoderPath)
		}
	}

	return &Artifacts{
		Classifier:     forest,
		Encoder:        encoder,
		ClassifierPath: classifierPath,
		EncoderPath:    encoderPath,
		LoadedAt:       time.Now().UTC(),
	}, nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrArtifactCorrupt, path, err)
	}
	return nil
}
