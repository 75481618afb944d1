package service

import (
	"context"
	"fmt"

	"github.com/harvestguard/croprisk/internal/domain/model"
	"github.com/harvestguard/croprisk/internal/domain/port"
	"github.com/harvestguard/croprisk/internal/domain/valueobject"
)

// Classification is the decoded result of a prediction.
type Classification struct {
	Level valueobject.RiskLevel
	// Probabilities maps each decoded class label to its averaged probability.
	Probabilities map[string]float64
}

// Predictor runs the classifier on an encoded vector and decodes the class.
type Predictor struct {
	classifier port.Classifier
	decoder    port.LabelDecoder
}

// NewPredictor creates a Predictor over a loaded classifier and label decoder.
func NewPredictor(classifier port.Classifier, decoder port.LabelDecoder) *Predictor {
	return &Predictor{
		classifier: classifier,
		decoder:    decoder,
	}
}

// Predict classifies the vector. A width mismatch or a label outside
// Low/Medium/High fails the prediction; nothing is repaired or defaulted.
func (p *Predictor) Predict(ctx context.Context, v model.FeatureVector) (Classification, error) {
	if want := p.classifier.NumFeatures(); want != v.Len() {
		return Classification{}, fmt.Errorf("%w: classifier expects %d features, vector has %d",
			model.ErrSchemaMismatch, want, v.Len())
	}

	raw, err := p.classifier.Predict(ctx, v.Values())
	if err != nil {
		return Classification{}, fmt.Errorf("classifier prediction failed: %w", err)
	}
	if len(raw.Probabilities) != len(raw.Classes) {
		return Classification{}, fmt.Errorf("classifier returned %d probabilities for %d classes",
			len(raw.Probabilities), len(raw.Classes))
	}

	label, err := p.decoder.InverseTransform(raw.Class)
	if err != nil {
		return Classification{}, fmt.Errorf("failed to decode class %d: %w", raw.Class, err)
	}

	level, err := valueobject.RiskLevelFromString(label)
	if err != nil {
		return Classification{}, err
	}

	probs := make(map[string]float64, len(raw.Classes))
	for i, class := range raw.Classes {
		name, err := p.decoder.InverseTransform(class)
		if err != nil {
			return Classification{}, fmt.Errorf("failed to decode class %d: %w", class, err)
		}
		probs[name] = raw.Probabilities[i]
	}

	return Classification{
		Level:         level,
		Probabilities: probs,
	}, nil
}
