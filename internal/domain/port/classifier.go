package port

import "context"

// Prediction is the raw output of a classifier for one vector.
type Prediction struct {
	// Class is the encoded class index, as understood by the label decoder.
	Class int
	// Classes and Probabilities are parallel: Probabilities[i] is the
	// averaged probability of encoded class Classes[i].
	Classes       []int
	Probabilities []float64
}

// Classifier is a pre-trained, schema-positional model.
type Classifier interface {
	// Predict classifies a single vector in training column order.
	Predict(ctx context.Context, features []float64) (Prediction, error)

	// NumFeatures returns the vector width the model was trained on.
	NumFeatures() int
}

// LabelDecoder maps encoded class indices back to class names.
type LabelDecoder interface {
	InverseTransform(class int) (string, error)
}
