package ml

import (
	"fmt"

	"github.com/harvestguard/croprisk/internal/domain/port"
)

// Compile-time assertion that LabelEncoder implements port.LabelDecoder.
var _ port.LabelDecoder = (*LabelEncoder)(nil)

type labelEncoderExport struct {
	Classes []string `json:"classes"`
}

// LabelEncoder is the inverse of scikit-learn's LabelEncoder: class index i
// decodes to Classes[i].
type LabelEncoder struct {
	classes []string
}

func newLabelEncoder(exp labelEncoderExport) (*LabelEncoder, error) {
	if len(exp.Classes) == 0 {
		return nil, fmt.Errorf("%w: label encoder has no classes", ErrArtifactCorrupt)
	}
	seen := make(map[string]bool, len(exp.Classes))
	for _, c := range exp.Classes {
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrArtifactCorrupt, c)
		}
		seen[c] = true
	}
	return &LabelEncoder{classes: exp.Classes}, nil
}

// InverseTransform returns the label for an encoded class index.
func (e *LabelEncoder) InverseTransform(class int) (string, error) {
	if class < 0 || class >= len(e.classes) {
		return "", fmt.Errorf("class index %d not in label encoder (%d classes)", class, len(e.classes))
	}
	return e.classes[class], nil
}

// Classes returns the labels in index order.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}
