package ml

import (
	"context"
	"fmt"

	"github.com/harvestguard/croprisk/internal/domain/model"
	"github.com/harvestguard/croprisk/internal/domain/port"
)

// ForestFormat tags the JSON export of a scikit-learn RandomForestClassifier.
const ForestFormat = "croprisk.forest/v1"

const leafChild = -1

// Compile-time assertion that RandomForest implements port.Classifier.
var _ port.Classifier = (*RandomForest)(nil)

// treeExport mirrors the node arrays of sklearn.tree._tree.Tree. value holds
// the per-class weights of every node; only leaf rows are read.
type treeExport struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

type forestExport struct {
	Format       string       `json:"format"`
	NFeatures    int          `json:"n_features"`
	FeatureNames []string     `json:"feature_names"`
	Classes      []int        `json:"classes"`
	Trees        []treeExport `json:"trees"`
}

// RandomForest is an immutable decision forest. It is safe for concurrent use.
type RandomForest struct {
	featureNames []string
	classes      []int
	trees        []treeExport
	nFeatures    int
}

func newRandomForest(exp forestExport) (*RandomForest, error) {
	if exp.Format != ForestFormat {
		return nil, fmt.Errorf("%w: unsupported classifier format %q", ErrArtifactCorrupt, exp.Format)
	}
	if exp.NFeatures <= 0 {
		return nil, fmt.Errorf("%w: n_features must be positive, got %d", ErrArtifactCorrupt, exp.NFeatures)
	}
	if len(exp.FeatureNames) != exp.NFeatures {
		return nil, fmt.Errorf("%w: %d feature names for %d features", ErrArtifactCorrupt, len(exp.FeatureNames), exp.NFeatures)
	}
	if len(exp.Classes) == 0 {
		return nil, fmt.Errorf("%w: classifier has no classes", ErrArtifactCorrupt)
	}
	if len(exp.Trees) == 0 {
		return nil, fmt.Errorf("%w: classifier has no trees", ErrArtifactCorrupt)
	}
	for i, tr := range exp.Trees {
		if err := validateTree(tr, exp.NFeatures, len(exp.Classes)); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrArtifactCorrupt, i, err)
		}
	}

	return &RandomForest{
		featureNames: exp.FeatureNames,
		classes:      exp.Classes,
		trees:        exp.Trees,
		nFeatures:    exp.NFeatures,
	}, nil
}

// validateTree checks array shapes and that every child index points
// forward, which sklearn guarantees and which bounds traversal.
func validateTree(tr treeExport, nFeatures, nClasses int) error {
	n := len(tr.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("no nodes")
	}
	if len(tr.ChildrenRight) != n || len(tr.Feature) != n || len(tr.Threshold) != n || len(tr.Value) != n {
		return fmt.Errorf("node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		left, right := tr.ChildrenLeft[i], tr.ChildrenRight[i]
		if left == leafChild || right == leafChild {
			if left != right {
				return fmt.Errorf("node %d has a single child", i)
			}
			if len(tr.Value[i]) != nClasses {
				return fmt.Errorf("leaf %d has %d class weights, want %d", i, len(tr.Value[i]), nClasses)
			}
			total := 0.0
			for _, w := range tr.Value[i] {
				if w < 0 {
					return fmt.Errorf("leaf %d has a negative weight", i)
				}
				total += w
			}
			if total <= 0 {
				return fmt.Errorf("leaf %d has no weight", i)
			}
			continue
		}
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("node %d has child out of range", i)
		}
		if f := tr.Feature[i]; f < 0 || f >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, f, nFeatures)
		}
	}
	return nil
}

// NumFeatures returns the vector width the forest was trained on.
func (f *RandomForest) NumFeatures() int { return f.nFeatures }

// FeatureNames returns the training column names.
func (f *RandomForest) FeatureNames() []string {
	return append([]string(nil), f.featureNames...)
}

// Classes returns the encoded class indices in probability order.
func (f *RandomForest) Classes() []int {
	return append([]int(nil), f.classes...)
}

// Predict averages the normalised leaf weights of every tree and returns
// the class with the highest mean probability. Ties go to the lowest index.
func (f *RandomForest) Predict(_ context.Context, features []float64) (port.Prediction, error) {
	if len(features) != f.nFeatures {
		return port.Prediction{}, fmt.Errorf("%w: forest expects %d features, got %d",
			model.ErrSchemaMismatch, f.nFeatures, len(features))
	}

	probs := make([]float64, len(f.classes))
	for _, tr := range f.trees {
		weights := tr.Value[leafFor(tr, features)]
		total := 0.0
		for _, w := range weights {
			total += w
		}
		for i, w := range weights {
			probs[i] += w / total
		}
	}

	best := 0
	for i := range probs {
		probs[i] /= float64(len(f.trees))
		if probs[i] > probs[best] {
			best = i
		}
	}

	return port.Prediction{
		Class:         f.classes[best],
		Classes:       f.Classes(),
		Probabilities: probs,
	}, nil
}

func leafFor(tr treeExport, x []float64) int {
	node := 0
	for tr.ChildrenLeft[node] != leafChild {
		if x[tr.Feature[node]] <= tr.Threshold[node] {
			node = tr.ChildrenLeft[node]
		} else {
			node = tr.ChildrenRight[node]
		}
	}
	return node
}
