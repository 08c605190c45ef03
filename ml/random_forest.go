package ml

import (
	"math"
	"math/rand"
)

// RandomForest bags seeded decision trees over bootstrap samples with
// per-split feature subsampling, and predicts by majority vote. Trees are
// trained sequentially; the forest is deterministic for a fixed Seed.
type RandomForest struct {
	NumTrees    int
	MaxDepth    int
	MaxFeatures int // per-split subset size; 0 means sqrt(num features)
	Seed        int64

	trees     []*DecisionTree
	nFeatures int
}

func NewRandomForest(numTrees, maxDepth int, seed int64) *RandomForest {
	return &RandomForest{NumTrees: numTrees, MaxDepth: maxDepth, Seed: seed}
}

func (m *RandomForest) Fit(X [][]float64, y []float64) error {
	if err := checkTrainingSet(X, y); err != nil {
		return err
	}
	if m.NumTrees <= 0 {
		m.NumTrees = 100
	}
	if m.MaxDepth <= 0 {
		m.MaxDepth = 8
	}
	m.nFeatures = len(X[0])
	maxFeatures := m.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(m.nFeatures)))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	n := len(X)
	m.trees = make([]*DecisionTree, m.NumTrees)
	for t := 0; t < m.NumTrees; t++ {
		rng := rand.New(rand.NewSource(m.Seed + int64(t)))

		sampleX := make([][]float64, n)
		sampleY := make([]float64, n)
		for i := 0; i < n; i++ {
			pick := rng.Intn(n)
			sampleX[i] = X[pick]
			sampleY[i] = y[pick]
		}

		tree := NewDecisionTree(m.MaxDepth)
		tree.maxFeatures = maxFeatures
		tree.rng = rng
		if err := tree.Fit(sampleX, sampleY); err != nil {
			return err
		}
		m.trees[t] = tree
	}
	return nil
}

// Predict returns the majority vote across trees as discrete 0/1 labels.
func (m *RandomForest) Predict(X [][]float64) ([]float64, error) {
	probs, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(probs))
	for i, p := range probs {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out, nil
}

// PredictProba returns the fraction of trees voting positive per row.
func (m *RandomForest) PredictProba(X [][]float64) ([]float64, error) {
	if len(m.trees) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkPredictSet(X, m.nFeatures); err != nil {
		return nil, err
	}
	votes := make([]float64, len(X))
	for _, tree := range m.trees {
		labels, err := tree.Predict(X)
		if err != nil {
			return nil, err
		}
		for i, label := range labels {
			votes[i] += label
		}
	}
	for i := range votes {
		votes[i] /= float64(len(m.trees))
	}
	return votes, nil
}

// FeatureAttribution averages the trees' impurity reductions, renormalized
// to sum 1.
func (m *RandomForest) FeatureAttribution() []float64 {
	if len(m.trees) == 0 {
		return nil
	}
	out := make([]float64, m.nFeatures)
	for _, tree := range m.trees {
		for j, v := range tree.FeatureAttribution() {
			out[j] += v
		}
	}
	normalize(out)
	return out
}
