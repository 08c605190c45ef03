package ml

import (
	"math"
	"sort"
)

// GradientBoosting is stagewise logit boosting: shallow regression trees are
// fit to the gradient of the log-loss and added with shrinkage. Predict
// thresholds the boosted probability at 0.5, so it is classifier-style.
type GradientBoosting struct {
	NumStages    int
	LearningRate float64
	MaxDepth     int

	baseScore float64
	stages    []*regressionTree
	nFeatures int
}

func NewGradientBoosting(numStages int, learningRate float64, maxDepth int) *GradientBoosting {
	return &GradientBoosting{NumStages: numStages, LearningRate: learningRate, MaxDepth: maxDepth}
}

func (m *GradientBoosting) Fit(X [][]float64, y []float64) error {
	if err := checkTrainingSet(X, y); err != nil {
		return err
	}
	if m.NumStages <= 0 {
		m.NumStages = 100
	}
	if m.LearningRate <= 0 {
		m.LearningRate = 0.1
	}
	if m.MaxDepth <= 0 {
		m.MaxDepth = 3
	}
	m.nFeatures = len(X[0])

	// initial score: log-odds of the positive class
	pos := 0.0
	for _, label := range y {
		pos += label
	}
	p := pos / float64(len(y))
	p = clamp(p, 1e-6, 1-1e-6)
	m.baseScore = math.Log(p / (1 - p))

	scores := make([]float64, len(y))
	for i := range scores {
		scores[i] = m.baseScore
	}

	m.stages = make([]*regressionTree, 0, m.NumStages)
	residual := make([]float64, len(y))
	for stage := 0; stage < m.NumStages; stage++ {
		for i := range y {
			residual[i] = y[i] - sigmoid(scores[i])
		}
		tree := newRegressionTree(m.MaxDepth)
		tree.fit(X, residual)
		m.stages = append(m.stages, tree)
		for i, row := range X {
			scores[i] += m.LearningRate * tree.predict(row)
		}
	}
	return nil
}

// Predict returns discrete 0/1 labels from the boosted probability.
func (m *GradientBoosting) Predict(X [][]float64) ([]float64, error) {
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

// PredictProba returns sigmoid of the summed stage scores.
func (m *GradientBoosting) PredictProba(X [][]float64) ([]float64, error) {
	if len(m.stages) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkPredictSet(X, m.nFeatures); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i, row := range X {
		score := m.baseScore
		for _, tree := range m.stages {
			score += m.LearningRate * tree.predict(row)
		}
		out[i] = sigmoid(score)
	}
	return out, nil
}

// FeatureAttribution sums the stages' variance reductions, normalized to
// sum 1.
func (m *GradientBoosting) FeatureAttribution() []float64 {
	if len(m.stages) == 0 {
		return nil
	}
	out := make([]float64, m.nFeatures)
	for _, tree := range m.stages {
		for j, v := range tree.importances {
			out[j] += v
		}
	}
	normalize(out)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// regressionTree is a shallow CART regressor on squared error, used only as
// a boosting stage. Same flattened-node layout as DecisionTree, with mean
// targets at the leaves and variance-reduction splits.
type regressionTree struct {
	maxDepth    int
	nodes       []regNode
	importances []float64
}

type regNode struct {
	FeatureIdx int
	Threshold  float64
	LeftChild  int
	RightChild int
	Value      float64
	IsLeaf     bool
}

func newRegressionTree(maxDepth int) *regressionTree {
	return &regressionTree{maxDepth: maxDepth}
}

func (t *regressionTree) fit(X [][]float64, target []float64) {
	t.importances = make([]float64, len(X[0]))
	indices := make([]int, len(X))
	for i := range indices {
		indices[i] = i
	}
	t.nodes = t.build(X, target, indices, 0, len(X))
}

func (t *regressionTree) predict(row []float64) float64 {
	idx := 0
	for {
		node := t.nodes[idx]
		if node.IsLeaf {
			return node.Value
		}
		if row[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

func (t *regressionTree) build(X [][]float64, target []float64, indices []int, depth, nTotal int) []regNode {
	mean, variance := meanVariance(target, indices)
	leaf := regNode{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Value: mean, IsLeaf: true}
	if depth >= t.maxDepth || len(indices) < 2 || variance == 0 {
		return []regNode{leaf}
	}

	feature, threshold, gain, ok := t.bestSplit(X, target, indices, variance)
	if !ok || gain <= 0 {
		return []regNode{leaf}
	}

	var left, right []int
	for _, i := range indices {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return []regNode{leaf}
	}

	t.importances[feature] += float64(len(indices)) / float64(nTotal) * gain

	leftNodes := t.build(X, target, left, depth+1, nTotal)
	rightNodes := t.build(X, target, right, depth+1, nTotal)

	nodes := make([]regNode, 0, 1+len(leftNodes)+len(rightNodes))
	nodes = append(nodes, regNode{
		FeatureIdx: feature,
		Threshold:  threshold,
		LeftChild:  1,
		RightChild: 1 + len(leftNodes),
		Value:      mean,
	})
	nodes = appendRegSubtree(nodes, leftNodes, 1)
	nodes = appendRegSubtree(nodes, rightNodes, 1+len(leftNodes))
	return nodes
}

func appendRegSubtree(nodes, subtree []regNode, offset int) []regNode {
	for _, node := range subtree {
		if !node.IsLeaf {
			node.LeftChild += offset
			node.RightChild += offset
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func (t *regressionTree) bestSplit(X [][]float64, target []float64, indices []int, parentVar float64) (int, float64, float64, bool) {
	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	values := make([]float64, len(indices))
	for feature := 0; feature < len(t.importances); feature++ {
		for k, i := range indices {
			values[k] = X[i][feature]
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		prev := sorted[0]
		for _, v := range sorted[1:] {
			if v == prev {
				continue
			}
			threshold := (prev + v) / 2
			prev = v

			var nL, sumL, sqL, nR, sumR, sqR float64
			for _, i := range indices {
				tv := target[i]
				if X[i][feature] <= threshold {
					nL++
					sumL += tv
					sqL += tv * tv
				} else {
					nR++
					sumR += tv
					sqR += tv * tv
				}
			}
			if nL == 0 || nR == 0 {
				continue
			}
			total := nL + nR
			varL := sqL/nL - (sumL/nL)*(sumL/nL)
			varR := sqR/nR - (sumR/nR)*(sumR/nR)
			gain := parentVar - (nL/total*varL + nR/total*varR)
			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}
	if bestFeature == -1 {
		return -1, 0, 0, false
	}
	return bestFeature, bestThreshold, bestGain, true
}

func meanVariance(target []float64, indices []int) (float64, float64) {
	if len(indices) == 0 {
		return 0, 0
	}
	var sum, sq float64
	for _, i := range indices {
		sum += target[i]
		sq += target[i] * target[i]
	}
	n := float64(len(indices))
	mean := sum / n
	return mean, sq/n - mean*mean
}
