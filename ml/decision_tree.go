package ml

import (
	"math"
	"math/rand"
	"sort"
)

// DecisionTree is a CART binary classifier. The fitted tree is stored as a
// flattened node array; Predict walks it from index 0.
type DecisionTree struct {
	MaxDepth        int
	MinSamplesSplit int

	// maxFeatures > 0 restricts each split to a random feature subset;
	// used by RandomForest.
	maxFeatures int
	rng         *rand.Rand

	nodes       []treeNode
	nFeatures   int
	importances []float64
}

type treeNode struct {
	FeatureIdx int
	Threshold  float64
	LeftChild  int
	RightChild int
	Prob       float64
	IsLeaf     bool
}

func NewDecisionTree(maxDepth int) *DecisionTree {
	return &DecisionTree{MaxDepth: maxDepth, MinSamplesSplit: 2}
}

func (dt *DecisionTree) Fit(X [][]float64, y []float64) error {
	if err := checkTrainingSet(X, y); err != nil {
		return err
	}
	if dt.MaxDepth <= 0 {
		dt.MaxDepth = 5
	}
	if dt.MinSamplesSplit < 2 {
		dt.MinSamplesSplit = 2
	}
	dt.nFeatures = len(X[0])
	dt.importances = make([]float64, dt.nFeatures)

	indices := make([]int, len(X))
	for i := range indices {
		indices[i] = i
	}
	dt.nodes = dt.buildNodes(X, y, indices, 0, len(X))
	normalize(dt.importances)
	return nil
}

// Predict returns discrete 0/1 labels, one per row.
func (dt *DecisionTree) Predict(X [][]float64) ([]float64, error) {
	probs, err := dt.PredictProba(X)
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

// PredictProba returns the positive-class fraction of the leaf each row
// falls into.
func (dt *DecisionTree) PredictProba(X [][]float64) ([]float64, error) {
	if len(dt.nodes) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkPredictSet(X, dt.nFeatures); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i, row := range X {
		idx := 0
		for {
			node := dt.nodes[idx]
			if node.IsLeaf {
				out[i] = node.Prob
				break
			}
			if row[node.FeatureIdx] <= node.Threshold {
				idx = node.LeftChild
			} else {
				idx = node.RightChild
			}
		}
	}
	return out, nil
}

// FeatureAttribution returns per-feature impurity reduction, normalized to
// sum 1 when any split was made.
func (dt *DecisionTree) FeatureAttribution() []float64 {
	if len(dt.nodes) == 0 {
		return nil
	}
	out := make([]float64, len(dt.importances))
	copy(out, dt.importances)
	return out
}

// buildNodes returns a subtree as a flattened slice with the subtree root at
// index 0 and child indices relative to that slice. nTotal is the full
// training-set size, used to weight importance contributions.
func (dt *DecisionTree) buildNodes(X [][]float64, y []float64, indices []int, depth, nTotal int) []treeNode {
	prob := positiveFraction(y, indices)
	leaf := treeNode{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Prob: prob, IsLeaf: true}

	if depth >= dt.MaxDepth || len(indices) < dt.MinSamplesSplit || prob == 0 || prob == 1 {
		return []treeNode{leaf}
	}

	feature, threshold, gain, ok := dt.findBestSplit(X, y, indices)
	if !ok || gain <= 0 {
		return []treeNode{leaf}
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
		return []treeNode{leaf}
	}

	dt.importances[feature] += float64(len(indices)) / float64(nTotal) * gain

	leftNodes := dt.buildNodes(X, y, left, depth+1, nTotal)
	rightNodes := dt.buildNodes(X, y, right, depth+1, nTotal)

	nodes := make([]treeNode, 0, 1+len(leftNodes)+len(rightNodes))
	nodes = append(nodes, treeNode{
		FeatureIdx: feature,
		Threshold:  threshold,
		LeftChild:  1,
		RightChild: 1 + len(leftNodes),
		Prob:       prob,
	})
	nodes = appendSubtree(nodes, leftNodes, 1)
	nodes = appendSubtree(nodes, rightNodes, 1+len(leftNodes))
	return nodes
}

// appendSubtree embeds a relative-indexed subtree at the given offset.
func appendSubtree(nodes, subtree []treeNode, offset int) []treeNode {
	for _, node := range subtree {
		if !node.IsLeaf {
			node.LeftChild += offset
			node.RightChild += offset
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// findBestSplit scans candidate thresholds (midpoints between consecutive
// distinct values) over all features, or a random subset when maxFeatures
// is set, and returns the split with the largest gini reduction.
func (dt *DecisionTree) findBestSplit(X [][]float64, y []float64, indices []int) (int, float64, float64, bool) {
	features := dt.candidateFeatures()
	parent := giniOf(positiveFraction(y, indices))

	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	values := make([]float64, len(indices))
	for _, feature := range features {
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

			var nL, posL, nR, posR float64
			for _, i := range indices {
				if X[i][feature] <= threshold {
					nL++
					posL += y[i]
				} else {
					nR++
					posR += y[i]
				}
			}
			if nL == 0 || nR == 0 {
				continue
			}
			total := nL + nR
			child := nL/total*giniOf(posL/nL) + nR/total*giniOf(posR/nR)
			gain := parent - child
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

func (dt *DecisionTree) candidateFeatures() []int {
	all := make([]int, dt.nFeatures)
	for i := range all {
		all[i] = i
	}
	if dt.maxFeatures <= 0 || dt.maxFeatures >= dt.nFeatures || dt.rng == nil {
		return all
	}
	dt.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	return all[:dt.maxFeatures]
}

// giniOf is the binary gini impurity for a positive-class fraction.
func giniOf(p float64) float64 {
	return 2 * p * (1 - p)
}

func positiveFraction(y []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range indices {
		sum += y[i]
	}
	return sum / float64(len(indices))
}

func normalize(values []float64) {
	sum := 0.0
	for _, v := range values {
		sum += math.Abs(v)
	}
	if sum == 0 {
		return
	}
	for i := range values {
		values[i] /= sum
	}
}
