package ml

import (
	"math"
)

// LogisticRegression is a binary classifier trained with full-batch gradient
// descent on the cross-entropy loss. Predict returns discrete 0/1 labels by
// thresholding the sigmoid at 0.5.
type LogisticRegression struct {
	LearningRate float64
	Epochs       int
	L2           float64

	weights   []float64
	intercept float64
	fitted    bool
}

func NewLogisticRegression(learningRate float64, epochs int) *LogisticRegression {
	return &LogisticRegression{LearningRate: learningRate, Epochs: epochs}
}

func (m *LogisticRegression) Fit(X [][]float64, y []float64) error {
	if err := checkTrainingSet(X, y); err != nil {
		return err
	}
	if m.LearningRate <= 0 {
		m.LearningRate = 0.1
	}
	if m.Epochs <= 0 {
		m.Epochs = 200
	}

	n := float64(len(X))
	width := len(X[0])
	m.weights = make([]float64, width)
	m.intercept = 0

	grad := make([]float64, width)
	for epoch := 0; epoch < m.Epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		gradB := 0.0
		for i, row := range X {
			d := sigmoid(m.decision(row)) - y[i]
			for j, v := range row {
				grad[j] += d * v
			}
			gradB += d
		}
		for j := range m.weights {
			grad[j] = grad[j]/n + m.L2*m.weights[j]
			m.weights[j] -= m.LearningRate * grad[j]
		}
		m.intercept -= m.LearningRate * gradB / n
	}
	m.fitted = true
	return nil
}

func (m *LogisticRegression) Predict(X [][]float64) ([]float64, error) {
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

// PredictProba returns p(y=1) per row.
func (m *LogisticRegression) PredictProba(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if err := checkPredictSet(X, len(m.weights)); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = sigmoid(m.decision(row))
	}
	return out, nil
}

// FeatureAttribution returns the signed learned coefficients.
func (m *LogisticRegression) FeatureAttribution() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.weights))
	copy(out, m.weights)
	return out
}

func (m *LogisticRegression) Intercept() float64 { return m.intercept }

func (m *LogisticRegression) decision(row []float64) float64 {
	sum := m.intercept
	for j, v := range row {
		sum += m.weights[j] * v
	}
	return sum
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
