package ml

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LassoRegression is an L1-regularized least-squares regressor trained with
// cyclic coordinate descent and soft-thresholding. Regressor-style: Predict
// returns continuous scores. The L1 penalty drives weak coefficients to
// exactly zero, which is what makes its attribution column sparse.
type LassoRegression struct {
	Alpha    float64
	MaxIters int
	Tol      float64

	weights   []float64
	intercept float64
	fitted    bool
}

func NewLassoRegression(alpha float64) *LassoRegression {
	return &LassoRegression{Alpha: alpha, MaxIters: 1000, Tol: 1e-6}
}

// Fit minimizes (1/2n)·||y − Xw − b||² + α·||w||₁.
func (m *LassoRegression) Fit(X [][]float64, y []float64) error {
	if err := checkTrainingSet(X, y); err != nil {
		return err
	}
	if m.Alpha < 0 {
		m.Alpha = 0
	}
	if m.MaxIters <= 0 {
		m.MaxIters = 1000
	}
	if m.Tol <= 0 {
		m.Tol = 1e-6
	}

	n := len(X)
	width := len(X[0])
	m.weights = make([]float64, width)

	// column views and per-column squared norms
	cols := make([][]float64, width)
	norms := make([]float64, width)
	for j := 0; j < width; j++ {
		col := make([]float64, n)
		for i := range X {
			col[i] = X[i][j]
		}
		cols[j] = col
		norms[j] = floats.Dot(col, col)
	}

	m.intercept = floats.Sum(y) / float64(n)
	residual := make([]float64, n)
	for i := range y {
		residual[i] = y[i] - m.intercept
	}

	penalty := m.Alpha * float64(n)
	for iter := 0; iter < m.MaxIters; iter++ {
		maxDelta := 0.0
		for j := 0; j < width; j++ {
			if norms[j] == 0 {
				continue
			}
			old := m.weights[j]
			// rho is the correlation of column j with the residual,
			// with column j's own contribution added back
			rho := floats.Dot(cols[j], residual) + old*norms[j]
			updated := softThreshold(rho, penalty) / norms[j]
			if updated != old {
				delta := updated - old
				floats.AddScaled(residual, -delta, cols[j])
				m.weights[j] = updated
				if d := math.Abs(delta); d > maxDelta {
					maxDelta = d
				}
			}
		}
		// re-center the intercept on the current residual
		shift := floats.Sum(residual) / float64(n)
		if shift != 0 {
			m.intercept += shift
			for i := range residual {
				residual[i] -= shift
			}
		}
		if maxDelta < m.Tol {
			break
		}
	}
	m.fitted = true
	return nil
}

// Predict returns continuous scores, one per row.
func (m *LassoRegression) Predict(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if err := checkPredictSet(X, len(m.weights)); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = m.intercept + floats.Dot(m.weights, row)
	}
	return out, nil
}

// FeatureAttribution returns the signed learned coefficients; zeros mark
// features the penalty eliminated.
func (m *LassoRegression) FeatureAttribution() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.weights))
	copy(out, m.weights)
	return out
}

func (m *LassoRegression) Intercept() float64 { return m.intercept }

func softThreshold(value, penalty float64) float64 {
	switch {
	case value > penalty:
		return value - penalty
	case value < -penalty:
		return value + penalty
	default:
		return 0
	}
}
