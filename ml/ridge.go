package ml

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RidgeRegression is an L2-regularized least-squares regressor, solved in
// closed form from the normal equations. It is regressor-style: Predict
// returns continuous scores that the caller thresholds to obtain labels.
type RidgeRegression struct {
	Alpha float64

	weights   []float64
	intercept float64
	fitted    bool
}

func NewRidgeRegression(alpha float64) *RidgeRegression {
	return &RidgeRegression{Alpha: alpha}
}

// Fit solves (XᵀX + αI)w = Xᵀy with the intercept left unpenalized.
func (m *RidgeRegression) Fit(X [][]float64, y []float64) error {
	if err := checkTrainingSet(X, y); err != nil {
		return err
	}
	if m.Alpha < 0 {
		m.Alpha = 0
	}

	n := len(X)
	width := len(X[0])
	aug := width + 1 // trailing ones column for the intercept

	design := mat.NewDense(n, aug, nil)
	for i, row := range X {
		for j, v := range row {
			design.Set(i, j, v)
		}
		design.Set(i, width, 1)
	}
	target := mat.NewVecDense(n, append([]float64(nil), y...))

	var gram mat.Dense
	gram.Mul(design.T(), design)
	for j := 0; j < width; j++ {
		gram.Set(j, j, gram.At(j, j)+m.Alpha)
	}

	var rhs mat.VecDense
	rhs.MulVec(design.T(), target)

	var solution mat.VecDense
	if err := solution.SolveVec(&gram, &rhs); err != nil {
		return fmt.Errorf("ridge: singular normal matrix: %w", err)
	}

	m.weights = make([]float64, width)
	for j := 0; j < width; j++ {
		m.weights[j] = solution.AtVec(j)
	}
	m.intercept = solution.AtVec(width)
	m.fitted = true
	return nil
}

// Predict returns continuous scores, one per row.
func (m *RidgeRegression) Predict(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if err := checkPredictSet(X, len(m.weights)); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i, row := range X {
		sum := m.intercept
		for j, v := range row {
			sum += m.weights[j] * v
		}
		out[i] = sum
	}
	return out, nil
}

// FeatureAttribution returns the signed learned coefficients.
func (m *RidgeRegression) FeatureAttribution() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.weights))
	copy(out, m.weights)
	return out
}

func (m *RidgeRegression) Intercept() float64 { return m.intercept }
