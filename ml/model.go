package ml

import "errors"

// Estimator is the uniform capability shared by all six models: fit once on
// a feature matrix and a 0/1 label vector, then produce one output per row.
// Classifier-style estimators return discrete 0/1 values from Predict;
// regressor-style estimators return continuous scores that the caller must
// threshold.
type Estimator interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
}

// FeatureAttributor is the optional second capability: a per-feature score
// of the fitted model's reliance on each input column. Linear models return
// signed coefficients; tree ensembles return non-negative impurity
// reductions normalized to sum 1. The two kinds are numerically
// incomparable and must never be merged into one ranking.
type FeatureAttributor interface {
	FeatureAttribution() []float64
}

// ErrNotFitted is returned by Predict and FeatureAttribution before Fit.
var ErrNotFitted = errors.New("model not fitted")

func checkTrainingSet(X [][]float64, y []float64) error {
	if len(X) == 0 || len(y) == 0 {
		return errors.New("training set is empty")
	}
	if len(X) != len(y) {
		return errors.New("features and labels size mismatch")
	}
	width := len(X[0])
	if width == 0 {
		return errors.New("feature matrix has no columns")
	}
	for _, row := range X {
		if len(row) != width {
			return errors.New("ragged feature matrix")
		}
	}
	for _, label := range y {
		if label != 0 && label != 1 {
			return errors.New("labels must be 0 or 1")
		}
	}
	return nil
}

func checkPredictSet(X [][]float64, width int) error {
	if len(X) == 0 {
		return errors.New("prediction set is empty")
	}
	for _, row := range X {
		if len(row) != width {
			return errors.New("feature count mismatch between fit and predict")
		}
	}
	return nil
}
