package study

import (
	"fmt"

	"go.uber.org/zap"

	"churnlab/dataset"
	"churnlab/eval"
	"churnlab/ml"
)

// Model display names, in report order.
const (
	NameLogistic         = "LogisticRegression"
	NameRidge            = "Ridge"
	NameLasso            = "Lasso"
	NameDecisionTree     = "DecisionTree"
	NameRandomForest     = "RandomForest"
	NameGradientBoosting = "GradientBoosting"
)

// ModelResult is one model's scored outcome.
type ModelResult struct {
	Name        string
	Regressor   bool // continuous output, thresholded at 0.5
	Report      *eval.Report
	Attribution []float64
}

// Results is the artifact of one study run: six model results in fixed
// order plus the assembled importance table.
type Results struct {
	Models     []ModelResult
	Importance *eval.ImportanceTable
	Features   []string
	TrainRows  int
	TestRows   int
}

// Runner executes the pipeline once, sequentially. Frames load through an
// LRU cache so a config pointing train and test at one file parses it once.
type Runner struct {
	config *Config
	logger *zap.Logger
	cache  *dataset.Cache
}

func NewRunner(config *Config, logger *zap.Logger) (*Runner, error) {
	if config == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := dataset.NewCache(4)
	if err != nil {
		return nil, err
	}
	return &Runner{config: config, logger: logger, cache: cache}, nil
}

// Run executes load, align, the six fits, and evaluation. Any stage error
// aborts the run; there is no partial-result reporting.
func (r *Runner) Run() (*Results, error) {
	opts := r.config.loadOptions()
	label := r.config.Data.Label

	train, err := r.cache.Load(r.config.Data.Train, opts)
	if err != nil {
		return nil, fmt.Errorf("load training data: %w", err)
	}
	test, err := r.cache.Load(r.config.Data.Test, opts)
	if err != nil {
		return nil, fmt.Errorf("load test data: %w", err)
	}
	r.logger.Info("datasets loaded",
		zap.Int("train_rows", train.NumRows()),
		zap.Int("test_rows", test.NumRows()),
		zap.Int("train_columns", train.NumColumns()),
		zap.Int("test_columns", test.NumColumns()))

	// pop labels on both sides before any schema work, so the label can
	// never leak into the aligned feature set
	trainLabels, err := train.Pop(label)
	if err != nil {
		return nil, fmt.Errorf("training label column: %w", err)
	}
	testLabelValues, err := test.Pop(label)
	if err != nil {
		return nil, fmt.Errorf("test label column: %w", err)
	}

	schema := train.Columns()
	if extra := dataset.ExtraColumns(schema, test); len(extra) > 0 {
		r.logger.Warn("dropping test-only columns", zap.Strings("columns", extra))
	}
	if err := dataset.Align(schema, test, label); err != nil {
		return nil, fmt.Errorf("align test features: %w", err)
	}

	trainX := train.Matrix()
	testX := test.Matrix()
	testY := eval.Labels(testLabelValues)

	results := &Results{
		Features:   schema,
		Importance: eval.NewImportanceTable(schema),
		TrainRows:  len(trainX),
		TestRows:   len(testX),
	}

	for _, spec := range r.modelSpecs() {
		r.logger.Info("fitting model", zap.String("model", spec.name))
		if err := spec.estimator.Fit(trainX, trainLabels); err != nil {
			return nil, fmt.Errorf("fit %s: %w", spec.name, err)
		}
		output, err := spec.estimator.Predict(testX)
		if err != nil {
			return nil, fmt.Errorf("predict %s: %w", spec.name, err)
		}

		var predicted []int
		if spec.regressor {
			predicted = eval.Threshold(output)
		} else {
			predicted = eval.Labels(output)
		}
		report, err := eval.Classification(testY, predicted)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", spec.name, err)
		}

		attributor, ok := spec.estimator.(ml.FeatureAttributor)
		if !ok {
			return nil, fmt.Errorf("%s does not expose feature attribution", spec.name)
		}
		attribution := attributor.FeatureAttribution()
		if err := results.Importance.SetColumn(spec.name, attribution); err != nil {
			return nil, err
		}

		results.Models = append(results.Models, ModelResult{
			Name:        spec.name,
			Regressor:   spec.regressor,
			Report:      report,
			Attribution: attribution,
		})
		r.logger.Info("model scored",
			zap.String("model", spec.name),
			zap.Float64("accuracy", report.Accuracy))
	}
	return results, nil
}

type modelSpec struct {
	name      string
	regressor bool
	estimator ml.Estimator
}

// modelSpecs builds the six estimators from config, in the fixed report
// order: Logistic, Ridge, Lasso, DecisionTree, RandomForest,
// GradientBoosting.
func (r *Runner) modelSpecs() []modelSpec {
	m := r.config.Models

	logistic := ml.NewLogisticRegression(m.Logistic.LearningRate, m.Logistic.Epochs)
	logistic.L2 = m.Logistic.L2

	return []modelSpec{
		{name: NameLogistic, estimator: logistic},
		{name: NameRidge, regressor: true, estimator: ml.NewRidgeRegression(m.Ridge.Alpha)},
		{name: NameLasso, regressor: true, estimator: ml.NewLassoRegression(m.Lasso.Alpha)},
		{name: NameDecisionTree, estimator: ml.NewDecisionTree(m.DecisionTree.MaxDepth)},
		{name: NameRandomForest, estimator: ml.NewRandomForest(m.RandomForest.Trees, m.RandomForest.MaxDepth, m.RandomForest.Seed)},
		{name: NameGradientBoosting, estimator: ml.NewGradientBoosting(m.GradientBoosting.Stages, m.GradientBoosting.LearningRate, m.GradientBoosting.MaxDepth)},
	}
}
