// Package study wires the four pipeline stages into a single batch run:
// load train and test, align the test frame to the training schema, fit the
// six models in fixed order, and score each against the held-out labels.
package study

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"churnlab/dataset"
)

// Config describes one study run. Decoded from yaml.
type Config struct {
	Data struct {
		Train       string                           `yaml:"train"`
		Test        string                           `yaml:"test"`
		Charset     string                           `yaml:"charset"`
		Label       string                           `yaml:"label"`
		Drop        []string                         `yaml:"drop"`
		Binary      map[string]dataset.BinaryMapping `yaml:"binary"`
		Categorical []string                         `yaml:"categorical"`
	} `yaml:"data"`
	Models struct {
		Logistic struct {
			LearningRate float64 `yaml:"learning_rate"`
			Epochs       int     `yaml:"epochs"`
			L2           float64 `yaml:"l2"`
		} `yaml:"logistic"`
		Ridge struct {
			Alpha float64 `yaml:"alpha"`
		} `yaml:"ridge"`
		Lasso struct {
			Alpha float64 `yaml:"alpha"`
		} `yaml:"lasso"`
		DecisionTree struct {
			MaxDepth int `yaml:"max_depth"`
		} `yaml:"decision_tree"`
		RandomForest struct {
			Trees    int   `yaml:"trees"`
			MaxDepth int   `yaml:"max_depth"`
			Seed     int64 `yaml:"seed"`
		} `yaml:"random_forest"`
		GradientBoosting struct {
			Stages       int     `yaml:"stages"`
			LearningRate float64 `yaml:"learning_rate"`
			MaxDepth     int     `yaml:"max_depth"`
		} `yaml:"gradient_boosting"`
	} `yaml:"models"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// LoadConfig reads and validates a yaml config file.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Data.Train == "" {
		return fmt.Errorf("data.train is required")
	}
	if c.Data.Test == "" {
		return fmt.Errorf("data.test is required")
	}
	if c.Data.Label == "" {
		return fmt.Errorf("data.label is required")
	}
	if _, ok := c.Data.Binary[c.Data.Label]; !ok {
		return fmt.Errorf("data.binary must map the label column %q to its two literals", c.Data.Label)
	}
	for _, name := range c.Data.Categorical {
		if name == c.Data.Label {
			return fmt.Errorf("label column %q cannot be categorical", name)
		}
	}
	return nil
}

// loadOptions builds the single LoadOptions applied to both train and test.
func (c *Config) loadOptions() dataset.LoadOptions {
	return dataset.LoadOptions{
		Drop:          c.Data.Drop,
		BinaryColumns: c.Data.Binary,
		Categorical:   c.Data.Categorical,
		Charset:       c.Data.Charset,
	}
}
