package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"churnlab/db"
	"churnlab/eval"
	"churnlab/study"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file path")
	historyLimit := flag.Int("history", 0, "print the last N archived runs after this one")
	flag.Parse()

	// 1. Load config
	config, err := study.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := newLogger(config)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 3. Initialize the study archive, if configured
	archive := config.Database.Path != ""
	if archive {
		if err := db.InitDB(config.Database.Path); err != nil {
			logger.Fatal("failed to initialize database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("study archive ready", zap.String("path", config.Database.Path))
	}

	// 4. Run the study
	runner, err := study.NewRunner(config, logger)
	if err != nil {
		logger.Fatal("failed to build runner", zap.Error(err))
	}
	results, err := runner.Run()
	if err != nil {
		logger.Fatal("study failed", zap.Error(err))
	}

	// 5. Report: six classification reports in fixed order, then the
	// importance table as the final artifact
	for _, model := range results.Models {
		eval.RenderReport(os.Stdout, model.Name, model.Report)
	}
	if err := eval.RenderImportance(os.Stdout, results.Importance); err != nil {
		logger.Fatal("failed to render importance table", zap.Error(err))
	}

	if archive {
		runID, err := db.SaveRun(config.Data.Train, config.Data.Test, results)
		if err != nil {
			logger.Fatal("failed to archive run", zap.Error(err))
		}
		logger.Info("run archived", zap.Int64("run_id", runID))

		if *historyLimit > 0 {
			summaries, err := db.LoadRunHistory(*historyLimit)
			if err != nil {
				logger.Fatal("failed to load run history", zap.Error(err))
			}
			renderHistory(os.Stdout, summaries)
		}
	} else if *historyLimit > 0 {
		logger.Warn("-history requires database.path in config")
	}
}

func renderHistory(w io.Writer, summaries []db.RunSummary) {
	fmt.Fprintln(w, "=== Run history ===")
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"run", "model", "accuracy", "ran at"})
	for _, s := range summaries {
		t.AppendRow(table.Row{
			s.RunID,
			s.ModelName,
			fmt.Sprintf("%.2f", s.Accuracy),
			s.RanAt.Format("2006-01-02 15:04:05"),
		})
	}
	t.Render()
}

func newLogger(config *study.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if config.Log.Level != "" {
		if err := level.Set(config.Log.Level); err != nil {
			return nil, err
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	sink := zapcore.AddSync(os.Stderr)
	if config.Log.File != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   config.Log.File,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		})
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, level)
	return zap.New(core), nil
}
