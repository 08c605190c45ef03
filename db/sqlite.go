package db

import (
	"database/sql"
	"errors"
	"time"

	"churnlab/study"
	_ "github.com/mattn/go-sqlite3"
)

var database *sql.DB

// InitDB initializes the SQLite study archive
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        train_path TEXT NOT NULL,
        test_path TEXT NOT NULL,
        train_rows INTEGER,
        test_rows INTEGER,
        feature_count INTEGER,
        ran_at DATETIME NOT NULL
    );
    CREATE TABLE IF NOT EXISTS model_metrics (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id INTEGER NOT NULL,
        model_name VARCHAR(50) NOT NULL,
        class INTEGER NOT NULL,
        precision REAL,
        recall REAL,
        f1 REAL,
        support INTEGER,
        accuracy REAL,
        FOREIGN KEY(run_id) REFERENCES runs(id)
    );
    CREATE TABLE IF NOT EXISTS feature_importance (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id INTEGER NOT NULL,
        model_name VARCHAR(50) NOT NULL,
        feature TEXT NOT NULL,
        value REAL,
        FOREIGN KEY(run_id) REFERENCES runs(id),
        UNIQUE(run_id, model_name, feature)
    );
    `

	_, err = database.Exec(query)
	return err
}

// Close closes the archive.
func Close() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// SaveRun archives one completed study run: the run row, per-model metric
// rows, and every importance cell. Fitted models themselves are never
// stored.
func SaveRun(trainPath, testPath string, results *study.Results) (int64, error) {
	if database == nil {
		return 0, errors.New("database not initialized")
	}
	if results == nil {
		return 0, errors.New("results is nil")
	}

	tx, err := database.Begin()
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
        INSERT INTO runs (train_path, test_path, train_rows, test_rows, feature_count, ran_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		trainPath, testPath, results.TrainRows, results.TestRows, len(results.Features), time.Now().UTC())
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	for _, model := range results.Models {
		for class, metrics := range model.Report.Classes {
			_, err = tx.Exec(`
                INSERT INTO model_metrics (run_id, model_name, class, precision, recall, f1, support, accuracy)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				runID, model.Name, class, metrics.Precision, metrics.Recall, metrics.F1, metrics.Support, model.Report.Accuracy)
			if err != nil {
				tx.Rollback()
				return 0, err
			}
		}
	}

	stmt, err := tx.Prepare(`
        INSERT OR REPLACE INTO feature_importance (run_id, model_name, feature, value)
        VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	for i, feature := range results.Importance.Features() {
		for _, model := range results.Importance.Models() {
			value, err := results.Importance.Value(i, model)
			if err != nil {
				tx.Rollback()
				return 0, err
			}
			if _, err := stmt.Exec(runID, model, feature, value); err != nil {
				tx.Rollback()
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

type RunSummary struct {
	RunID     int64     `json:"run_id"`
	ModelName string    `json:"model_name"`
	Accuracy  float64   `json:"accuracy"`
	RanAt     time.Time `json:"ran_at"`
}

// LoadRunHistory returns per-model accuracies of past runs, newest first.
func LoadRunHistory(limit int) ([]RunSummary, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := database.Query(`
        SELECT r.id, m.model_name, m.accuracy, r.ran_at
        FROM runs r
        JOIN model_metrics m ON m.run_id = r.id AND m.class = 1
        ORDER BY r.ran_at DESC, m.id ASC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]RunSummary, 0)
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.ModelName, &s.Accuracy, &s.RanAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
