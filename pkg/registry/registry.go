// Package registry records training runs in a SQLite database.
package registry

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS training_runs (
    id TEXT PRIMARY KEY,
    dataset TEXT NOT NULL,
    model_path TEXT NOT NULL,
    label_name TEXT NOT NULL,
    method VARCHAR(20) NOT NULL,
    learning_rate REAL,
    iterations INTEGER,
    features INTEGER,
    labels INTEGER,
    train_rows INTEGER,
    test_rows INTEGER,
    loss REAL,
    train_accuracy REAL,
    test_accuracy REAL,
    trained_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS training_runs_trained_at ON training_runs (trained_at);
`

// Run is one training invocation.
type Run struct {
	ID            string
	Dataset       string
	ModelPath     string
	LabelName     string
	Method        string
	LearningRate  float64
	Iterations    int
	Features      int
	Labels        int
	TrainRows     int
	TestRows      int
	Loss          float64
	TrainAccuracy float64
	TestAccuracy  float64
	TrainedAt     time.Time
}

// Store is a run registry backed by one SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens or creates the registry at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open registry %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "init registry %s", path)
	}
	return &Store{db: db}, nil
}

// Record inserts r, assigning an ID and a timestamp when they are unset.
// It returns the stored run.
func (s *Store) Record(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.TrainedAt.IsZero() {
		r.TrainedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO training_runs (id, dataset, model_path, label_name, method, learning_rate,
            iterations, features, labels, train_rows, test_rows, loss, train_accuracy,
            test_accuracy, trained_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Dataset, r.ModelPath, r.LabelName, r.Method, r.LearningRate,
		r.Iterations, r.Features, r.Labels, r.TrainRows, r.TestRows, r.Loss, r.TrainAccuracy,
		r.TestAccuracy, r.TrainedAt)
	if err != nil {
		return r, errors.Wrapf(err, "record run %s", r.ID)
	}
	return r, nil
}

// List returns up to limit runs, most recent first. A non-positive limit
// returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, dataset, model_path, label_name, method, learning_rate, iterations,
               features, labels, train_rows, test_rows, loss, train_accuracy,
               test_accuracy, trained_at
        FROM training_runs
        ORDER BY trained_at DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		err := rows.Scan(&r.ID, &r.Dataset, &r.ModelPath, &r.LabelName, &r.Method, &r.LearningRate,
			&r.Iterations, &r.Features, &r.Labels, &r.TrainRows, &r.TestRows, &r.Loss,
			&r.TrainAccuracy, &r.TestAccuracy, &r.TrainedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "list runs")
}

func (s *Store) Close() error { return s.db.Close() }
