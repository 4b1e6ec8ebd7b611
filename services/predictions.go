package services

import (
	"context"
	"database/sql"
	"fmt"

	"irisweb/common"
	"irisweb/database"
	"irisweb/models"
)

const defaultHistoryLimit = 10

// PredictionRepository appends to and reads the per-user prediction history.
// Rows are immutable once written.
type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Append inserts one history row. A missing owner surfaces as ErrNotFound,
// propagated from the store's foreign key check.
func (r *PredictionRepository) Append(ctx context.Context, userID int64, features [4]float64, predictionID int, label string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO predictions (
			user_id, sepal_length, sepal_width, petal_length, petal_width,
			prediction_id, label, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, features[0], features[1], features[2], features[3],
		predictionID, label, NowWIB(),
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return common.ErrNotFound
		}
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

// RecentForUser returns up to limit rows, most recent first by insertion
// order. Two rows can share a timestamp to the second, so ordering is by id,
// never created_at. A limit <= 0 falls back to the default of 10.
func (r *PredictionRepository) RecentForUser(ctx context.Context, userID int64, limit int) ([]models.PredictionRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, sepal_length, sepal_width, petal_length, petal_width,
		        prediction_id, label, created_at
		 FROM predictions
		 WHERE user_id = $1
		 ORDER BY id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var history []models.PredictionRecord
	for rows.Next() {
		var rec models.PredictionRecord
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.SepalLength,
			&rec.SepalWidth,
			&rec.PetalLength,
			&rec.PetalWidth,
			&rec.PredictionID,
			&rec.Label,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		rec.CreatedAt = FormatWIB(rec.CreatedAt)
		history = append(history, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read predictions: %w", err)
	}

	return history, nil
}
