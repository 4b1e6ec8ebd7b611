package models

// PredictionRecord is one append-only row of prediction history. Rows are
// never updated; they are only inserted and cascade-deleted with their owner.
type PredictionRecord struct {
	ID           int64   `db:"id"`
	UserID       int64   `db:"user_id"`
	SepalLength  float64 `db:"sepal_length"`
	SepalWidth   float64 `db:"sepal_width"`
	PetalLength  float64 `db:"petal_length"`
	PetalWidth   float64 `db:"petal_width"`
	PredictionID int     `db:"prediction_id"`
	Label        string  `db:"label"`
	CreatedAt    string  `db:"created_at"`
}
