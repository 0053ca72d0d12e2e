package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eduintel/eli-api/internal/models"
)

// FeedbackRepository appends and aggregates immutable feedback records.
// There is deliberately no update or delete method.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository constructs the repository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Append inserts a new feedback record.
func (r *FeedbackRepository) Append(ctx context.Context, record *models.FeedbackRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO feedback
	(id, student_id, recommendation_id, feedback_type, comments, rating, created_at)
	VALUES (:id, :student_id, :recommendation_id, :feedback_type, :comments, :rating, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}
	return nil
}

// HistoryByStudent returns every record for a student across all
// recommendations, in submission order.
func (r *FeedbackRepository) HistoryByStudent(ctx context.Context, studentID string) ([]models.FeedbackRecord, error) {
	const query = `SELECT id, student_id, recommendation_id, feedback_type, comments, rating, created_at
	FROM feedback WHERE student_id = $1 ORDER BY created_at ASC`
	records := []models.FeedbackRecord{}
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("feedback history: %w", err)
	}
	return records, nil
}

// RatingStats holds the aggregate for one recommendation. Average is nil
// when no rated records exist.
type RatingStats struct {
	Average    *float64 `db:"average"`
	RatedCount int      `db:"rated_count"`
}

// AverageRating recomputes the mean rating from all rated records for the
// recommendation. SQL AVG ignores NULL ratings and returns NULL on an empty
// set, which maps directly to the nil-average contract.
func (r *FeedbackRepository) AverageRating(ctx context.Context, recommendationID string) (*RatingStats, error) {
	const query = `SELECT AVG(rating) AS average, COUNT(rating) AS rated_count
	FROM feedback WHERE recommendation_id = $1 AND rating IS NOT NULL`
	var stats RatingStats
	if err := r.db.GetContext(ctx, &stats, query, recommendationID); err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	return &stats, nil
}
