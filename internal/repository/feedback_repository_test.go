package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/eduintel/eli-api/internal/models"
)

func TestFeedbackRepositoryAppend(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewFeedbackRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO feedback")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rating := 5
	record := &models.FeedbackRecord{
		StudentID:        "S1",
		RecommendationID: "rec42",
		FeedbackType:     models.FeedbackPositive,
		Comments:         "great",
		Rating:           &rating,
	}
	require.NoError(t, repo.Append(context.Background(), record))
	require.NotEmpty(t, record.ID)
	require.False(t, record.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepositoryHistoryByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewFeedbackRepository(db)
	rows := sqlmock.NewRows([]string{"id", "student_id", "recommendation_id", "feedback_type", "comments", "rating", "created_at"}).
		AddRow("fb-1", "S1", "rec42", "positive", "great", 5, time.Now().Add(-time.Minute)).
		AddRow("fb-2", "S1", "rec42", "negative", "meh", 2, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC")).
		WithArgs("S1").
		WillReturnRows(rows)

	history, err := repo.HistoryByStudent(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "fb-1", history[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepositoryAverageRating(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewFeedbackRepository(db)
	avg := 3.5
	mock.ExpectQuery(regexp.QuoteMeta("AVG(rating)")).
		WithArgs("rec42").
		WillReturnRows(sqlmock.NewRows([]string{"average", "rated_count"}).AddRow(avg, 2))

	stats, err := repo.AverageRating(context.Background(), "rec42")
	require.NoError(t, err)
	require.NotNil(t, stats.Average)
	require.InDelta(t, 3.5, *stats.Average, 1e-9)
	require.Equal(t, 2, stats.RatedCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepositoryAverageRatingEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewFeedbackRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("AVG(rating)")).
		WithArgs("rec-none").
		WillReturnRows(sqlmock.NewRows([]string{"average", "rated_count"}).AddRow(nil, 0))

	stats, err := repo.AverageRating(context.Background(), "rec-none")
	require.NoError(t, err)
	require.Nil(t, stats.Average)
	require.Zero(t, stats.RatedCount)
	require.NoError(t, mock.ExpectationsWereMet())
}
