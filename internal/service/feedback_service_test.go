package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
	"github.com/eduintel/eli-api/internal/repository"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

type feedbackRepoStub struct {
	records []models.FeedbackRecord
}

func (s *feedbackRepoStub) Append(ctx context.Context, record *models.FeedbackRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	s.records = append(s.records, *record)
	return nil
}

func (s *feedbackRepoStub) HistoryByStudent(ctx context.Context, studentID string) ([]models.FeedbackRecord, error) {
	var result []models.FeedbackRecord
	for _, r := range s.records {
		if r.StudentID == studentID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *feedbackRepoStub) AverageRating(ctx context.Context, recommendationID string) (*repository.RatingStats, error) {
	var sum, count int
	for _, r := range s.records {
		if r.RecommendationID == recommendationID && r.Rating != nil {
			sum += *r.Rating
			count++
		}
	}
	stats := &repository.RatingStats{RatedCount: count}
	if count > 0 {
		avg := float64(sum) / float64(count)
		stats.Average = &avg
	}
	return stats, nil
}

type cacheStub struct {
	entries map[string][]byte
	gets    int
	sets    int
	deletes int
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: make(map[string][]byte)}
}

func (c *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	c.gets++
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *cacheStub) Delete(ctx context.Context, key string) error {
	c.deletes++
	delete(c.entries, key)
	return nil
}

func intPtr(v int) *int { return &v }

func TestFeedbackServiceSubmit(t *testing.T) {
	repo := &feedbackRepoStub{}
	audit := &auditStub{}
	svc := NewFeedbackService(repo, nil, audit, 0, nil)

	record, err := svc.Submit(context.Background(), dto.SubmitFeedbackRequest{
		StudentID:        "student-1",
		RecommendationID: "rec-1",
		FeedbackType:     models.FeedbackPositive,
		Comments:         "spot on",
		Rating:           intPtr(5),
	})
	require.NoError(t, err)
	require.NotEmpty(t, record.ID)
	require.Equal(t, 1, audit.count())
}

func TestFeedbackServiceSubmitValidation(t *testing.T) {
	svc := NewFeedbackService(&feedbackRepoStub{}, nil, nil, 0, nil)

	cases := []dto.SubmitFeedbackRequest{
		{RecommendationID: "rec-1", FeedbackType: models.FeedbackPositive},
		{StudentID: "student-1", FeedbackType: models.FeedbackPositive},
		{StudentID: "student-1", RecommendationID: "rec-1", FeedbackType: "enthusiastic"},
		{StudentID: "student-1", RecommendationID: "rec-1", FeedbackType: models.FeedbackNeutral, Rating: intPtr(0)},
		{StudentID: "student-1", RecommendationID: "rec-1", FeedbackType: models.FeedbackNeutral, Rating: intPtr(6)},
	}
	for _, req := range cases {
		_, err := svc.Submit(context.Background(), req)
		require.True(t, appErrors.Is(err, appErrors.ErrValidation), "expected validation error for %+v", req)
	}
}

func TestFeedbackServiceHistoryOrder(t *testing.T) {
	repo := &feedbackRepoStub{}
	svc := NewFeedbackService(repo, nil, nil, 0, nil)

	for _, ft := range []models.FeedbackType{models.FeedbackNegative, models.FeedbackPositive} {
		_, err := svc.Submit(context.Background(), dto.SubmitFeedbackRequest{
			StudentID:        "student-1",
			RecommendationID: "rec-1",
			FeedbackType:     ft,
		})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), "student-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, models.FeedbackNegative, history[0].FeedbackType)
	require.Equal(t, models.FeedbackPositive, history[1].FeedbackType)

	empty, err := svc.History(context.Background(), "unknown")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestFeedbackServiceAverageRating(t *testing.T) {
	repo := &feedbackRepoStub{}
	svc := NewFeedbackService(repo, nil, nil, 0, nil)

	resp, err := svc.AverageRating(context.Background(), "rec-1")
	require.NoError(t, err)
	require.Nil(t, resp.Average)
	require.Zero(t, resp.RatedCount)

	for _, rating := range []int{4, 3} {
		_, err := svc.Submit(context.Background(), dto.SubmitFeedbackRequest{
			StudentID:        "student-1",
			RecommendationID: "rec-1",
			FeedbackType:     models.FeedbackPositive,
			Rating:           intPtr(rating),
		})
		require.NoError(t, err)
	}
	// unrated record is excluded from the mean
	_, err = svc.Submit(context.Background(), dto.SubmitFeedbackRequest{
		StudentID:        "student-2",
		RecommendationID: "rec-1",
		FeedbackType:     models.FeedbackNeutral,
	})
	require.NoError(t, err)

	resp, err = svc.AverageRating(context.Background(), "rec-1")
	require.NoError(t, err)
	require.NotNil(t, resp.Average)
	require.InDelta(t, 3.5, *resp.Average, 1e-9)
	require.Equal(t, 2, resp.RatedCount)
}

func TestFeedbackServiceAverageRatingCache(t *testing.T) {
	repo := &feedbackRepoStub{}
	cache := newCacheStub()
	svc := NewFeedbackService(repo, cache, nil, time.Minute, nil)

	_, err := svc.Submit(context.Background(), dto.SubmitFeedbackRequest{
		StudentID:        "student-1",
		RecommendationID: "rec-1",
		FeedbackType:     models.FeedbackPositive,
		Rating:           intPtr(4),
	})
	require.NoError(t, err)

	first, err := svc.AverageRating(context.Background(), "rec-1")
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)

	second, err := svc.AverageRating(context.Background(), "rec-1")
	require.NoError(t, err)
	require.Equal(t, *first.Average, *second.Average)
	require.Equal(t, 1, cache.sets, "second read must come from cache")

	// a new rating invalidates the cached average
	_, err = svc.Submit(context.Background(), dto.SubmitFeedbackRequest{
		StudentID:        "student-1",
		RecommendationID: "rec-1",
		FeedbackType:     models.FeedbackNegative,
		Rating:           intPtr(2),
	})
	require.NoError(t, err)
	require.Equal(t, 2, cache.deletes)

	third, err := svc.AverageRating(context.Background(), "rec-1")
	require.NoError(t, err)
	require.InDelta(t, 3.0, *third.Average, 1e-9)
	require.Equal(t, 2, cache.sets)
}
