package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

type fakeFeedbackSrv struct {
	submitted *dto.SubmitFeedbackRequest
	submitErr error
	history   []models.FeedbackRecord
	rating    *dto.AverageRatingResponse
	ratingErr error
}

func (f *fakeFeedbackSrv) Submit(_ context.Context, req dto.SubmitFeedbackRequest) (*models.FeedbackRecord, error) {
	f.submitted = &req
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &models.FeedbackRecord{ID: "fb-1", StudentID: req.StudentID, FeedbackType: req.FeedbackType}, nil
}

func (f *fakeFeedbackSrv) History(_ context.Context, studentID string) ([]models.FeedbackRecord, error) {
	return f.history, nil
}

func (f *fakeFeedbackSrv) AverageRating(_ context.Context, recommendationID string) (*dto.AverageRatingResponse, error) {
	if f.ratingErr != nil {
		return nil, f.ratingErr
	}
	return f.rating, nil
}

func TestFeedbackHandlerSubmit(t *testing.T) {
	srv := &fakeFeedbackSrv{}
	handler := NewFeedbackHandler(srv)

	c, rec := testContext(t, http.MethodPost, "/feedback", dto.SubmitFeedbackRequest{
		StudentID:        "student-1",
		RecommendationID: "rec-1",
		FeedbackType:     models.FeedbackPositive,
	})
	handler.Submit(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "rec-1", srv.submitted.RecommendationID)
}

func TestFeedbackHandlerSubmitValidationError(t *testing.T) {
	srv := &fakeFeedbackSrv{submitErr: appErrors.Clone(appErrors.ErrValidation, "rating must be between 1 and 5")}
	handler := NewFeedbackHandler(srv)

	c, rec := testContext(t, http.MethodPost, "/feedback", dto.SubmitFeedbackRequest{
		StudentID:        "student-1",
		RecommendationID: "rec-1",
		FeedbackType:     models.FeedbackPositive,
	})
	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedbackHandlerHistory(t *testing.T) {
	srv := &fakeFeedbackSrv{history: []models.FeedbackRecord{{ID: "fb-1"}, {ID: "fb-2"}}}
	handler := NewFeedbackHandler(srv)

	c, rec := testContext(t, http.MethodGet, "/feedback/history/student-1", nil)
	c.Params = gin.Params{{Key: "studentId", Value: "student-1"}}
	handler.History(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	var list []models.FeedbackRecord
	_ = json.Unmarshal(envelope.Data, &list)
	assert.Len(t, list, 2)
}

func TestFeedbackHandlerAverageRating(t *testing.T) {
	avg := 3.5
	srv := &fakeFeedbackSrv{rating: &dto.AverageRatingResponse{
		RecommendationID: "rec-1",
		Average:          &avg,
		RatedCount:       2,
	}}
	handler := NewFeedbackHandler(srv)

	c, rec := testContext(t, http.MethodGet, "/feedback/rating/rec-1", nil)
	c.Params = gin.Params{{Key: "recommendationId", Value: "rec-1"}}
	handler.AverageRating(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	var resp dto.AverageRatingResponse
	_ = json.Unmarshal(envelope.Data, &resp)
	assert.NotNil(t, resp.Average)
	assert.Equal(t, 3.5, *resp.Average)
}
