package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
	"github.com/eduintel/eli-api/pkg/response"
)

type feedbackService interface {
	Submit(ctx context.Context, req dto.SubmitFeedbackRequest) (*models.FeedbackRecord, error)
	History(ctx context.Context, studentID string) ([]models.FeedbackRecord, error)
	AverageRating(ctx context.Context, recommendationID string) (*dto.AverageRatingResponse, error)
}

// FeedbackHandler exposes REST endpoints for the feedback ledger.
type FeedbackHandler struct {
	service feedbackService
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(svc feedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// Submit godoc
// @Summary Record feedback on a recommendation
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body dto.SubmitFeedbackRequest true "Feedback payload"
// @Success 201 {object} response.Envelope
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid feedback payload"))
		return
	}
	record, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, record)
}

// History godoc
// @Summary List a student's feedback history
// @Tags Feedback
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /feedback/history/{studentId} [get]
func (h *FeedbackHandler) History(c *gin.Context) {
	records, err := h.service.History(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// AverageRating godoc
// @Summary Get the average rating for a recommendation
// @Tags Feedback
// @Produce json
// @Param recommendationId path string true "Recommendation ID"
// @Success 200 {object} response.Envelope
// @Router /feedback/rating/{recommendationId} [get]
func (h *FeedbackHandler) AverageRating(c *gin.Context) {
	resp, err := h.service.AverageRating(c.Request.Context(), c.Param("recommendationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
