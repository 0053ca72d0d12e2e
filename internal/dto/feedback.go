package dto

import "github.com/eduintel/eli-api/internal/models"

// SubmitFeedbackRequest appends a feedback record to the ledger.
type SubmitFeedbackRequest struct {
	StudentID        string              `json:"studentId" binding:"required"`
	RecommendationID string              `json:"recommendationId" binding:"required"`
	FeedbackType     models.FeedbackType `json:"feedbackType" binding:"required"`
	Comments         string              `json:"comments"`
	Rating           *int                `json:"rating"`
}

// AverageRatingResponse reports the arithmetic mean of ratings for one
// recommendation. Average is null when no rated records exist, which is
// distinct from a zero average (zero is outside the valid range anyway).
type AverageRatingResponse struct {
	RecommendationID string   `json:"recommendationId"`
	Average          *float64 `json:"average"`
	RatedCount       int      `json:"ratedCount"`
}
