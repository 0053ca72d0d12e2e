package dto

import (
	"encoding/json"

	"github.com/eduintel/eli-api/internal/models"
)

// CreateApprovalRequest files an AI decision for human review.
type CreateApprovalRequest struct {
	StudentID    string                  `json:"studentId" binding:"required"`
	DecisionType models.DecisionType     `json:"decisionType" binding:"required"`
	DecisionData json.RawMessage         `json:"decisionData" binding:"required"`
	Priority     models.ApprovalPriority `json:"priority"`
}

// ReviewRequest captures the reviewer's comments for a review action. The
// target status is implied by the endpoint (approve/reject/revision).
type ReviewRequest struct {
	Comments string `json:"comments"`
}

// CreateApprovalResponse returns the id assigned to a new request.
type CreateApprovalResponse struct {
	RequestID string `json:"requestId"`
}
