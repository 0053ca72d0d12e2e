package models

import (
	"encoding/json"
	"time"
)

// DecisionType identifies which analysis produced a reviewable decision.
type DecisionType string

const (
	DecisionTypeAssessment     DecisionType = "assessment"
	DecisionTypeLearningPath   DecisionType = "learning_path"
	DecisionTypeProgress       DecisionType = "progress"
	DecisionTypeRecommendation DecisionType = "recommendation"
)

// Valid reports whether the decision type is one of the four known analyses.
func (d DecisionType) Valid() bool {
	switch d {
	case DecisionTypeAssessment, DecisionTypeLearningPath, DecisionTypeProgress, DecisionTypeRecommendation:
		return true
	}
	return false
}

// ApprovalStatus captures workflow states for AI decisions under review.
// PENDING is the only non-terminal state.
type ApprovalStatus string

const (
	ApprovalStatusPending       ApprovalStatus = "PENDING"
	ApprovalStatusApproved      ApprovalStatus = "APPROVED"
	ApprovalStatusRejected      ApprovalStatus = "REJECTED"
	ApprovalStatusNeedsRevision ApprovalStatus = "NEEDS_REVISION"
)

// ApprovalPriority orders review queues.
type ApprovalPriority string

const (
	PriorityLow    ApprovalPriority = "low"
	PriorityNormal ApprovalPriority = "normal"
	PriorityHigh   ApprovalPriority = "high"
	PriorityUrgent ApprovalPriority = "urgent"
)

// Valid reports whether the priority is a known level.
func (p ApprovalPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ApprovalRequest stores an AI-produced decision awaiting human review.
// Rows are never deleted; reviewed_at, reviewer_id and reviewer_comments are
// null together until a review action sets all three atomically.
type ApprovalRequest struct {
	ID               string           `db:"id" json:"id"`
	StudentID        string           `db:"student_id" json:"studentId"`
	DecisionType     DecisionType     `db:"decision_type" json:"decisionType"`
	DecisionData     json.RawMessage  `db:"decision_data" json:"decisionData"`
	Status           ApprovalStatus   `db:"status" json:"status"`
	Priority         ApprovalPriority `db:"priority" json:"priority"`
	CreatedAt        time.Time        `db:"created_at" json:"createdAt"`
	ReviewedAt       *time.Time       `db:"reviewed_at" json:"reviewedAt,omitempty"`
	ReviewerID       *string          `db:"reviewer_id" json:"reviewerId,omitempty"`
	ReviewerComments *string          `db:"reviewer_comments" json:"reviewerComments,omitempty"`
}

// ApprovalFilter constrains listing queries.
type ApprovalFilter struct {
	Status    ApprovalStatus
	Priority  ApprovalPriority
	StudentID string
}
