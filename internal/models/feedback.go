package models

import "time"

// FeedbackType classifies human feedback on a recommendation.
type FeedbackType string

const (
	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
	FeedbackNeutral  FeedbackType = "neutral"
)

// Valid reports whether the feedback type is a known classification.
func (t FeedbackType) Valid() bool {
	switch t {
	case FeedbackPositive, FeedbackNegative, FeedbackNeutral:
		return true
	}
	return false
}

// Rating bounds for feedback records.
const (
	RatingMin = 1
	RatingMax = 5
)

// FeedbackRecord is an immutable ledger entry tying human feedback to a
// previously returned recommendation. No update or delete path exists.
type FeedbackRecord struct {
	ID               string       `db:"id" json:"id"`
	StudentID        string       `db:"student_id" json:"studentId"`
	RecommendationID string       `db:"recommendation_id" json:"recommendationId"`
	FeedbackType     FeedbackType `db:"feedback_type" json:"feedbackType"`
	Comments         string       `db:"comments" json:"comments,omitempty"`
	Rating           *int         `db:"rating" json:"rating,omitempty"`
	CreatedAt        time.Time    `db:"created_at" json:"createdAt"`
}
