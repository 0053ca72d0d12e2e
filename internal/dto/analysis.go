package dto

import "github.com/eduintel/eli-api/internal/models"

// Typed analysis payloads, one per decision type. The orchestrator validates
// these at its boundary; agents and the approval engine treat the resulting
// decision data as opaque.

// AssessmentPayload describes a completed quiz or test to evaluate.
type AssessmentPayload struct {
	StudentID        string `json:"studentId" validate:"required"`
	StudentName      string `json:"studentName" validate:"required"`
	Subject          string `json:"subject" validate:"required"`
	DifficultyLevel  string `json:"difficultyLevel"`
	QuestionsCount   int    `json:"questionsCount" validate:"gte=1"`
	CorrectAnswers   int    `json:"correctAnswers" validate:"gte=0"`
	IncorrectAnswers int    `json:"incorrectAnswers" validate:"gte=0"`
	PartialAnswers   int    `json:"partialAnswers" validate:"gte=0"`
}

// LearningPathPayload describes a student profile for curriculum design.
type LearningPathPayload struct {
	StudentID     string   `json:"studentId" validate:"required"`
	StudentName   string   `json:"studentName" validate:"required"`
	Subject       string   `json:"subject" validate:"required"`
	SkillLevel    string   `json:"skillLevel"`
	TargetLevel   string   `json:"targetLevel"`
	LearningStyle string   `json:"learningStyle"`
	HoursPerWeek  int      `json:"hoursPerWeek" validate:"gte=0"`
	WeakAreas     []string `json:"weakAreas"`
	StrongAreas   []string `json:"strongAreas"`
}

// ProgressPayload carries longitudinal study metrics.
type ProgressPayload struct {
	StudentID             string  `json:"studentId" validate:"required"`
	StudentName           string  `json:"studentName" validate:"required"`
	Subject               string  `json:"subject" validate:"required"`
	InitialScore          float64 `json:"initialScore" validate:"gte=0,lte=100"`
	CurrentScore          float64 `json:"currentScore" validate:"gte=0,lte=100"`
	AssessmentsCompleted  int     `json:"assessmentsCompleted" validate:"gte=0"`
	StudyWeeks            int     `json:"studyWeeks" validate:"gte=0"`
	TopicsCompleted       int     `json:"topicsCompleted" validate:"gte=0"`
	TotalTopics           int     `json:"totalTopics" validate:"gte=0"`
	PracticeHours         float64 `json:"practiceHours" validate:"gte=0"`
	DailyStudyMinutes     int     `json:"dailyStudyMinutes" validate:"gte=0"`
	MilestonesCompleted   int     `json:"milestonesCompleted" validate:"gte=0"`
	MilestonesInProgress  int     `json:"milestonesInProgress" validate:"gte=0"`
	MilestonesRemaining   int     `json:"milestonesRemaining" validate:"gte=0"`
}

// RecommendationPayload describes the profile used for study suggestions.
type RecommendationPayload struct {
	StudentID           string   `json:"studentId" validate:"required"`
	StudentName         string   `json:"studentName" validate:"required"`
	Subject             string   `json:"subject" validate:"required"`
	SkillLevel          string   `json:"skillLevel"`
	LearningStyle       string   `json:"learningStyle"`
	WeakAreas           []string `json:"weakAreas"`
	StrongAreas         []string `json:"strongAreas"`
	CareerInterests     string   `json:"careerInterests"`
	HoursPerWeek        int      `json:"hoursPerWeek" validate:"gte=0"`
	PreviousAssessments int      `json:"previousAssessments" validate:"gte=0"`
}

// AnalysisResponse wraps the agent result, optionally with the id of an
// automatically filed approval request when policy gates the decision type.
type AnalysisResponse struct {
	Result            *models.AnalysisResult     `json:"result,omitempty"`
	Assessment        *models.AssessmentSummary  `json:"assessment,omitempty"`
	ApprovalRequestID string                     `json:"approvalRequestId,omitempty"`
}
