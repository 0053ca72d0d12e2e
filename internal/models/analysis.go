package models

import "time"

// AnalysisResult is the structured outcome of a single agent call.
type AnalysisResult struct {
	DecisionType DecisionType `json:"decisionType"`
	StudentName  string       `json:"studentName,omitempty"`
	Subject      string       `json:"subject,omitempty"`
	Analysis     string       `json:"analysis"`
	Model        string       `json:"model,omitempty"`
	GeneratedAt  time.Time    `json:"generatedAt"`
}

// AssessmentSummary enriches an assessment analysis with metrics computed
// from the raw answers rather than by the model.
type AssessmentSummary struct {
	StudentName       string  `json:"studentName"`
	Subject           string  `json:"subject"`
	OverallScore      float64 `json:"overallScore"`
	QuestionsAnswered int     `json:"questionsAnswered"`
	FinalSummary      string  `json:"finalSummary"`
}
