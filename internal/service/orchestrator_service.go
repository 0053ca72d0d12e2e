package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eduintel/eli-api/internal/agent"
	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

type approvalFiler interface {
	Submit(ctx context.Context, req dto.CreateApprovalRequest) (*models.ApprovalRequest, error)
}

// OrchestratorService fronts the four analysis agents behind one facade.
// Each call validates the typed payload, runs the matching agent once, and
// optionally files the result for human review when institutional policy
// lists its decision type.
type OrchestratorService struct {
	agents        map[models.DecisionType]agent.Analyzer
	approvals     approvalFiler
	requireReview map[models.DecisionType]bool
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewOrchestratorService constructs the facade. Agents and the approval
// engine are injected; requireReview lists decision types gated by policy.
func NewOrchestratorService(agents []agent.Analyzer, approvals approvalFiler, requireReview []string, logger *zap.Logger) *OrchestratorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	byType := make(map[models.DecisionType]agent.Analyzer, len(agents))
	for _, a := range agents {
		if a != nil {
			byType[a.DecisionType()] = a
		}
	}
	gated := make(map[models.DecisionType]bool, len(requireReview))
	for _, t := range requireReview {
		gated[models.DecisionType(t)] = true
	}
	return &OrchestratorService{
		agents:        byType,
		approvals:     approvals,
		requireReview: gated,
		validator:     validator.New(),
		logger:        logger,
	}
}

// AssessStudent evaluates a completed assessment. The accuracy percentage is
// computed from the raw answer counts, not taken from the model output.
func (s *OrchestratorService) AssessStudent(ctx context.Context, payload dto.AssessmentPayload) (*dto.AnalysisResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}
	result, err := s.analyze(ctx, models.DecisionTypeAssessment, &payload)
	if err != nil {
		return nil, err
	}

	questions := payload.QuestionsCount
	if questions < 1 {
		questions = 1
	}
	accuracy := float64(payload.CorrectAnswers) / float64(questions) * 100

	resp := &dto.AnalysisResponse{
		Result: result,
		Assessment: &models.AssessmentSummary{
			StudentName:       payload.StudentName,
			Subject:           payload.Subject,
			OverallScore:      accuracy,
			QuestionsAnswered: payload.QuestionsCount,
			FinalSummary:      result.Analysis,
		},
	}
	return s.gate(ctx, payload.StudentID, resp)
}

// GetLearningPath designs a personalized curriculum for the student profile.
func (s *OrchestratorService) GetLearningPath(ctx context.Context, payload dto.LearningPathPayload) (*dto.AnalysisResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid learning path payload")
	}
	result, err := s.analyze(ctx, models.DecisionTypeLearningPath, &payload)
	if err != nil {
		return nil, err
	}
	return s.gate(ctx, payload.StudentID, &dto.AnalysisResponse{Result: result})
}

// GetProgress analyzes longitudinal study metrics.
func (s *OrchestratorService) GetProgress(ctx context.Context, payload dto.ProgressPayload) (*dto.AnalysisResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid progress payload")
	}
	result, err := s.analyze(ctx, models.DecisionTypeProgress, &payload)
	if err != nil {
		return nil, err
	}
	return s.gate(ctx, payload.StudentID, &dto.AnalysisResponse{Result: result})
}

// GetRecommendations produces study suggestions for the student profile.
func (s *OrchestratorService) GetRecommendations(ctx context.Context, payload dto.RecommendationPayload) (*dto.AnalysisResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid recommendation payload")
	}
	result, err := s.analyze(ctx, models.DecisionTypeRecommendation, &payload)
	if err != nil {
		return nil, err
	}
	return s.gate(ctx, payload.StudentID, &dto.AnalysisResponse{Result: result})
}

func (s *OrchestratorService) analyze(ctx context.Context, decisionType models.DecisionType, payload any) (*models.AnalysisResult, error) {
	a, ok := s.agents[decisionType]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInternal, "no agent registered for "+string(decisionType))
	}
	return a.Analyze(ctx, payload)
}

// gate files an approval request for gated decision types. A filing failure
// does not discard the analysis; the caller still gets the result and can
// submit manually.
func (s *OrchestratorService) gate(ctx context.Context, studentID string, resp *dto.AnalysisResponse) (*dto.AnalysisResponse, error) {
	if s.approvals == nil || resp.Result == nil || !s.requireReview[resp.Result.DecisionType] {
		return resp, nil
	}
	data, err := json.Marshal(resp.Result)
	if err != nil {
		s.logger.Warn("failed to encode analysis for review", zap.Error(err))
		return resp, nil
	}
	request, err := s.approvals.Submit(ctx, dto.CreateApprovalRequest{
		StudentID:    studentID,
		DecisionType: resp.Result.DecisionType,
		DecisionData: data,
		Priority:     models.PriorityNormal,
	})
	if err != nil {
		s.logger.Warn("failed to file analysis for review",
			zap.String("decision_type", string(resp.Result.DecisionType)), zap.Error(err))
		return resp, nil
	}
	resp.ApprovalRequestID = request.ID
	return resp, nil
}
