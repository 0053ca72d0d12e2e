package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/service"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
	"github.com/eduintel/eli-api/pkg/response"
)

type orchestrator interface {
	AssessStudent(ctx context.Context, payload dto.AssessmentPayload) (*dto.AnalysisResponse, error)
	GetLearningPath(ctx context.Context, payload dto.LearningPathPayload) (*dto.AnalysisResponse, error)
	GetProgress(ctx context.Context, payload dto.ProgressPayload) (*dto.AnalysisResponse, error)
	GetRecommendations(ctx context.Context, payload dto.RecommendationPayload) (*dto.AnalysisResponse, error)
}

// AnalysisHandler exposes the four analysis endpoints.
type AnalysisHandler struct {
	service orchestrator
	metrics *service.MetricsService
}

// NewAnalysisHandler constructs the handler.
func NewAnalysisHandler(svc orchestrator, metrics *service.MetricsService) *AnalysisHandler {
	return &AnalysisHandler{service: svc, metrics: metrics}
}

// Assess godoc
// @Summary Run an assessment analysis
// @Tags Analysis
// @Accept json
// @Produce json
// @Param payload body dto.AssessmentPayload true "Assessment data"
// @Success 200 {object} response.Envelope
// @Router /analysis/assessment [post]
func (h *AnalysisHandler) Assess(c *gin.Context) {
	var payload dto.AssessmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid assessment payload"))
		return
	}
	h.run(c, "assessment", func(ctx context.Context) (*dto.AnalysisResponse, error) {
		return h.service.AssessStudent(ctx, payload)
	})
}

// LearningPath godoc
// @Summary Generate a personalized learning path
// @Tags Analysis
// @Accept json
// @Produce json
// @Param payload body dto.LearningPathPayload true "Student profile"
// @Success 200 {object} response.Envelope
// @Router /analysis/learning-path [post]
func (h *AnalysisHandler) LearningPath(c *gin.Context) {
	var payload dto.LearningPathPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid learning path payload"))
		return
	}
	h.run(c, "learning_path", func(ctx context.Context) (*dto.AnalysisResponse, error) {
		return h.service.GetLearningPath(ctx, payload)
	})
}

// Progress godoc
// @Summary Analyze study progress
// @Tags Analysis
// @Accept json
// @Produce json
// @Param payload body dto.ProgressPayload true "Progress metrics"
// @Success 200 {object} response.Envelope
// @Router /analysis/progress [post]
func (h *AnalysisHandler) Progress(c *gin.Context) {
	var payload dto.ProgressPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid progress payload"))
		return
	}
	h.run(c, "progress", func(ctx context.Context) (*dto.AnalysisResponse, error) {
		return h.service.GetProgress(ctx, payload)
	})
}

// Recommendations godoc
// @Summary Generate study recommendations
// @Tags Analysis
// @Accept json
// @Produce json
// @Param payload body dto.RecommendationPayload true "Student profile"
// @Success 200 {object} response.Envelope
// @Router /analysis/recommendations [post]
func (h *AnalysisHandler) Recommendations(c *gin.Context) {
	var payload dto.RecommendationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid recommendation payload"))
		return
	}
	h.run(c, "recommendation", func(ctx context.Context) (*dto.AnalysisResponse, error) {
		return h.service.GetRecommendations(ctx, payload)
	})
}

func (h *AnalysisHandler) run(c *gin.Context, decisionType string, call func(ctx context.Context) (*dto.AnalysisResponse, error)) {
	start := time.Now()
	resp, err := call(c.Request.Context())
	if h.metrics != nil {
		h.metrics.ObserveAgentCall(decisionType, time.Since(start))
	}
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordAgentFailure(decisionType, failureReason(err))
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func failureReason(err error) string {
	switch {
	case appErrors.Is(err, appErrors.ErrAgentTimeout):
		return "timeout"
	case appErrors.Is(err, appErrors.ErrAgentFailure):
		return "upstream"
	case appErrors.Is(err, appErrors.ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
