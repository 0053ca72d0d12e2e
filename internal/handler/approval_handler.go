package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
	"github.com/eduintel/eli-api/internal/service"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
	"github.com/eduintel/eli-api/pkg/response"
)

type approvalService interface {
	Submit(ctx context.Context, req dto.CreateApprovalRequest) (*models.ApprovalRequest, error)
	Approve(ctx context.Context, id, reviewerID, comments string) (*models.ApprovalRequest, error)
	Reject(ctx context.Context, id, reviewerID, comments string) (*models.ApprovalRequest, error)
	RequestRevision(ctx context.Context, id, reviewerID, comments string) (*models.ApprovalRequest, error)
	Get(ctx context.Context, id string) (*models.ApprovalRequest, error)
	ListPending(ctx context.Context, priority models.ApprovalPriority) ([]models.ApprovalRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.ApprovalRequest, error)
}

type exportService interface {
	PendingQueue(ctx context.Context, format service.ExportFormat, studentID string) (*service.ExportResult, error)
}

// ApprovalHandler exposes REST endpoints for the approval workflow.
type ApprovalHandler struct {
	service approvalService
	exports exportService
	metrics *service.MetricsService
}

// NewApprovalHandler constructs the handler. exports may be nil when the
// export endpoint is disabled.
func NewApprovalHandler(svc approvalService, exports exportService, metrics *service.MetricsService) *ApprovalHandler {
	return &ApprovalHandler{service: svc, exports: exports, metrics: metrics}
}

// Create godoc
// @Summary Submit an AI decision for review
// @Tags Approvals
// @Accept json
// @Produce json
// @Param payload body dto.CreateApprovalRequest true "Decision payload"
// @Success 201 {object} response.Envelope
// @Router /approvals [post]
func (h *ApprovalHandler) Create(c *gin.Context) {
	var req dto.CreateApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid approval payload"))
		return
	}
	request, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, dto.CreateApprovalResponse{RequestID: request.ID})
}

// ListPending godoc
// @Summary List the pending review queue
// @Tags Approvals
// @Produce json
// @Param priority query string false "Priority filter"
// @Success 200 {object} response.Envelope
// @Router /approvals/pending [get]
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	requests, err := h.service.ListPending(c.Request.Context(), models.ApprovalPriority(c.Query("priority")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests)
}

// Get godoc
// @Summary Get one approval request
// @Tags Approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /approvals/{id} [get]
func (h *ApprovalHandler) Get(c *gin.Context) {
	request, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request)
}

// ListByStudent godoc
// @Summary List a student's approval history
// @Tags Approvals
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /approvals/student/{studentId} [get]
func (h *ApprovalHandler) ListByStudent(c *gin.Context) {
	requests, err := h.service.ListByStudent(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests)
}

// Approve godoc
// @Summary Approve a pending request
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.ReviewRequest false "Reviewer comments"
// @Success 200 {object} response.Envelope
// @Router /approvals/{id}/approve [post]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	h.review(c, h.service.Approve)
}

// Reject godoc
// @Summary Reject a pending request
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.ReviewRequest true "Reviewer comments"
// @Success 200 {object} response.Envelope
// @Router /approvals/{id}/reject [post]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	h.review(c, h.service.Reject)
}

// RequestRevision godoc
// @Summary Send a pending request back for revision
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.ReviewRequest true "Reviewer comments"
// @Success 200 {object} response.Envelope
// @Router /approvals/{id}/revision [post]
func (h *ApprovalHandler) RequestRevision(c *gin.Context) {
	h.review(c, h.service.RequestRevision)
}

// Export godoc
// @Summary Export the pending queue or a student's history
// @Tags Approvals
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Param studentId query string false "Student ID"
// @Router /approvals/export [get]
func (h *ApprovalHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	result, err := h.exports.PendingQueue(c.Request.Context(), service.ExportFormat(c.DefaultQuery("format", "csv")), c.Query("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *ApprovalHandler) review(c *gin.Context, action func(ctx context.Context, id, reviewerID, comments string) (*models.ApprovalRequest, error)) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	// body is optional for approvals, so an empty body is tolerated
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid review payload"))
		return
	}
	request, err := action(c.Request.Context(), c.Param("id"), claims.ReviewerID, req.Comments)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordReview(string(request.Status))
	}
	response.JSON(c, http.StatusOK, request)
}
