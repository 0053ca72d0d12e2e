package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
	"github.com/eduintel/eli-api/internal/repository"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

type approvalStore interface {
	Create(ctx context.Context, request *models.ApprovalRequest) error
	GetByID(ctx context.Context, id string) (*models.ApprovalRequest, error)
	ListPending(ctx context.Context, priority models.ApprovalPriority) ([]models.ApprovalRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.ApprovalRequest, error)
	UpdateStatusIfPending(ctx context.Context, params repository.ReviewParams) error
}

type auditLogger interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// ApprovalService owns the review lifecycle of AI decisions. Every request
// starts PENDING and moves exactly once to APPROVED, REJECTED or
// NEEDS_REVISION; revised decisions come back as brand new requests.
type ApprovalService struct {
	repo   approvalStore
	audit  auditLogger
	logger *zap.Logger
}

// NewApprovalService constructs the service.
func NewApprovalService(repo approvalStore, audit auditLogger, logger *zap.Logger) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{repo: repo, audit: audit, logger: logger}
}

// Submit files a new approval request in PENDING state.
func (s *ApprovalService) Submit(ctx context.Context, req dto.CreateApprovalRequest) (*models.ApprovalRequest, error) {
	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}
	if !req.DecisionType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported decision type")
	}
	if len(req.DecisionData) == 0 || !json.Valid(req.DecisionData) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "decisionData must be valid JSON")
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported priority")
	}

	request := &models.ApprovalRequest{
		StudentID:    studentID,
		DecisionType: req.DecisionType,
		DecisionData: append(json.RawMessage(nil), req.DecisionData...),
		Priority:     req.Priority,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to create approval request")
	}
	s.emitAudit(ctx, &models.AuditLog{
		Action:     models.AuditActionApprovalCreate,
		Resource:   string(request.DecisionType),
		ResourceID: &request.ID,
		Detail:     request.DecisionData,
	})
	s.logger.Info("approval request filed",
		zap.String("request_id", request.ID),
		zap.String("student_id", request.StudentID),
		zap.String("decision_type", string(request.DecisionType)))
	return request, nil
}

// Approve marks a pending request APPROVED on behalf of the reviewer.
func (s *ApprovalService) Approve(ctx context.Context, id, reviewerID, comments string) (*models.ApprovalRequest, error) {
	return s.review(ctx, id, reviewerID, comments, models.ApprovalStatusApproved, models.AuditActionApprovalApprove)
}

// Reject marks a pending request REJECTED. Comments are mandatory so the
// student record always explains why a decision was blocked.
func (s *ApprovalService) Reject(ctx context.Context, id, reviewerID, comments string) (*models.ApprovalRequest, error) {
	if strings.TrimSpace(comments) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "comments are required when rejecting")
	}
	return s.review(ctx, id, reviewerID, comments, models.ApprovalStatusRejected, models.AuditActionApprovalReject)
}

// RequestRevision marks a pending request NEEDS_REVISION. The state is
// terminal; a corrected decision must be submitted as a new request.
func (s *ApprovalService) RequestRevision(ctx context.Context, id, reviewerID, comments string) (*models.ApprovalRequest, error) {
	if strings.TrimSpace(comments) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "comments are required when requesting revision")
	}
	return s.review(ctx, id, reviewerID, comments, models.ApprovalStatusNeedsRevision, models.AuditActionApprovalRevise)
}

// Get returns one request by id.
func (s *ApprovalService) Get(ctx context.Context, id string) (*models.ApprovalRequest, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "approval request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load approval request")
	}
	return request, nil
}

// ListPending returns the review queue, oldest first, optionally filtered
// by priority.
func (s *ApprovalService) ListPending(ctx context.Context, priority models.ApprovalPriority) ([]models.ApprovalRequest, error) {
	if priority != "" && !priority.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported priority")
	}
	requests, err := s.repo.ListPending(ctx, priority)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to list pending requests")
	}
	return requests, nil
}

// ListByStudent returns the full decision history for one student.
func (s *ApprovalService) ListByStudent(ctx context.Context, studentID string) ([]models.ApprovalRequest, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}
	requests, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to list student requests")
	}
	return requests, nil
}

// review performs the shared transition. The pending check in the UPDATE's
// WHERE clause is what makes concurrent reviews safe: the read below only
// produces a friendlier error for the common non-racy case.
func (s *ApprovalService) review(ctx context.Context, id, reviewerID, comments string, status models.ApprovalStatus, auditAction string) (*models.ApprovalRequest, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "request id is required")
	}
	if strings.TrimSpace(reviewerID) == "" {
		return nil, appErrors.ErrUnauthorized
	}
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "approval request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load approval request")
	}
	if request.Status != models.ApprovalStatusPending {
		return nil, appErrors.ErrInvalidTransition
	}

	now := time.Now().UTC()
	params := repository.ReviewParams{
		ID:         id,
		Status:     status,
		ReviewerID: reviewerID,
		ReviewedAt: now,
		Comments:   optionalString(comments),
	}
	if err := s.repo.UpdateStatusIfPending(ctx, params); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidTransition
		}
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to update approval request")
	}

	request.Status = status
	request.ReviewerID = &reviewerID
	request.ReviewedAt = &now
	request.ReviewerComments = params.Comments
	s.emitAudit(ctx, &models.AuditLog{
		ActorID:    &reviewerID,
		Action:     auditAction,
		Resource:   string(request.DecisionType),
		ResourceID: &request.ID,
	})
	s.logger.Info("approval request reviewed",
		zap.String("request_id", request.ID),
		zap.String("status", string(status)),
		zap.String("reviewer_id", reviewerID))
	return request, nil
}

func (s *ApprovalService) emitAudit(ctx context.Context, log *models.AuditLog) {
	if s.audit == nil || log == nil {
		return
	}
	log.IPAddress = "system"
	log.UserAgent = "approval-service"
	if err := s.audit.Create(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit log", zap.Error(err))
	}
}

func optionalString(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}
