package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
	"github.com/eduintel/eli-api/internal/repository"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

type approvalRepoStub struct {
	mu       sync.Mutex
	requests map[string]*models.ApprovalRequest
}

func newApprovalRepoStub() *approvalRepoStub {
	return &approvalRepoStub{requests: make(map[string]*models.ApprovalRequest)}
}

func (s *approvalRepoStub) Create(ctx context.Context, request *models.ApprovalRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = models.ApprovalStatusPending
	}
	if request.Priority == "" {
		request.Priority = models.PriorityNormal
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}
	copy := *request
	s.requests[request.ID] = &copy
	return nil
}

func (s *approvalRepoStub) GetByID(ctx context.Context, id string) (*models.ApprovalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.requests[id]; ok {
		copy := *r
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *approvalRepoStub) ListPending(ctx context.Context, priority models.ApprovalPriority) ([]models.ApprovalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.ApprovalRequest
	for _, r := range s.requests {
		if r.Status != models.ApprovalStatusPending {
			continue
		}
		if priority != "" && r.Priority != priority {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (s *approvalRepoStub) ListByStudent(ctx context.Context, studentID string) ([]models.ApprovalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.ApprovalRequest
	for _, r := range s.requests {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (s *approvalRepoStub) UpdateStatusIfPending(ctx context.Context, params repository.ReviewParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[params.ID]
	if !ok || r.Status != models.ApprovalStatusPending {
		return sql.ErrNoRows
	}
	r.Status = params.Status
	r.ReviewerID = &params.ReviewerID
	r.ReviewedAt = &params.ReviewedAt
	r.ReviewerComments = params.Comments
	return nil
}

type auditStub struct {
	mu   sync.Mutex
	logs []*models.AuditLog
}

func (a *auditStub) Create(ctx context.Context, log *models.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logs = append(a.logs, log)
	return nil
}

func (a *auditStub) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.logs)
}

func pendingRequest(t *testing.T, svc *ApprovalService) *models.ApprovalRequest {
	t.Helper()
	request, err := svc.Submit(context.Background(), dto.CreateApprovalRequest{
		StudentID:    "student-1",
		DecisionType: models.DecisionTypeRecommendation,
		DecisionData: []byte(`{"analysis":"study more algebra"}`),
	})
	require.NoError(t, err)
	return request
}

func TestApprovalServiceSubmit(t *testing.T) {
	repo := newApprovalRepoStub()
	audit := &auditStub{}
	svc := NewApprovalService(repo, audit, nil)

	request := pendingRequest(t, svc)
	require.NotEmpty(t, request.ID)
	require.Equal(t, models.ApprovalStatusPending, request.Status)
	require.Equal(t, models.PriorityNormal, request.Priority)
	require.Equal(t, 1, audit.count())

	loaded, err := svc.Get(context.Background(), request.ID)
	require.NoError(t, err)
	require.Equal(t, request.ID, loaded.ID)
	require.Equal(t, models.ApprovalStatusPending, loaded.Status)
}

func TestApprovalServiceSubmitValidation(t *testing.T) {
	svc := NewApprovalService(newApprovalRepoStub(), nil, nil)

	_, err := svc.Submit(context.Background(), dto.CreateApprovalRequest{
		StudentID:    "student-1",
		DecisionType: "astrology",
		DecisionData: []byte(`{}`),
	})
	require.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Submit(context.Background(), dto.CreateApprovalRequest{
		StudentID:    "student-1",
		DecisionType: models.DecisionTypeAssessment,
		DecisionData: []byte(`not json`),
	})
	require.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestApprovalServiceApprove(t *testing.T) {
	repo := newApprovalRepoStub()
	audit := &auditStub{}
	svc := NewApprovalService(repo, audit, nil)
	request := pendingRequest(t, svc)

	reviewed, err := svc.Approve(context.Background(), request.ID, "reviewer-1", "looks right")
	require.NoError(t, err)
	require.Equal(t, models.ApprovalStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedAt)
	require.Equal(t, "reviewer-1", *reviewed.ReviewerID)
	require.Equal(t, "looks right", *reviewed.ReviewerComments)
	require.Equal(t, 2, audit.count())
}

func TestApprovalServiceRejectRequiresComments(t *testing.T) {
	svc := NewApprovalService(newApprovalRepoStub(), nil, nil)
	_, err := svc.Reject(context.Background(), "any", "reviewer-1", "  ")
	require.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestApprovalServiceReviewTwice(t *testing.T) {
	repo := newApprovalRepoStub()
	svc := NewApprovalService(repo, nil, nil)
	request := pendingRequest(t, svc)

	_, err := svc.Reject(context.Background(), request.ID, "reviewer-1", "wrong subject")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), request.ID, "reviewer-2", "fine by me")
	require.True(t, appErrors.Is(err, appErrors.ErrInvalidTransition))

	loaded, err := svc.Get(context.Background(), request.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalStatusRejected, loaded.Status)
	require.Equal(t, "reviewer-1", *loaded.ReviewerID)
}

func TestApprovalServiceRevisionIsTerminal(t *testing.T) {
	repo := newApprovalRepoStub()
	svc := NewApprovalService(repo, nil, nil)
	request := pendingRequest(t, svc)

	reviewed, err := svc.RequestRevision(context.Background(), request.ID, "reviewer-1", "redo with recent scores")
	require.NoError(t, err)
	require.Equal(t, models.ApprovalStatusNeedsRevision, reviewed.Status)

	_, err = svc.Approve(context.Background(), request.ID, "reviewer-1", "second thoughts")
	require.True(t, appErrors.Is(err, appErrors.ErrInvalidTransition))
}

func TestApprovalServiceConcurrentReview(t *testing.T) {
	repo := newApprovalRepoStub()
	svc := NewApprovalService(repo, nil, nil)
	request := pendingRequest(t, svc)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.Approve(context.Background(), request.ID, "reviewer-a", "approve")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.Reject(context.Background(), request.ID, "reviewer-b", "reject")
	}()
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case appErrors.Is(err, appErrors.ErrInvalidTransition):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, conflicts)

	loaded, err := svc.Get(context.Background(), request.ID)
	require.NoError(t, err)
	require.NotEqual(t, models.ApprovalStatusPending, loaded.Status)
	require.NotNil(t, loaded.ReviewerID)
}

func TestApprovalServiceListPending(t *testing.T) {
	repo := newApprovalRepoStub()
	svc := NewApprovalService(repo, nil, nil)

	first := pendingRequest(t, svc)
	second, err := svc.Submit(context.Background(), dto.CreateApprovalRequest{
		StudentID:    "student-2",
		DecisionType: models.DecisionTypeProgress,
		DecisionData: []byte(`{"analysis":"steady improvement"}`),
		Priority:     models.PriorityHigh,
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), first.ID, "reviewer-1", "")
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second.ID, pending[0].ID)

	high, err := svc.ListPending(context.Background(), models.PriorityHigh)
	require.NoError(t, err)
	require.Len(t, high, 1)

	_, err = svc.ListPending(context.Background(), "whenever")
	require.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestApprovalServiceGetMissing(t *testing.T) {
	svc := NewApprovalService(newApprovalRepoStub(), nil, nil)
	_, err := svc.Get(context.Background(), "missing")
	require.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
