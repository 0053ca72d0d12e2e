package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eduintel/eli-api/internal/models"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

type approvalListerStub struct {
	pending []models.ApprovalRequest
	history []models.ApprovalRequest
}

func (s *approvalListerStub) ListPending(ctx context.Context, priority models.ApprovalPriority) ([]models.ApprovalRequest, error) {
	return s.pending, nil
}

func (s *approvalListerStub) ListByStudent(ctx context.Context, studentID string) ([]models.ApprovalRequest, error) {
	return s.history, nil
}

func exportFixture() *approvalListerStub {
	comments := "needs a human pass"
	reviewer := "rev-1"
	reviewedAt := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	return &approvalListerStub{
		pending: []models.ApprovalRequest{{
			ID:           "req-1",
			StudentID:    "student-1",
			DecisionType: models.DecisionTypeAssessment,
			Status:       models.ApprovalStatusPending,
			Priority:     models.PriorityHigh,
			CreatedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		}},
		history: []models.ApprovalRequest{{
			ID:               "req-2",
			StudentID:        "student-9",
			DecisionType:     models.DecisionTypeRecommendation,
			Status:           models.ApprovalStatusRejected,
			Priority:         models.PriorityNormal,
			CreatedAt:        time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			ReviewedAt:       &reviewedAt,
			ReviewerID:       &reviewer,
			ReviewerComments: &comments,
		}},
	}
}

func TestExportServicePendingQueueCSV(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	result, err := svc.PendingQueue(context.Background(), ExportFormatCSV, "")
	require.NoError(t, err)
	require.Equal(t, "text/csv", result.ContentType)
	require.Equal(t, "approvals.csv", result.Filename)

	body := string(result.Content)
	require.True(t, strings.HasPrefix(body, "ID,Student,Decision Type,Status,Priority,Created,Reviewed,Reviewer,Comments"))
	require.Contains(t, body, "req-1,student-1,assessment,PENDING,high,2026-03-01 09:00")
}

func TestExportServiceStudentHistoryCSV(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	result, err := svc.PendingQueue(context.Background(), ExportFormatCSV, "student-9")
	require.NoError(t, err)
	body := string(result.Content)
	require.Contains(t, body, "req-2")
	require.Contains(t, body, "REJECTED")
	require.Contains(t, body, "needs a human pass")
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	result, err := svc.PendingQueue(context.Background(), ExportFormatPDF, "")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", result.ContentType)
	require.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportServiceUnknownFormat(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	_, err := svc.PendingQueue(context.Background(), "xlsx", "")
	require.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
