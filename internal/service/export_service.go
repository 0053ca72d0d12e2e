package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/eduintel/eli-api/internal/models"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
	"github.com/eduintel/eli-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type approvalLister interface {
	ListPending(ctx context.Context, priority models.ApprovalPriority) ([]models.ApprovalRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.ApprovalRequest, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders the review queue or a student's approval history as
// downloadable documents. Output is streamed to the caller, never stored.
type ExportService struct {
	approvals approvalLister
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
}

// NewExportService constructs the service with default renderers.
func NewExportService(approvals approvalLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		approvals: approvals,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// ExportResult carries rendered bytes plus response metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// PendingQueue renders the current pending queue. studentID switches the
// dataset to that student's full approval history instead.
func (s *ExportService) PendingQueue(ctx context.Context, format ExportFormat, studentID string) (*ExportResult, error) {
	var (
		requests []models.ApprovalRequest
		err      error
		title    string
	)
	if strings.TrimSpace(studentID) != "" {
		requests, err = s.approvals.ListByStudent(ctx, studentID)
		title = "Approval History " + studentID
	} else {
		requests, err = s.approvals.ListPending(ctx, "")
		title = "Pending Review Queue"
	}
	if err != nil {
		return nil, err
	}

	dataset := buildApprovalDataset(requests)
	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "approvals.csv"}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "approvals.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func buildApprovalDataset(requests []models.ApprovalRequest) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"ID", "Student", "Decision Type", "Status", "Priority", "Created", "Reviewed", "Reviewer", "Comments"},
	}
	for _, r := range requests {
		row := map[string]string{
			"ID":            r.ID,
			"Student":       r.StudentID,
			"Decision Type": string(r.DecisionType),
			"Status":        string(r.Status),
			"Priority":      string(r.Priority),
			"Created":       r.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		if r.ReviewedAt != nil {
			row["Reviewed"] = r.ReviewedAt.UTC().Format("2006-01-02 15:04")
		}
		if r.ReviewerID != nil {
			row["Reviewer"] = *r.ReviewerID
		}
		if r.ReviewerComments != nil {
			row["Comments"] = *r.ReviewerComments
		}
		dataset.Rows = append(dataset.Rows, row)
	}
	return dataset
}
