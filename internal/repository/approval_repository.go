package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eduintel/eli-api/internal/models"
)

// ApprovalRepository persists approval workflow data.
type ApprovalRepository struct {
	db *sqlx.DB
}

// NewApprovalRepository constructs the repository.
func NewApprovalRepository(db *sqlx.DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

const approvalColumns = `id, student_id, decision_type, decision_data, status, priority,
       created_at, reviewed_at, reviewer_id, reviewer_comments`

// Create inserts a new approval request row in PENDING state.
func (r *ApprovalRepository) Create(ctx context.Context, request *models.ApprovalRequest) error {
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
	const query = `INSERT INTO approval_requests
	(id, student_id, decision_type, decision_data, status, priority, created_at, reviewed_at, reviewer_id, reviewer_comments)
	VALUES (:id, :student_id, :decision_type, :decision_data, :status, :priority, :created_at, :reviewed_at, :reviewer_id, :reviewer_comments)`
	if _, err := r.db.NamedExecContext(ctx, query, request); err != nil {
		return fmt.Errorf("create approval request: %w", err)
	}
	return nil
}

// GetByID fetches an approval request by identifier.
func (r *ApprovalRepository) GetByID(ctx context.Context, id string) (*models.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE id = $1`
	var request models.ApprovalRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPending returns pending requests oldest first, optionally filtered by
// exact priority. The ascending order is a contract relied on by FIFO review
// queues, not an implementation accident.
func (r *ApprovalRepository) ListPending(ctx context.Context, priority models.ApprovalPriority) ([]models.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE status = $1`
	args := []interface{}{models.ApprovalStatusPending}
	if priority != "" {
		args = append(args, priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	query += " ORDER BY created_at ASC"

	requests := []models.ApprovalRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("list pending approvals: %w", err)
	}
	return requests, nil
}

// ListByStudent returns all requests ever filed for a student, oldest first.
func (r *ApprovalRepository) ListByStudent(ctx context.Context, studentID string) ([]models.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE student_id = $1 ORDER BY created_at ASC`
	requests := []models.ApprovalRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, studentID); err != nil {
		return nil, fmt.Errorf("list approvals by student: %w", err)
	}
	return requests, nil
}

// ReviewParams groups the columns a review action sets.
type ReviewParams struct {
	ID         string
	Status     models.ApprovalStatus
	ReviewerID string
	ReviewedAt time.Time
	Comments   *string
}

// UpdateStatusIfPending performs the atomic check-and-set a review action
// requires: the row is only touched while still PENDING, so two racing
// reviewers resolve to exactly one winner. Zero rows affected maps to
// sql.ErrNoRows; the caller distinguishes missing id from already-reviewed.
func (r *ApprovalRepository) UpdateStatusIfPending(ctx context.Context, params ReviewParams) error {
	query := fmt.Sprintf(`UPDATE approval_requests
	SET status = :status, reviewed_at = :reviewed_at, reviewer_id = :reviewer_id, reviewer_comments = :reviewer_comments
	WHERE id = :id AND status = '%s'`, models.ApprovalStatusPending)
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":                params.ID,
		"status":            params.Status,
		"reviewed_at":       params.ReviewedAt,
		"reviewer_id":       params.ReviewerID,
		"reviewer_comments": params.Comments,
	})
	if err != nil {
		return fmt.Errorf("update approval status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check approval update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
