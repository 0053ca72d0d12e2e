package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eduintel/eli-api/internal/models"
)

// ReviewerRepository manages reviewer accounts.
type ReviewerRepository struct {
	db *sqlx.DB
}

// NewReviewerRepository constructs the repository.
func NewReviewerRepository(db *sqlx.DB) *ReviewerRepository {
	return &ReviewerRepository{db: db}
}

// GetByEmail loads a reviewer account for authentication.
func (r *ReviewerRepository) GetByEmail(ctx context.Context, email string) (*models.Reviewer, error) {
	const query = `SELECT id, email, password_hash, full_name, role, is_active, created_at
	FROM reviewers WHERE email = $1`
	var reviewer models.Reviewer
	if err := r.db.GetContext(ctx, &reviewer, query, email); err != nil {
		return nil, err
	}
	return &reviewer, nil
}

// GetByID loads a reviewer by identifier.
func (r *ReviewerRepository) GetByID(ctx context.Context, id string) (*models.Reviewer, error) {
	const query = `SELECT id, email, password_hash, full_name, role, is_active, created_at
	FROM reviewers WHERE id = $1`
	var reviewer models.Reviewer
	if err := r.db.GetContext(ctx, &reviewer, query, id); err != nil {
		return nil, err
	}
	return &reviewer, nil
}

// Create inserts a reviewer account.
func (r *ReviewerRepository) Create(ctx context.Context, reviewer *models.Reviewer) error {
	if reviewer.ID == "" {
		reviewer.ID = uuid.NewString()
	}
	if reviewer.CreatedAt.IsZero() {
		reviewer.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO reviewers (id, email, password_hash, full_name, role, is_active, created_at)
	VALUES (:id, :email, :password_hash, :full_name, :role, :is_active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reviewer); err != nil {
		return fmt.Errorf("create reviewer: %w", err)
	}
	return nil
}
