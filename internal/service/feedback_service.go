package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
	"github.com/eduintel/eli-api/internal/repository"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

type feedbackStore interface {
	Append(ctx context.Context, record *models.FeedbackRecord) error
	HistoryByStudent(ctx context.Context, studentID string) ([]models.FeedbackRecord, error)
	AverageRating(ctx context.Context, recommendationID string) (*repository.RatingStats, error)
}

type ratingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const ratingCachePrefix = "feedback:avg:"

// FeedbackService maintains the append-only feedback ledger and the derived
// per-recommendation rating averages.
type FeedbackService struct {
	repo     feedbackStore
	cache    ratingCache
	audit    auditLogger
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewFeedbackService constructs the service. The cache may be nil, in which
// case averages are always computed from the database.
func NewFeedbackService(repo feedbackStore, cache ratingCache, audit auditLogger, cacheTTL time.Duration, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &FeedbackService{repo: repo, cache: cache, audit: audit, cacheTTL: cacheTTL, logger: logger}
}

// Submit appends one feedback record. Records are never updated or removed,
// so contradictory feedback simply accumulates in submission order.
func (s *FeedbackService) Submit(ctx context.Context, req dto.SubmitFeedbackRequest) (*models.FeedbackRecord, error) {
	if strings.TrimSpace(req.StudentID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}
	if strings.TrimSpace(req.RecommendationID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "recommendationId is required")
	}
	if !req.FeedbackType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported feedback type")
	}
	if req.Rating != nil && (*req.Rating < models.RatingMin || *req.Rating > models.RatingMax) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rating must be between 1 and 5")
	}

	record := &models.FeedbackRecord{
		StudentID:        strings.TrimSpace(req.StudentID),
		RecommendationID: strings.TrimSpace(req.RecommendationID),
		FeedbackType:     req.FeedbackType,
		Comments:         req.Comments,
		Rating:           req.Rating,
	}
	if err := s.repo.Append(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to append feedback")
	}

	if s.cache != nil && record.Rating != nil {
		if err := s.cache.Delete(ctx, ratingCachePrefix+record.RecommendationID); err != nil {
			s.logger.Warn("failed to invalidate rating cache",
				zap.String("recommendation_id", record.RecommendationID), zap.Error(err))
		}
	}
	s.emitAudit(ctx, &models.AuditLog{
		Action:     models.AuditActionFeedbackSubmit,
		Resource:   "feedback",
		ResourceID: &record.ID,
	})
	s.logger.Info("feedback recorded",
		zap.String("feedback_id", record.ID),
		zap.String("recommendation_id", record.RecommendationID),
		zap.String("feedback_type", string(record.FeedbackType)))
	return record, nil
}

// History returns every feedback record for a student, oldest first. An
// unknown student yields an empty slice, not an error.
func (s *FeedbackService) History(ctx context.Context, studentID string) ([]models.FeedbackRecord, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}
	records, err := s.repo.HistoryByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load feedback history")
	}
	return records, nil
}

// AverageRating returns the mean rating for a recommendation, serving from
// cache when a fresh value exists. Average stays null until at least one
// rated record exists.
func (s *FeedbackService) AverageRating(ctx context.Context, recommendationID string) (*dto.AverageRatingResponse, error) {
	if strings.TrimSpace(recommendationID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "recommendationId is required")
	}

	cacheKey := ratingCachePrefix + recommendationID
	if s.cache != nil {
		var cached dto.AverageRatingResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !appErrors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("rating cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	stats, err := s.repo.AverageRating(ctx, recommendationID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to compute average rating")
	}
	resp := &dto.AverageRatingResponse{
		RecommendationID: recommendationID,
		Average:          stats.Average,
		RatedCount:       stats.RatedCount,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, s.cacheTTL); err != nil {
			s.logger.Warn("rating cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return resp, nil
}

func (s *FeedbackService) emitAudit(ctx context.Context, log *models.AuditLog) {
	if s.audit == nil || log == nil {
		return
	}
	log.IPAddress = "system"
	log.UserAgent = "feedback-service"
	if err := s.audit.Create(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit log", zap.Error(err))
	}
}
