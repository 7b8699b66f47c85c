package services

import (
	"context"
	"strings"

	"tradelink-backend/internal/adapters/persistence/models"
	"tradelink-backend/internal/adapters/persistence/repositories"
	"tradelink-backend/internal/core/domain"

	"go.uber.org/zap"
)

// ReviewService exposes the authenticated operations over the
// application store. Every operation is independently authorized by the
// session middleware before it reaches this layer.
type ReviewService struct {
	repo   repositories.ApplicationRepository
	mailer Mailer
	logger *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(repo repositories.ApplicationRepository, mailer Mailer, logger *zap.Logger) *ReviewService {
	return &ReviewService{repo: repo, mailer: mailer, logger: logger}
}

// ListInput represents list applications input
type ListInput struct {
	Status    string
	Search    string
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string
}

// Get returns one application with its notes and email log.
func (s *ReviewService) Get(ctx context.Context, id uint) (*models.Application, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of applications plus aggregate stats. Stats are
// recomputed per call rather than cached.
func (s *ReviewService) List(ctx context.Context, input ListInput) ([]*models.Application, int64, *models.StatusCounts, error) {
	if input.Status != "" && !models.IsValidStatus(input.Status) {
		return nil, 0, nil, domain.ErrInvalidStatus
	}

	apps, total, err := s.repo.List(ctx, repositories.ListFilter{
		Status:    input.Status,
		Search:    strings.TrimSpace(input.Search),
		Offset:    input.Offset,
		Limit:     input.Limit,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
	})
	if err != nil {
		return nil, 0, nil, err
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, 0, nil, err
	}

	return apps, total, stats, nil
}

// UpdateStatus moves one application to a new status. Any status may
// follow any other; the lifecycle is reviewed by a human, not a state
// machine.
func (s *ReviewService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !models.IsValidStatus(status) {
		return domain.ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrApplicationNotFound
	}

	s.logger.Info("application status updated",
		zap.Uint("application_id", id),
		zap.String("status", status))
	return nil
}

// BulkUpdateStatus applies one status to many applications. The target
// status is validated before storage is touched; missing IDs are
// skipped without failing the batch. There is no all-or-nothing
// guarantee across the batch.
func (s *ReviewService) BulkUpdateStatus(ctx context.Context, ids []uint, status string) (int64, error) {
	if !models.IsValidStatus(status) {
		return 0, domain.ErrInvalidStatus
	}

	modified, err := s.repo.BulkUpdateStatus(ctx, ids, status)
	if err != nil {
		return 0, err
	}

	s.logger.Info("bulk status update",
		zap.Int("requested", len(ids)),
		zap.Int64("modified", modified),
		zap.String("status", status))
	return modified, nil
}

// AppendNote appends an admin note to an application.
func (s *ReviewService) AppendNote(ctx context.Context, id uint, author, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(author) == "" {
		author = "admin"
	}
	return s.repo.AppendNote(ctx, id, author, body)
}

// Delete removes an application and its entire history. Irreversible.
func (s *ReviewService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrApplicationNotFound
	}

	s.logger.Info("application deleted", zap.Uint("application_id", id))
	return nil
}

// SendCustomEmail sends an admin-authored email to the applicant and
// appends an email-log entry on success. A send failure is reported to
// the caller; the application record is left untouched.
func (s *ReviewService) SendCustomEmail(ctx context.Context, id uint, template, subject, body string) error {
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if subject == "" || body == "" {
		return domain.ErrEmptyEmailContent
	}
	if template == "" {
		template = TemplateCustom
	}

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.mailer.Enabled() {
		return domain.ErrEmailDisabled
	}
	if err := s.mailer.SendCustom(app, subject, body); err != nil {
		return err
	}

	if err := s.repo.AppendEmailLog(ctx, id, template, subject); err != nil {
		// The mail is out; losing the log entry is logged, not fatal.
		s.logger.Error("email sent but log entry failed",
			zap.Uint("application_id", id),
			zap.Error(err))
	}

	s.logger.Info("custom email sent",
		zap.Uint("application_id", id),
		zap.String("template", template))
	return nil
}
