package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tradelink-backend/internal/adapters/persistence/models"
	"tradelink-backend/internal/adapters/persistence/repositories"
	"tradelink-backend/internal/core/domain"
	"tradelink-backend/internal/pkg/validator"

	"go.uber.org/zap"
)

// RequestMeta is best-effort capture metadata taken from the incoming
// request. Any of the fields may be empty.
type RequestMeta struct {
	IPAddress string
	UserAgent string
	Referrer  string
}

// NotifyResult holds the per-channel fan-out outcomes for one intake.
type NotifyResult struct {
	Webhook      Outcome `json:"webhook"`
	AdminEmail   Outcome `json:"admin_email"`
	Confirmation Outcome `json:"confirmation_email"`
}

// IntakeService runs the public submission pipeline:
// validate -> rate-limit -> insert -> notify.
type IntakeService struct {
	repo         repositories.ApplicationRepository
	notifier     WebhookNotifier
	mailer       Mailer
	maxPerWindow int64
	window       time.Duration
	logger       *zap.Logger
}

// NewIntakeService creates a new intake service
func NewIntakeService(
	repo repositories.ApplicationRepository,
	notifier WebhookNotifier,
	mailer Mailer,
	maxPerWindow int,
	windowHours int,
	logger *zap.Logger,
) *IntakeService {
	return &IntakeService{
		repo:         repo,
		notifier:     notifier,
		mailer:       mailer,
		maxPerWindow: int64(maxPerWindow),
		window:       time.Duration(windowHours) * time.Hour,
		logger:       logger,
	}
}

// Window returns the rate-limit window, for retry guidance messages.
func (s *IntakeService) Window() time.Duration {
	return s.window
}

// Submit processes one public submission and returns the new
// application ID. It returns validator.Errors for invalid payloads and
// domain.ErrRateLimited once the per-email quota is reached. The
// quota check and the insert are deliberately not one transaction: two
// concurrent submissions from the same email can both pass the check.
// That race is accepted rather than locked away.
func (s *IntakeService) Submit(ctx context.Context, form *validator.IntakeForm, meta RequestMeta) (uint, error) {
	intake, errs := validator.Validate(form)
	if errs != nil {
		return 0, errs
	}

	since := time.Now().Add(-s.window)
	count, err := s.repo.CountRecentByEmail(ctx, intake.Email, since)
	if err != nil {
		return 0, fmt.Errorf("rate limit check: %w", err)
	}
	if count >= s.maxPerWindow {
		s.logger.Info("submission rejected by rate limit",
			zap.String("email", intake.Email),
			zap.Int64("recent", count))
		return 0, domain.ErrRateLimited
	}

	app := &models.Application{
		ProjectType:        intake.ProjectType,
		ProjectDescription: intake.ProjectDescription,
		Timeline:           intake.Timeline,
		TradeType:          intake.TradeType,
		TradeDescription:   intake.TradeDescription,
		EstimatedValue:     intake.EstimatedValue,
		Name:               intake.Name,
		Email:              intake.Email,
		Website:            intake.Website,
		AdditionalInfo:     intake.AdditionalInfo,
		IPAddress:          meta.IPAddress,
		UserAgent:          meta.UserAgent,
		Referrer:           meta.Referrer,
		Status:             models.StatusPending,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return 0, fmt.Errorf("insert application: %w", err)
	}

	// The application is accepted once persisted. Notification failures
	// after this point are logged and swallowed, never rolled back.
	result := s.notify(ctx, app)
	s.logger.Info("application accepted",
		zap.Uint("application_id", app.ID),
		zap.String("webhook", string(result.Webhook)),
		zap.String("admin_email", string(result.AdminEmail)),
		zap.String("confirmation_email", string(result.Confirmation)))

	return app.ID, nil
}

// notify fans the new application out to the chat webhook and both
// emails. Every attempt is awaited before returning: the hosting
// environment may kill the process as soon as the response is written,
// so fire-and-forget would silently drop notifications.
func (s *IntakeService) notify(ctx context.Context, app *models.Application) NotifyResult {
	result := NotifyResult{}

	result.Webhook = s.notifier.SendApplicationAlert(ctx, app)

	if !s.mailer.Enabled() {
		result.AdminEmail = OutcomeSkipped
		result.Confirmation = OutcomeSkipped
		return result
	}

	// Both emails in flight at once, each independently best-effort.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.mailer.SendAdminAlert(app); err != nil {
			result.AdminEmail = OutcomeFailed
			return
		}
		result.AdminEmail = OutcomeSent
	}()
	go func() {
		defer wg.Done()
		if err := s.mailer.SendConfirmation(app); err != nil {
			result.Confirmation = OutcomeFailed
			return
		}
		result.Confirmation = OutcomeSent
	}()
	wg.Wait()

	return result
}
