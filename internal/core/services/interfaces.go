package services

import (
	"context"

	"tradelink-backend/internal/adapters/persistence/models"
)

// Note: IntakeService implementation is in intake_service.go
// Note: ReviewService implementation is in review_service.go
// Note: AuthService implementation is in auth_service.go

// Outcome is the result of one notification channel attempt. A missing
// configuration yields skipped, distinct from a transport failure.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// WebhookNotifier posts application events to the chat webhook.
type WebhookNotifier interface {
	SendApplicationAlert(ctx context.Context, app *models.Application) Outcome
	SendDigest(ctx context.Context, counts *models.StatusCounts) Outcome
}

// Mailer sends transactional email. Enabled reports whether an SMTP
// endpoint is configured at all.
type Mailer interface {
	Enabled() bool
	SendAdminAlert(app *models.Application) error
	SendConfirmation(app *models.Application) error
	SendCustom(app *models.Application, subject, body string) error
}
