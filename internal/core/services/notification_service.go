package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tradelink-backend/internal/adapters/persistence/models"

	"go.uber.org/zap"
)

// webhookFieldLimit caps long-text fields in chat messages.
const webhookFieldLimit = 500

const embedColorNew = 0x2ecc71

// NotificationService posts application events to a chat webhook.
// Delivery is best-effort: failures are logged and reported as an
// Outcome, never surfaced to the submitter.
type NotificationService struct {
	webhookURL string
	client     *http.Client
	logger     *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(webhookURL string, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		webhookURL: webhookURL,
		client:     &http.Client{},
		logger:     logger,
	}
}

// webhookMessage is the chat webhook payload (Discord-compatible).
type webhookMessage struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// SendApplicationAlert posts a structured message for a new application.
func (s *NotificationService) SendApplicationAlert(ctx context.Context, app *models.Application) Outcome {
	if s.webhookURL == "" {
		s.logger.Info("chat webhook not configured, skipping alert",
			zap.Uint("application_id", app.ID))
		return OutcomeSkipped
	}

	fields := []embedField{
		{Name: "Name", Value: app.Name, Inline: true},
		{Name: "Email", Value: app.Email, Inline: true},
		{Name: "Project Type", Value: app.ProjectType, Inline: true},
		{Name: "Timeline", Value: app.Timeline, Inline: true},
		{Name: "Trade Type", Value: app.TradeType, Inline: true},
		{Name: "Estimated Value", Value: fmt.Sprintf("$%d", app.EstimatedValue), Inline: true},
		{Name: "Project", Value: truncate(app.ProjectDescription, webhookFieldLimit)},
		{Name: "Offering", Value: truncate(app.TradeDescription, webhookFieldLimit)},
	}
	if app.AdditionalInfo != "" {
		fields = append(fields, embedField{Name: "Additional Info", Value: truncate(app.AdditionalInfo, webhookFieldLimit)})
	}
	if app.Website != nil {
		fields = append(fields, embedField{Name: "Website", Value: *app.Website, Inline: true})
	}
	if app.Referrer != "" {
		fields = append(fields, embedField{Name: "Referrer", Value: app.Referrer, Inline: true})
	}

	msg := webhookMessage{
		Embeds: []embed{{
			Title:     fmt.Sprintf("🆕 Trade application #%d", app.ID),
			Color:     embedColorNew,
			Fields:    fields,
			Timestamp: app.CreatedAt.UTC().Format(time.RFC3339),
		}},
	}

	return s.post(ctx, app.ID, &msg)
}

// SendDigest posts the daily review-backlog summary.
func (s *NotificationService) SendDigest(ctx context.Context, counts *models.StatusCounts) Outcome {
	if s.webhookURL == "" {
		return OutcomeSkipped
	}

	msg := webhookMessage{
		Embeds: []embed{{
			Title: "📋 Trade application backlog",
			Color: embedColorNew,
			Fields: []embedField{
				{Name: "Pending", Value: fmt.Sprintf("%d", counts.Pending), Inline: true},
				{Name: "Reviewing", Value: fmt.Sprintf("%d", counts.Reviewing), Inline: true},
				{Name: "Total", Value: fmt.Sprintf("%d", counts.Total), Inline: true},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	}

	return s.post(ctx, 0, &msg)
}

// post delivers one webhook payload and maps the result to an Outcome.
func (s *NotificationService) post(ctx context.Context, applicationID uint, msg *webhookMessage) Outcome {
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("failed to encode webhook payload", zap.Error(err))
		return OutcomeFailed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("failed to build webhook request", zap.Error(err))
		return OutcomeFailed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("webhook delivery failed",
			zap.Uint("application_id", applicationID),
			zap.Error(err))
		return OutcomeFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("webhook rejected message",
			zap.Uint("application_id", applicationID),
			zap.Int("status", resp.StatusCode))
		return OutcomeFailed
	}

	return OutcomeSent
}

// truncate shortens s to at most limit characters, marking the cut with
// an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
