package services

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"tradelink-backend/internal/adapters/persistence/models"
	"tradelink-backend/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Email templates
const (
	TemplateAdminAlert   = "admin_alert"
	TemplateConfirmation = "applicant_confirmation"
	TemplateCustom       = "custom"
)

// MailerService sends transactional email over SMTP. An empty SMTP host
// disables delivery entirely; callers treat that as a skipped channel.
type MailerService struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewMailerService creates a new mailer service
func NewMailerService(cfg config.SMTPConfig, logger *zap.Logger) *MailerService {
	return &MailerService{cfg: cfg, logger: logger}
}

// Enabled reports whether an SMTP endpoint is configured
func (s *MailerService) Enabled() bool {
	return s.cfg.Host != ""
}

// SendAdminAlert notifies the site admin about a new application.
func (s *MailerService) SendAdminAlert(app *models.Application) error {
	if s.cfg.AdminAddress == "" {
		return fmt.Errorf("admin email address not configured")
	}

	subject := fmt.Sprintf("New trade application #%d from %s", app.ID, app.Name)
	body := fmt.Sprintf(
		"A new trade application has arrived.\r\n\r\n"+
			"Name: %s\r\nEmail: %s\r\nProject type: %s\r\nTimeline: %s\r\n"+
			"Trade type: %s\r\nEstimated value: $%d\r\n\r\n"+
			"Project:\r\n%s\r\n\r\nOffering:\r\n%s\r\n",
		app.Name, app.Email, app.ProjectType, app.Timeline,
		app.TradeType, app.EstimatedValue,
		app.ProjectDescription, app.TradeDescription,
	)

	return s.send(s.cfg.AdminAddress, subject, body)
}

// SendConfirmation acknowledges the submission to the applicant.
func (s *MailerService) SendConfirmation(app *models.Application) error {
	subject := fmt.Sprintf("We received your trade application (#%d)", app.ID)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"Thanks for your trade proposal. Your application number is #%d.\r\n"+
			"We review applications in the order they arrive and will reach out "+
			"at this address once a decision is made.\r\n\r\n"+
			"— %s\r\n",
		app.Name, app.ID, s.cfg.FromName,
	)

	return s.send(app.Email, subject, body)
}

// SendCustom sends an admin-authored email to the applicant.
func (s *MailerService) SendCustom(app *models.Application, subject, body string) error {
	return s.send(app.Email, subject, body)
}

// send delivers one plain-text message over SMTP.
func (s *MailerService) send(to, subject, body string) error {
	if !s.Enabled() {
		return fmt.Errorf("smtp not configured")
	}

	s.logger.Info("sending email",
		zap.String("to", to),
		zap.String("subject", subject))

	msg := s.buildMessage(to, subject, body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := smtp.SendMail(addr, auth, s.cfg.FromAddress, []string{to}, msg); err != nil {
		s.logger.Error("failed to send email",
			zap.String("to", to),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildMessage assembles the RFC 5322 message bytes.
func (s *MailerService) buildMessage(to, subject, body string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.FromAddress))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	buf.WriteString(fmt.Sprintf("Message-ID: <%s@%s>\r\n", uuid.NewString(), s.cfg.Host))
	buf.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")

	return buf.Bytes()
}
