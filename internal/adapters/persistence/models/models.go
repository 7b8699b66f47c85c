package models

import (
	"time"

	"gorm.io/gorm"
)

// Application statuses
const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// ValidStatuses is the closed set of statuses an admin may assign.
var ValidStatuses = []string{
	StatusPending,
	StatusReviewing,
	StatusAccepted,
	StatusRejected,
	StatusCompleted,
}

// IsValidStatus reports whether s is one of the allowed statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application represents one trade application plus its review history.
// Intake fields are immutable after insert; only Status, Notes and
// EmailLog change during review. No soft delete: removing an
// application removes its history with it.
type Application struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	ProjectType        string  `gorm:"size:50;not null" json:"project_type"`
	ProjectDescription string  `gorm:"type:text;not null" json:"project_description"`
	Timeline           string  `gorm:"size:50;not null" json:"timeline"`
	TradeType          string  `gorm:"size:50;not null" json:"trade_type"`
	TradeDescription   string  `gorm:"type:text;not null" json:"trade_description"`
	EstimatedValue     int     `gorm:"not null" json:"estimated_value"`
	Name               string  `gorm:"size:100;not null" json:"name"`
	Email              string  `gorm:"size:255;not null;index" json:"email"`
	Website            *string `gorm:"size:500" json:"website"`
	AdditionalInfo     string  `gorm:"type:text" json:"additional_info"`

	// Capture metadata (best-effort)
	IPAddress string `gorm:"size:64" json:"ip_address"`
	UserAgent string `gorm:"size:512" json:"user_agent"`
	Referrer  string `gorm:"size:512" json:"referrer"`

	Status    string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations (append-only histories)
	Notes    []ApplicationNote `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	EmailLog []EmailLogEntry   `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"email_log,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

// ApplicationNote is one admin note. Notes are never edited or deleted,
// only appended.
type ApplicationNote struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	Author        string    `gorm:"size:100;not null;default:'admin'" json:"author"`
	Body          string    `gorm:"type:text;not null" json:"body"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ApplicationNote) TableName() string {
	return "application_notes"
}

// EmailLogEntry records one outbound email sent about an application.
type EmailLogEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	Template      string    `gorm:"size:50;not null" json:"template"`
	Subject       string    `gorm:"size:255;not null" json:"subject"`
	SentAt        time.Time `gorm:"autoCreateTime" json:"sent_at"`
}

func (EmailLogEntry) TableName() string {
	return "email_log_entries"
}

// StatusCounts holds per-status application counts.
type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Reviewing int64 `json:"reviewing"`
	Accepted  int64 `json:"accepted"`
	Rejected  int64 `json:"rejected"`
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

// AutoMigrate creates/updates the schema. Idempotent; called once at
// process start before the server accepts traffic.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Application{},
		&ApplicationNote{},
		&EmailLogEntry{},
	)
}
