package repositories

import (
	"context"
	"errors"
	"time"

	"tradelink-backend/internal/adapters/persistence/models"
	"tradelink-backend/internal/core/domain"

	"gorm.io/gorm"
)

// sortColumns whitelists sortable fields (API name -> column).
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"email":     "email",
	"status":    "status",
}

// applicationRepository is the GORM-backed application store.
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts a new application. Status defaults to pending.
func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets an application by ID with its notes and email log
func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("EmailLog", func(db *gorm.DB) *gorm.DB { return db.Order("sent_at ASC") }).
		First(&app, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// List lists applications matching the filter with pagination.
// Substring search relies on the MySQL default collation being
// case-insensitive.
func (r *applicationRepository) List(ctx context.Context, filter ListFilter) ([]*models.Application, int64, error) {
	var apps []*models.Application
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Application{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"name LIKE ? OR email LIKE ? OR project_description LIKE ? OR trade_description LIKE ?",
			like, like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	err := query.
		Order(column + " " + direction).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&apps).Error

	return apps, total, err
}

// UpdateStatus sets a new status and bumps updated_at. Returns false
// when the application does not exist. Any status may replace any
// other; review is manual, not state-machine-restricted.
func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// BulkUpdateStatus applies the status to every given ID independently.
// Missing IDs are skipped and do not fail the batch.
func (r *applicationRepository) BulkUpdateStatus(ctx context.Context, ids []uint, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// AppendNote appends an admin note and bumps the parent's updated_at.
func (r *applicationRepository) AppendNote(ctx context.Context, id uint, author, body string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Application{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrApplicationNotFound
		}
		note := models.ApplicationNote{
			ApplicationID: id,
			Author:        author,
			Body:          body,
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return tx.Model(&models.Application{}).
			Where("id = ?", id).
			Update("updated_at", time.Now()).Error
	})
}

// AppendEmailLog appends an email-log entry and bumps updated_at.
func (r *applicationRepository) AppendEmailLog(ctx context.Context, id uint, template, subject string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Application{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrApplicationNotFound
		}
		entry := models.EmailLogEntry{
			ApplicationID: id,
			Template:      template,
			Subject:       subject,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Application{}).
			Where("id = ?", id).
			Update("updated_at", time.Now()).Error
	})
}

// Delete hard deletes an application with its notes and email log.
// Irreversible.
func (r *applicationRepository) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", id).Delete(&models.ApplicationNote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id = ?", id).Delete(&models.EmailLogEntry{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Application{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// Stats recomputes per-status counts on demand (not cached).
func (r *applicationRepository) Stats(ctx context.Context) (*models.StatusCounts, error) {
	counts := &models.StatusCounts{}

	rows := []struct {
		Status string
		Count  int64
	}{}
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		switch row.Status {
		case models.StatusPending:
			counts.Pending = row.Count
		case models.StatusReviewing:
			counts.Reviewing = row.Count
		case models.StatusAccepted:
			counts.Accepted = row.Count
		case models.StatusRejected:
			counts.Rejected = row.Count
		case models.StatusCompleted:
			counts.Completed = row.Count
		}
		counts.Total += row.Count
	}
	return counts, nil
}

// CountRecentByEmail counts applications from the same email since the
// given time. Used by the intake rate limit; the check and the insert
// are intentionally not one transaction.
func (r *applicationRepository) CountRecentByEmail(ctx context.Context, email string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("email = ? AND created_at >= ?", email, since).
		Count(&count).Error
	return count, err
}
