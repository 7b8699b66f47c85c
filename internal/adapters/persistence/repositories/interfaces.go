package repositories

import (
	"context"
	"time"

	"tradelink-backend/internal/adapters/persistence/models"
)

// ListFilter describes filtering, searching, sorting and pagination
// for application listings. Status filters exactly; Search is a
// case-insensitive substring match across name, email and both
// description fields.
type ListFilter struct {
	Status    string
	Search    string
	Offset    int
	Limit     int
	SortBy    string // createdAt | name | email | status
	SortOrder string // asc | desc
}

// ApplicationRepository handles application data access.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Application, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) (bool, error)
	BulkUpdateStatus(ctx context.Context, ids []uint, status string) (int64, error)
	AppendNote(ctx context.Context, id uint, author, body string) error
	AppendEmailLog(ctx context.Context, id uint, template, subject string) error
	Delete(ctx context.Context, id uint) (bool, error)
	Stats(ctx context.Context) (*models.StatusCounts, error)
	CountRecentByEmail(ctx context.Context, email string, since time.Time) (int64, error)
}
