package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tradelink-backend/internal/adapters/persistence/models"
	"tradelink-backend/internal/adapters/persistence/repositories"
	"tradelink-backend/internal/core/domain"
)

// fakeApplicationRepo is an in-memory ApplicationRepository for service
// tests. Error fields, when set, are returned by the matching method.
type fakeApplicationRepo struct {
	mu     sync.Mutex
	nextID uint
	apps   map[uint]*models.Application

	createErr error
	getErr    error
	listErr   error
	updateErr error
	noteErr   error
	logErr    error
	deleteErr error
	statsErr  error
	countErr  error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		nextID: 1,
		apps:   make(map[uint]*models.Application),
	}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	app.ID = r.nextID
	r.nextID++
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	r.apps[app.ID] = app
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id uint) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	app, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return app, nil
}

func (r *fakeApplicationRepo) List(_ context.Context, filter repositories.ListFilter) ([]*models.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var out []*models.Application
	for _, app := range r.apps {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !matchesSearch(app, filter.Search) {
			continue
		}
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			out = nil
		} else {
			out = out[filter.Offset:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

// matchesSearch mirrors the store's case-insensitive substring match
// over name, email and both description fields.
func matchesSearch(app *models.Application, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{app.Name, app.Email, app.ProjectDescription, app.TradeDescription} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id uint, status string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return false, r.updateErr
	}
	app, ok := r.apps[id]
	if !ok {
		return false, nil
	}
	app.Status = status
	app.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeApplicationRepo) BulkUpdateStatus(_ context.Context, ids []uint, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return 0, r.updateErr
	}
	var modified int64
	for _, id := range ids {
		if app, ok := r.apps[id]; ok {
			app.Status = status
			app.UpdatedAt = time.Now()
			modified++
		}
	}
	return modified, nil
}

func (r *fakeApplicationRepo) AppendNote(_ context.Context, id uint, author, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.noteErr != nil {
		return r.noteErr
	}
	app, ok := r.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	app.Notes = append(app.Notes, models.ApplicationNote{
		ApplicationID: id,
		Author:        author,
		Body:          body,
		CreatedAt:     time.Now(),
	})
	app.UpdatedAt = time.Now()
	return nil
}

func (r *fakeApplicationRepo) AppendEmailLog(_ context.Context, id uint, template, subject string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.logErr != nil {
		return r.logErr
	}
	app, ok := r.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	app.EmailLog = append(app.EmailLog, models.EmailLogEntry{
		ApplicationID: id,
		Template:      template,
		Subject:       subject,
		SentAt:        time.Now(),
	})
	app.UpdatedAt = time.Now()
	return nil
}

func (r *fakeApplicationRepo) Delete(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	if _, ok := r.apps[id]; !ok {
		return false, nil
	}
	delete(r.apps, id)
	return true, nil
}

func (r *fakeApplicationRepo) Stats(_ context.Context) (*models.StatusCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.statsErr != nil {
		return nil, r.statsErr
	}
	counts := &models.StatusCounts{}
	for _, app := range r.apps {
		switch app.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusReviewing:
			counts.Reviewing++
		case models.StatusAccepted:
			counts.Accepted++
		case models.StatusRejected:
			counts.Rejected++
		case models.StatusCompleted:
			counts.Completed++
		}
		counts.Total++
	}
	return counts, nil
}

func (r *fakeApplicationRepo) CountRecentByEmail(_ context.Context, email string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	var count int64
	for _, app := range r.apps {
		if app.Email == email && app.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

// fakeNotifier records alert calls and returns a fixed outcome.
type fakeNotifier struct {
	mu      sync.Mutex
	alerts  []uint
	digests int
	outcome Outcome
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{outcome: OutcomeSent}
}

func (n *fakeNotifier) SendApplicationAlert(_ context.Context, app *models.Application) Outcome {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, app.ID)
	return n.outcome
}

func (n *fakeNotifier) SendDigest(_ context.Context, _ *models.StatusCounts) Outcome {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.digests++
	return n.outcome
}

// fakeMailer records sends; per-channel error fields simulate failures.
type fakeMailer struct {
	mu            sync.Mutex
	enabled       bool
	adminAlerts   []uint
	confirmations []uint
	customSends   []string

	adminErr        error
	confirmationErr error
	customErr       error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{enabled: true}
}

func (m *fakeMailer) Enabled() bool {
	return m.enabled
}

func (m *fakeMailer) SendAdminAlert(app *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.adminErr != nil {
		return m.adminErr
	}
	m.adminAlerts = append(m.adminAlerts, app.ID)
	return nil
}

func (m *fakeMailer) SendConfirmation(app *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.confirmationErr != nil {
		return m.confirmationErr
	}
	m.confirmations = append(m.confirmations, app.ID)
	return nil
}

func (m *fakeMailer) SendCustom(_ *models.Application, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.customErr != nil {
		return m.customErr
	}
	m.customSends = append(m.customSends, subject)
	return nil
}
