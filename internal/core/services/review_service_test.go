package services

import (
	"context"
	"errors"
	"testing"

	"tradelink-backend/internal/adapters/persistence/models"
	"tradelink-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReviewFixture(t *testing.T, seed int) (*ReviewService, *fakeApplicationRepo, *fakeMailer, []uint) {
	t.Helper()
	repo := newFakeApplicationRepo()
	mailer := newFakeMailer()
	svc := NewReviewService(repo, mailer, zap.NewNop())

	ids := make([]uint, 0, seed)
	for i := 0; i < seed; i++ {
		app := &models.Application{
			ProjectType:        "website",
			ProjectDescription: "Portfolio site in exchange for carpentry work.",
			Timeline:           "flexible",
			TradeType:          "services",
			TradeDescription:   "Custom shelving for a home office.",
			EstimatedValue:     1500,
			Name:               "Sam Trader",
			Email:              "sam@example.com",
			Status:             models.StatusPending,
		}
		require.NoError(t, repo.Create(context.Background(), app))
		ids = append(ids, app.ID)
	}
	return svc, repo, mailer, ids
}

func TestUpdateStatus(t *testing.T) {
	svc, repo, _, ids := newReviewFixture(t, 1)

	created := repo.apps[ids[0]].CreatedAt
	require.NoError(t, svc.UpdateStatus(context.Background(), ids[0], models.StatusAccepted))

	app := repo.apps[ids[0]]
	assert.Equal(t, models.StatusAccepted, app.Status)
	assert.True(t, app.UpdatedAt.After(created) || app.UpdatedAt.Equal(created))

	// Any status may follow any other.
	require.NoError(t, svc.UpdateStatus(context.Background(), ids[0], models.StatusPending))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, repo, _, ids := newReviewFixture(t, 1)

	err := svc.UpdateStatus(context.Background(), ids[0], "archived")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, models.StatusPending, repo.apps[ids[0]].Status)
}

func TestUpdateStatusMissingApplication(t *testing.T) {
	svc, _, _, _ := newReviewFixture(t, 0)

	err := svc.UpdateStatus(context.Background(), 42, models.StatusAccepted)
	require.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestBulkUpdateStatusSkipsMissingIDs(t *testing.T) {
	svc, repo, _, ids := newReviewFixture(t, 2)

	modified, err := svc.BulkUpdateStatus(context.Background(), []uint{ids[0], ids[1], 999}, models.StatusReviewing)
	require.NoError(t, err)
	assert.Equal(t, int64(2), modified)
	assert.Equal(t, models.StatusReviewing, repo.apps[ids[0]].Status)
	assert.Equal(t, models.StatusReviewing, repo.apps[ids[1]].Status)
}

func TestBulkUpdateStatusValidatesBeforeStorage(t *testing.T) {
	svc, repo, _, ids := newReviewFixture(t, 1)
	repo.updateErr = errors.New("storage must not be reached")

	_, err := svc.BulkUpdateStatus(context.Background(), []uint{ids[0]}, "bogus")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestAppendNote(t *testing.T) {
	svc, repo, _, ids := newReviewFixture(t, 1)

	require.NoError(t, svc.AppendNote(context.Background(), ids[0], "", "  Looks promising.  "))

	notes := repo.apps[ids[0]].Notes
	require.Len(t, notes, 1)
	assert.Equal(t, "admin", notes[0].Author)
	assert.Equal(t, "Looks promising.", notes[0].Body)
}

func TestAppendNoteRejectsEmptyBody(t *testing.T) {
	svc, _, _, ids := newReviewFixture(t, 1)

	err := svc.AppendNote(context.Background(), ids[0], "admin", "   ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteRemovesApplicationAndHistory(t *testing.T) {
	svc, repo, _, ids := newReviewFixture(t, 1)
	require.NoError(t, repo.AppendNote(context.Background(), ids[0], "admin", "note"))

	require.NoError(t, svc.Delete(context.Background(), ids[0]))

	_, err := svc.Get(context.Background(), ids[0])
	require.ErrorIs(t, err, domain.ErrApplicationNotFound)

	err = svc.Delete(context.Background(), ids[0])
	require.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc, _, _, _ := newReviewFixture(t, 1)

	_, _, _, err := svc.List(context.Background(), ListInput{Status: "archived"})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestListReturnsStats(t *testing.T) {
	svc, repo, _, ids := newReviewFixture(t, 3)
	repo.apps[ids[0]].Status = models.StatusAccepted

	apps, total, stats, err := svc.List(context.Background(), ListInput{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, apps, 3)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.Accepted)
	assert.Equal(t, int64(3), stats.Total)
}

func TestListCombinesStatusAndSearch(t *testing.T) {
	svc, repo, _, ids := newReviewFixture(t, 3)
	repo.apps[ids[0]].Name = "Acme Workshop"
	repo.apps[ids[1]].Email = "orders@acme.example"
	repo.apps[ids[1]].Status = models.StatusAccepted
	repo.apps[ids[2]].ProjectDescription = "Storefront refresh for a florist."

	// Search alone matches across name and email, case-insensitively.
	apps, total, _, err := svc.List(context.Background(), ListInput{Search: "ACME", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Combined with a status filter, only the pending match remains.
	apps, total, _, err = svc.List(context.Background(), ListInput{
		Status: models.StatusPending,
		Search: "acme",
		Limit:  20,
	})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, ids[0], apps[0].ID)

	apps, total, _, err = svc.List(context.Background(), ListInput{Search: "florist", Limit: 20})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, ids[2], apps[0].ID)
}

func TestSendCustomEmail(t *testing.T) {
	svc, repo, mailer, ids := newReviewFixture(t, 1)

	err := svc.SendCustomEmail(context.Background(), ids[0], "", "Next steps", "We would like to proceed.")
	require.NoError(t, err)

	assert.Equal(t, []string{"Next steps"}, mailer.customSends)
	log := repo.apps[ids[0]].EmailLog
	require.Len(t, log, 1)
	assert.Equal(t, TemplateCustom, log[0].Template)
	assert.Equal(t, "Next steps", log[0].Subject)
}

func TestSendCustomEmailRejectsEmptyContent(t *testing.T) {
	svc, _, mailer, ids := newReviewFixture(t, 1)

	err := svc.SendCustomEmail(context.Background(), ids[0], "", "   ", "body")
	require.ErrorIs(t, err, domain.ErrEmptyEmailContent)

	err = svc.SendCustomEmail(context.Background(), ids[0], "", "subject", "")
	require.ErrorIs(t, err, domain.ErrEmptyEmailContent)

	assert.Empty(t, mailer.customSends)
}

func TestSendCustomEmailMissingApplication(t *testing.T) {
	svc, _, _, _ := newReviewFixture(t, 0)

	err := svc.SendCustomEmail(context.Background(), 7, "", "subject", "body")
	require.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestSendCustomEmailWhenMailerDisabled(t *testing.T) {
	svc, _, mailer, ids := newReviewFixture(t, 1)
	mailer.enabled = false

	err := svc.SendCustomEmail(context.Background(), ids[0], "", "subject", "body")
	require.ErrorIs(t, err, domain.ErrEmailDisabled)
}

func TestSendCustomEmailFailureSkipsLog(t *testing.T) {
	svc, repo, mailer, ids := newReviewFixture(t, 1)
	mailer.customErr = errors.New("smtp rejected")

	err := svc.SendCustomEmail(context.Background(), ids[0], "", "subject", "body")
	require.Error(t, err)
	assert.Empty(t, repo.apps[ids[0]].EmailLog)
}
