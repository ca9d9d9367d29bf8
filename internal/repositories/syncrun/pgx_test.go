package syncrun

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*Pgx, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPgx(mock, logger.NewNop()), mock
}

func TestPgx_Create(t *testing.T) {
	repo, mock := newRepo(t)
	finished := time.Now().UTC()
	run := domain.SyncRun{
		ID:             uuid.New(),
		TargetUsername: "nasa",
		StartedAt:      finished.Add(-time.Minute),
		FinishedAt:     &finished,
		Outcome:        domain.OutcomePartial,
		ItemsPlanned:   10,
		ItemsFetched:   4,
		ItemsFailed:    1,
		ErrorKind:      "transient",
		ErrorMessage:   "transient network error",
	}

	mock.ExpectExec("INSERT INTO sync_runs").
		WithArgs(run.ID, "nasa", run.StartedAt, run.FinishedAt, "partial", 10, 4, 1, "transient", "transient network error").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgx_LatestByUsername(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM sync_runs WHERE target_username = \$1 ORDER BY started_at DESC LIMIT 1`).
		WithArgs("nasa").
		WillReturnRows(mock.NewRows(runColumns).
			AddRow(id, "nasa", now, &now, "success", 3, 3, 0, "", ""))

	run, err := repo.LatestByUsername(context.Background(), "nasa")
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, domain.OutcomeSuccess, run.Outcome)
	assert.Equal(t, 3, run.ItemsFetched)
}

func TestPgx_LatestByUsernameNone(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM sync_runs`).
		WithArgs("nasa").
		WillReturnRows(mock.NewRows(runColumns))

	_, err := repo.LatestByUsername(context.Background(), "nasa")
	assert.ErrorIs(t, err, ErrNotFound)
}
