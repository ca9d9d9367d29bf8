package syncrun

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/repositories"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/orgball2608/insta-profile-sync/pkg/pgx"

	sq "github.com/Masterminds/squirrel"
)

var runColumns = []string{
	"id", "target_username", "started_at", "finished_at", "outcome",
	"items_planned", "items_fetched", "items_failed", "error_kind", "error_message",
}

type Pgx struct {
	q      pgx.Querier
	logger logger.Logger
}

func NewPgx(db pgx.DB, logger logger.Logger) *Pgx {
	return &Pgx{
		q:      db,
		logger: logger.WithComponent("SyncRunRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) WithTx(q pgx.Querier) Repository {
	return &Pgx{q: q, logger: p.logger}
}

// Create records a run. Runs are never updated afterwards.
func (p *Pgx) Create(ctx context.Context, run domain.SyncRun) error {
	query, args, err := repositories.SqBuilder.
		Insert("sync_runs").
		Columns(runColumns...).
		Values(run.ID, run.TargetUsername, run.StartedAt, run.FinishedAt, string(run.Outcome),
			run.ItemsPlanned, run.ItemsFetched, run.ItemsFailed, run.ErrorKind, run.ErrorMessage).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}
	return nil
}

func (p *Pgx) LatestByUsername(ctx context.Context, username string) (*domain.SyncRun, error) {
	runs, err := p.ListByUsername(ctx, username, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}
	return &runs[0], nil
}

// ListByUsername returns the newest runs first.
func (p *Pgx) ListByUsername(ctx context.Context, username string, limit int) ([]domain.SyncRun, error) {
	builder := repositories.SqBuilder.
		Select(runColumns...).
		From("sync_runs").
		Where(sq.Eq{"target_username": username}).
		OrderBy("started_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun
	for rows.Next() {
		var (
			run     domain.SyncRun
			outcome string
		)
		if err := rows.Scan(&run.ID, &run.TargetUsername, &run.StartedAt, &run.FinishedAt, &outcome,
			&run.ItemsPlanned, &run.ItemsFetched, &run.ItemsFailed, &run.ErrorKind, &run.ErrorMessage); err != nil {
			return nil, err
		}
		run.Outcome = domain.Outcome(outcome)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
