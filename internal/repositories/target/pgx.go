package target

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/repositories"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/orgball2608/insta-profile-sync/pkg/pgx"

	sq "github.com/Masterminds/squirrel"
)

var targetColumns = []string{
	"username", "visibility", "full_name", "biography", "external_url",
	"followers", "followees", "post_count", "last_synced_at", "last_checkpoint",
	"created_at", "updated_at",
}

type Pgx struct {
	q      pgx.Querier
	logger logger.Logger
}

func NewPgx(db pgx.DB, logger logger.Logger) *Pgx {
	return &Pgx{
		q:      db,
		logger: logger.WithComponent("TargetRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) WithTx(q pgx.Querier) Repository {
	return &Pgx{q: q, logger: p.logger}
}

func (p *Pgx) Create(ctx context.Context, target domain.Target) error {
	now := time.Now().UTC()
	query, args, err := repositories.SqBuilder.
		Insert("targets").
		Columns("username", "visibility", "created_at", "updated_at").
		Values(target.Username, string(target.Visibility), now, now).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err = p.q.Exec(ctx, query, args...); err != nil {
		if pgx.IsUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert target: %w", err)
	}
	return nil
}

// Delete removes the target. Its media rows and sync runs go with it
// through the foreign keys.
func (p *Pgx) Delete(ctx context.Context, username string) error {
	query, args, err := repositories.SqBuilder.
		Delete("targets").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete target: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Pgx) GetByUsername(ctx context.Context, username string) (*domain.Target, error) {
	return p.get(ctx, repositories.SqBuilder.
		Select(targetColumns...).
		From("targets").
		Where(sq.Eq{"username": username}))
}

func (p *Pgx) GetForUpdate(ctx context.Context, username string) (*domain.Target, error) {
	return p.get(ctx, repositories.SqBuilder.
		Select(targetColumns...).
		From("targets").
		Where(sq.Eq{"username": username}).
		Suffix("FOR UPDATE"))
}

func (p *Pgx) get(ctx context.Context, builder sq.SelectBuilder) (*domain.Target, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	target, err := scanTarget(p.q.QueryRow(ctx, query, args...))
	if err != nil {
		if pgx.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get target: %w", err)
	}
	return target, nil
}

// List returns targets ordered by username. VisibilityAll returns every target.
func (p *Pgx) List(ctx context.Context, visibility domain.Visibility) ([]domain.Target, error) {
	builder := repositories.SqBuilder.
		Select(targetColumns...).
		From("targets").
		OrderBy("username ASC")
	if visibility != domain.VisibilityAll {
		builder = builder.Where(sq.Eq{"visibility": string(visibility)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var targets []domain.Target
	for rows.Next() {
		target, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, *target)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return targets, nil
}

func (p *Pgx) UpdateSyncState(ctx context.Context, state SyncState) error {
	checkpoint, err := state.Checkpoint.Encode()
	if err != nil {
		return err
	}

	builder := repositories.SqBuilder.
		Update("targets").
		Set("last_synced_at", state.SyncedAt).
		Set("last_checkpoint", nullString(checkpoint)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"username": state.Username})

	if profile := state.Profile; profile != nil {
		builder = builder.
			Set("visibility", string(profile.Visibility())).
			Set("full_name", profile.FullName).
			Set("biography", profile.Biography).
			Set("external_url", profile.ExternalURL).
			Set("followers", profile.Followers).
			Set("followees", profile.Followees).
			Set("post_count", profile.PostCount)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update sync state: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTarget(row scanner) (*domain.Target, error) {
	var (
		target     domain.Target
		visibility string
		checkpoint *string
	)

	err := row.Scan(
		&target.Username, &visibility,
		&target.Profile.FullName, &target.Profile.Biography, &target.Profile.ExternalURL,
		&target.Profile.Followers, &target.Profile.Followees, &target.Profile.PostCount,
		&target.LastSyncedAt, &checkpoint,
		&target.CreatedAt, &target.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	target.Visibility = domain.Visibility(visibility)
	target.Profile.Username = target.Username
	target.Profile.IsPrivate = target.Visibility == domain.VisibilityPrivate

	if checkpoint != nil {
		target.LastCheckpoint, err = domain.DecodeCheckpoint(*checkpoint)
		if err != nil {
			return nil, err
		}
	}

	return &target, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
