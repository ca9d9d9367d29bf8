package media

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

type Pgx struct {
	q      pgx.Querier
	logger logger.Logger
}

func NewPgx(db pgx.DB, logger logger.Logger) *Pgx {
	return &Pgx{
		q:      db,
		logger: logger.WithComponent("MediaRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) WithTx(q pgx.Querier) Repository {
	return &Pgx{q: q, logger: p.logger}
}

func (p *Pgx) Create(ctx context.Context, item domain.MediaItem) (bool, error) {
	query, args, err := repositories.SqBuilder.
		Insert("media_items").
		Columns("target_username", "remote_id", "kind", "source", "captured_at", "local_path", "size_bytes", "downloaded_at").
		Values(item.TargetUsername, item.RemoteID, string(item.Kind), string(item.Source),
			item.CapturedAt, nullString(item.LocalPath), item.SizeBytes, item.DownloadedAt).
		Suffix("ON CONFLICT (target_username, remote_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	result, err := p.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to insert media item %s: %w", item.RemoteID, err)
	}

	if result.RowsAffected() == 0 {
		p.logger.Debug("Media item already recorded", "username", item.TargetUsername, "remote_id", item.RemoteID)
		return false, nil
	}
	return true, nil
}

func (p *Pgx) KnownIDs(ctx context.Context, username string) (map[string]struct{}, error) {
	query, args, err := repositories.SqBuilder.
		Select("remote_id").
		From("media_items").
		Where(sq.Eq{"target_username": username}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query known media: %w", err)
	}
	defer rows.Close()

	known := make(map[string]struct{})
	for rows.Next() {
		var remoteID string
		if err := rows.Scan(&remoteID); err != nil {
			return nil, err
		}
		known[remoteID] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return known, nil
}

func (p *Pgx) CountByUsername(ctx context.Context, username string) (int, error) {
	query, args, err := repositories.SqBuilder.
		Select("COUNT(*)").
		From("media_items").
		Where(sq.Eq{"target_username": username}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var count int
	if err := p.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count media: %w", err)
	}
	return count, nil
}

func (p *Pgx) ListDownloadedBefore(ctx context.Context, before time.Time) ([]domain.MediaItem, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "target_username", "remote_id", "kind", "source", "captured_at", "local_path", "size_bytes", "downloaded_at").
		From("media_items").
		Where(sq.Lt{"downloaded_at": before}).
		Where(sq.NotEq{"local_path": nil}).
		OrderBy("downloaded_at ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list old media: %w", err)
	}
	defer rows.Close()

	var items []domain.MediaItem
	for rows.Next() {
		var (
			item         domain.MediaItem
			kind, source string
			localPath    *string
		)
		if err := rows.Scan(&item.ID, &item.TargetUsername, &item.RemoteID, &kind, &source,
			&item.CapturedAt, &localPath, &item.SizeBytes, &item.DownloadedAt); err != nil {
			return nil, err
		}
		item.Kind = domain.MediaKind(kind)
		item.Source = domain.Source(source)
		if localPath != nil {
			item.LocalPath = *localPath
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ClearLocalPath keeps the row, so the item stays deduplicated after its
// file is cleaned up.
func (p *Pgx) ClearLocalPath(ctx context.Context, id int64) error {
	query, args, err := repositories.SqBuilder.
		Update("media_items").
		Set("local_path", nil).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to clear local path: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
