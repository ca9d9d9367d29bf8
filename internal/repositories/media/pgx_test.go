package media

import (
	"context"
	"errors"
	"testing"
	"time"

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

func sampleItem() domain.MediaItem {
	return domain.MediaItem{
		TargetUsername: "nasa",
		RemoteID:       "3300",
		Kind:           domain.MediaKindPhoto,
		Source:         domain.SourcePosts,
		CapturedAt:     time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
		LocalPath:      "nasa/nasa_20250201T120000Z_3300.jpg",
		SizeBytes:      2048,
		DownloadedAt:   time.Now().UTC(),
	}
}

func TestPgx_CreateInsertsOnce(t *testing.T) {
	repo, mock := newRepo(t)
	item := sampleItem()

	mock.ExpectExec(`INSERT INTO media_items (.+) ON CONFLICT \(target_username, remote_id\) DO NOTHING`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO media_items`).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	created, err := repo.Create(context.Background(), item)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(context.Background(), item)
	require.NoError(t, err)
	assert.False(t, created, "second insert of the same remote id is a no-op")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgx_CreateError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO media_items`).WillReturnError(errors.New("connection lost"))

	_, err := repo.Create(context.Background(), sampleItem())
	assert.ErrorContains(t, err, "connection lost")
}

func TestPgx_KnownIDs(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT remote_id FROM media_items WHERE target_username = \$1`).
		WithArgs("nasa").
		WillReturnRows(mock.NewRows([]string{"remote_id"}).AddRow("1").AddRow("2"))

	known, err := repo.KnownIDs(context.Background(), "nasa")
	require.NoError(t, err)
	assert.Len(t, known, 2)
	assert.Contains(t, known, "1")
}

func TestPgx_CountByUsername(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM media_items`).
		WithArgs("nasa").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByUsername(context.Background(), "nasa")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestPgx_ListDownloadedBefore(t *testing.T) {
	repo, mock := newRepo(t)
	cutoff := time.Now().UTC()
	item := sampleItem()

	mock.ExpectQuery(`SELECT (.+) FROM media_items WHERE downloaded_at < \$1 AND local_path IS NOT NULL`).
		WithArgs(cutoff).
		WillReturnRows(mock.NewRows([]string{
			"id", "target_username", "remote_id", "kind", "source", "captured_at", "local_path", "size_bytes", "downloaded_at",
		}).AddRow(int64(11), item.TargetUsername, item.RemoteID, "photo", "posts", item.CapturedAt, &item.LocalPath, item.SizeBytes, item.DownloadedAt))

	items, err := repo.ListDownloadedBefore(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(11), items[0].ID)
	assert.Equal(t, item.LocalPath, items[0].LocalPath)
	assert.Equal(t, domain.MediaKindPhoto, items[0].Kind)
}

func TestPgx_ClearLocalPath(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE media_items SET local_path = \$1 WHERE id = \$2`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE media_items`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.ClearLocalPath(context.Background(), 11))
	assert.ErrorIs(t, repo.ClearLocalPath(context.Background(), 12), ErrNotFound)
}
