package syncerimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-profile-sync/internal/repositories/media"
	"github.com/orgball2608/insta-profile-sync/pkg/errors"
)

// Clean clears the local path before deleting the file. A crash in between
// leaves an orphaned file, never a row pointing at missing bytes.
func (s *SyncerImpl) Clean(ctx context.Context, days int) (int, error) {
	if days <= 0 {
		return 0, fmt.Errorf("cleanup age must be positive, got %d days", days)
	}

	before := s.Clock.Now().AddDate(0, 0, -days)
	items, err := s.MediaRepo.ListDownloadedBefore(ctx, before)
	if err != nil {
		return 0, errors.Classify(fmt.Errorf("failed to list old media: %w", err), errors.KindStorage)
	}

	s.Logger.Info("Starting media cleanup", "before", before, "candidates", len(items))

	removed := 0
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		if err := s.MediaRepo.ClearLocalPath(ctx, item.ID); err != nil {
			if errors.Is(err, media.ErrNotFound) {
				continue
			}
			return removed, errors.Classify(fmt.Errorf("failed to clear local path of %s: %w", item.RemoteID, err), errors.KindStorage)
		}

		if err := s.Files.Remove(item.LocalPath); err != nil {
			s.Logger.Warn("Failed to delete media file", "path", item.LocalPath, "error", err)
			continue
		}
		removed++
	}

	s.Logger.Info("Media cleanup completed", "files_removed", removed)
	return removed, nil
}
