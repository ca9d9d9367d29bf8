package rosterimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/syncrun"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/target"
	"github.com/orgball2608/insta-profile-sync/internal/roster"
)

func (r *RosterImpl) Add(ctx context.Context, username string, visibility domain.Visibility) (*domain.Target, error) {
	username = domain.SanitizeUsername(username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if visibility == domain.VisibilityAll {
		return nil, fmt.Errorf("visibility of %s must be public or private", username)
	}

	t := domain.Target{Username: username, Visibility: visibility}
	if err := r.TargetRepo.Create(ctx, t); err != nil {
		if errors.Is(err, target.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: %s", roster.ErrAlreadyTracked, username)
		}
		r.Logger.Error("Failed to create target", "username", username, "error", err)
		return nil, err
	}

	r.Logger.Info("Target added", "username", username, "visibility", visibility.String())
	return &t, nil
}

func (r *RosterImpl) Remove(ctx context.Context, username string) error {
	username = domain.SanitizeUsername(username)
	if username == "" {
		return domain.ValidateUsername(username)
	}

	if err := r.TargetRepo.Delete(ctx, username); err != nil {
		if errors.Is(err, target.ErrNotFound) {
			return fmt.Errorf("%w: %s", roster.ErrNotTracked, username)
		}
		r.Logger.Error("Failed to delete target", "username", username, "error", err)
		return err
	}

	r.Logger.Info("Target removed", "username", username)
	return nil
}

func (r *RosterImpl) List(ctx context.Context, visibility domain.Visibility) ([]domain.TargetSummary, error) {
	targets, err := r.TargetRepo.List(ctx, visibility)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}

	summaries := make([]domain.TargetSummary, 0, len(targets))
	for _, t := range targets {
		count, err := r.MediaRepo.CountByUsername(ctx, t.Username)
		if err != nil {
			return nil, err
		}

		last, err := r.SyncRunRepo.LatestByUsername(ctx, t.Username)
		if err != nil && !errors.Is(err, syncrun.ErrNotFound) {
			return nil, err
		}

		summaries = append(summaries, domain.TargetSummary{
			Target:     t,
			MediaCount: count,
			LastRun:    last,
		})
	}

	return summaries, nil
}
