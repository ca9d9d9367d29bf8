package syncerimpl

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/downloader"
	"github.com/orgball2608/insta-profile-sync/pkg/errors"
	"github.com/orgball2608/insta-profile-sync/pkg/formatter"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

func (s *SyncerImpl) Sync(ctx context.Context, visibility domain.Visibility) (domain.RunReport, error) {
	report := domain.RunReport{StartedAt: s.Clock.Now()}
	s.Limiter.Reset()

	targets, err := s.TargetRepo.List(ctx, visibility)
	if err != nil {
		report.FinishedAt = s.Clock.Now()
		return report, errors.Classify(fmt.Errorf("failed to load targets: %w", err), errors.KindStorage)
	}

	if len(targets) == 0 {
		s.Logger.Info("No targets to sync", "visibility", visibility.String())
		report.FinishedAt = s.Clock.Now()
		return report, nil
	}

	s.Logger.Info("Starting sync",
		"targets", len(targets),
		"usernames", lo.Map(targets, func(t domain.Target, _ int) string { return t.Username }),
	)

	runs := make([]domain.SyncRun, len(targets))

	var g errgroup.Group
	g.SetLimit(s.Config.Sync.TargetConcurrency)
	for i, t := range targets {
		g.Go(func() error {
			runs[i] = s.SyncTarget(ctx, t)
			return nil
		})
	}
	_ = g.Wait()

	report.Runs = runs
	report.FinishedAt = s.Clock.Now()

	succeeded, partial, failed := report.Counts()
	s.Logger.Info("Sync finished",
		"succeeded", succeeded,
		"partial", partial,
		"failed", failed,
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)

	if err := s.Notifier.NotifyReport(context.WithoutCancel(ctx), report); err != nil {
		s.Logger.Warn("Failed to send sync summary", "error", err)
	}

	return report, ctx.Err()
}

// SyncTarget runs one reconciliation pass for a target. The returned run
// is the one that was recorded, or the one that would have been when
// recording itself failed.
func (s *SyncerImpl) SyncTarget(ctx context.Context, t domain.Target) domain.SyncRun {
	unlock := s.lock(t.Username)
	defer unlock()

	log := s.Logger.With("target", t.Username)
	run := domain.SyncRun{
		ID:             uuid.New(),
		TargetUsername: t.Username,
		StartedAt:      s.Clock.Now(),
	}

	if n, err := s.Files.SweepTemp(t.Username); err != nil {
		log.Warn("Failed to sweep partial files", "error", err)
	} else if n > 0 {
		log.Info("Removed partial files from an earlier run", "count", n)
	}

	plan, err := s.Reconciler.Plan(ctx, t)
	if err != nil {
		return s.abort(ctx, run, err)
	}
	run.ItemsPlanned = len(plan.Items)
	if plan.Denied != nil && len(plan.Items) == 0 {
		return s.abort(ctx, run, plan.Denied)
	}
	log.Info("Plan ready", "items", len(plan.Items), "complete", plan.Complete)

	res, err := s.Downloader.Execute(ctx, plan)
	if err != nil {
		return s.abort(ctx, run, err)
	}

	run.ItemsFetched = len(res.Items)
	run.ItemsFailed = res.Failed
	if plan.Denied != nil && len(res.Items) == 0 {
		return s.abort(ctx, run, plan.Denied)
	}

	run.Outcome = outcomeOf(res)
	cause := causeOf(res)
	if plan.Denied != nil {
		run.Outcome = domain.OutcomeFailed
		cause = plan.Denied
	}
	if cause != nil {
		run.ErrorKind = string(errors.KindOf(cause))
		run.ErrorMessage = cause.Error()
	}
	finished := s.Clock.Now()
	run.FinishedAt = &finished

	result := domain.SyncResult{
		Target:       t,
		Profile:      plan.Profile,
		Committed:    res.Items,
		Contiguous:   res.Contiguous,
		PassComplete: plan.Complete && res.Processed,
		Run:          run,
	}

	if err := s.Committer.Commit(ctx, result); err != nil {
		log.Error("Commit failed, nothing recorded for this run", "error", err)
		run.ItemsFetched = 0
		return s.abort(ctx, run, err)
	}

	log.Info("Target synced",
		"outcome", run.Outcome,
		"fetched", run.ItemsFetched,
		"failed", run.ItemsFailed,
		"size", formatter.FormatBytes(lo.SumBy(res.Items, func(m domain.MediaItem) int64 { return m.SizeBytes })),
	)
	s.alert(ctx, run)
	return run
}

// abort records a run that has nothing to commit.
func (s *SyncerImpl) abort(ctx context.Context, run domain.SyncRun, err error) domain.SyncRun {
	kind := errors.KindOf(err)
	if kind == errors.KindRateLimited {
		s.Limiter.Throttle()
	}

	finished := s.Clock.Now()
	run.FinishedAt = &finished
	run.Outcome = outcomeOfKind(kind)
	run.ErrorKind = string(kind)
	run.ErrorMessage = err.Error()

	log := s.Logger.With("target", run.TargetUsername)
	log.Warn("Target not synced", "outcome", run.Outcome, "kind", kind, "error", err)

	if recErr := s.Committer.RecordRun(ctx, run); recErr != nil {
		log.Error("Failed to record sync run", "error", recErr)
	}

	s.alert(ctx, run)
	return run
}

func (s *SyncerImpl) alert(ctx context.Context, run domain.SyncRun) {
	if run.ErrorKind != string(errors.KindUnauthorized) {
		return
	}
	if err := s.Notifier.NotifyUnauthorized(context.WithoutCancel(ctx), run); err != nil {
		s.Logger.Warn("Failed to send alert", "target", run.TargetUsername, "error", err)
	}
}

// outcomeOfKind maps a failure that left nothing to commit.
func outcomeOfKind(kind errors.Kind) domain.Outcome {
	switch kind {
	case errors.KindRateLimited, errors.KindCanceled:
		return domain.OutcomePartial
	default:
		return domain.OutcomeFailed
	}
}

func outcomeOf(res *downloader.Result) domain.Outcome {
	if res.Err == nil {
		if res.Failed == 0 {
			return domain.OutcomeSuccess
		}
		return domain.OutcomePartial
	}

	switch errors.KindOf(res.Err) {
	case errors.KindUnauthorized, errors.KindStorage:
		return domain.OutcomeFailed
	case errors.KindRateLimited, errors.KindCanceled:
		return domain.OutcomePartial
	}

	if len(res.Items) == 0 {
		return domain.OutcomeFailed
	}
	return domain.OutcomePartial
}

func causeOf(res *downloader.Result) error {
	if res.Err != nil {
		return res.Err
	}
	if res.Failed > 0 {
		return errors.Classify(fmt.Errorf("%d items are no longer available", res.Failed), errors.KindNotFound)
	}
	return nil
}
