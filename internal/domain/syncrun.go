package domain

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePartial Outcome = "partial"
	OutcomeFailed  Outcome = "failed"
)

// SyncRun is the write-once record of one reconciliation attempt.
type SyncRun struct {
	ID             uuid.UUID
	TargetUsername string
	StartedAt      time.Time
	FinishedAt     *time.Time
	Outcome        Outcome
	ItemsPlanned   int
	ItemsFetched   int
	ItemsFailed    int
	ErrorKind      string
	ErrorMessage   string
}

// RunReport aggregates the runs of one sync invocation.
type RunReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Runs       []SyncRun
}

func (r RunReport) Counts() (succeeded, partial, failed int) {
	for _, run := range r.Runs {
		switch run.Outcome {
		case OutcomeSuccess:
			succeeded++
		case OutcomePartial:
			partial++
		default:
			failed++
		}
	}
	return succeeded, partial, failed
}

// AllSucceeded drives the exit code of the sync command.
func (r RunReport) AllSucceeded() bool {
	_, partial, failed := r.Counts()
	return partial == 0 && failed == 0
}
