package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/interfaces"
	"github.com/secmon-lab/tierscope/pkg/utils/logging"
)

// AssessmentExpiryWorker periodically deletes assessments that have not been
// touched for longer than the TTL. Assessments live only in process memory,
// so abandoned questionnaires would otherwise accumulate forever.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type AssessmentExpiryWorker struct {
	repo     interfaces.Repository
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
}

type ExpiryOption func(*AssessmentExpiryWorker)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) ExpiryOption {
	return func(w *AssessmentExpiryWorker) {
		w.now = now
	}
}

// NewAssessmentExpiryWorker creates a worker deleting assessments idle for
// longer than ttl, checking every interval
func NewAssessmentExpiryWorker(repo interfaces.Repository, ttl, interval time.Duration, opts ...ExpiryOption) *AssessmentExpiryWorker {
	w := &AssessmentExpiryWorker{
		repo:     repo,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the background sweep loop without blocking
func (w *AssessmentExpiryWorker) Start(ctx context.Context) error {
	if w.ttl <= 0 || w.interval <= 0 {
		return goerr.New("ttl and interval must be positive",
			goerr.V("ttl", w.ttl), goerr.V("interval", w.interval))
	}

	logging.Default().Info("Assessment expiry worker starting",
		"ttl", w.ttl.String(),
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *AssessmentExpiryWorker) Stop() {
	logging.Default().Info("Assessment expiry worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Assessment expiry worker stopped")
}

func (w *AssessmentExpiryWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil {
				logging.Default().Error("Assessment expiry sweep failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Assessment expiry worker context cancelled")
			return
		}
	}
}

// Sweep runs a single expiry cycle and returns the number of deleted
// assessments
func (w *AssessmentExpiryWorker) Sweep(ctx context.Context) (int, error) {
	cutoff := w.now().UTC().Add(-w.ttl)

	deleted, err := w.repo.Assessment().DeleteIdle(ctx, cutoff)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete idle assessments", goerr.V("cutoff", cutoff))
	}

	if deleted > 0 {
		remaining, err := w.repo.Assessment().Count(ctx)
		if err != nil {
			return deleted, goerr.Wrap(err, "failed to count assessments")
		}
		logging.Default().Info("Expired idle assessments",
			"deleted", deleted,
			"remaining", remaining)
	}

	return deleted, nil
}
