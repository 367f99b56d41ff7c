package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/secmon-lab/tierscope/pkg/domain/interfaces"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
	"github.com/secmon-lab/tierscope/pkg/repository/memory"
)

func runAssessmentRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(nil)
		if err := repo.Assessment().Create(ctx, a); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		got, err := repo.Assessment().Get(ctx, a.ID())
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}
		if got.ID() != a.ID() {
			t.Errorf("expected ID=%s, got %s", a.ID(), got.ID())
		}
		if got.Step() != types.StepEntitySize {
			t.Errorf("expected step 1, got %d", got.Step())
		}
	})

	t.Run("Create rejects duplicate ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(nil)
		if err := repo.Assessment().Create(ctx, a); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}
		if err := repo.Assessment().Create(ctx, a); err == nil {
			t.Error("expected error for duplicate assessment")
		}
	})

	t.Run("Get returns error for non-existent assessment", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Assessment().Get(context.Background(), "missing")
		if !errors.Is(err, model.ErrAssessmentNotFound) {
			t.Errorf("expected ErrAssessmentNotFound, got %v", err)
		}
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(nil)
		if err := repo.Assessment().Create(ctx, a); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		got, err := repo.Assessment().Get(ctx, a.ID())
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}
		if err := got.SelectSingleAnswer(types.StepEntitySize, "large"); err != nil {
			t.Fatalf("failed to select: %v", err)
		}

		again, err := repo.Assessment().Get(ctx, a.ID())
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}
		if again.Step() != types.StepEntitySize {
			t.Errorf("stored assessment was modified through a copy, step=%d", again.Step())
		}
	})

	t.Run("Update saves successful transitions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(nil)
		if err := repo.Assessment().Create(ctx, a); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		updated, err := repo.Assessment().Update(ctx, a.ID(), func(a *model.Assessment) error {
			return a.SelectSingleAnswer(types.StepEntitySize, "medium")
		})
		if err != nil {
			t.Fatalf("failed to update assessment: %v", err)
		}
		if updated.Step() != types.StepServiceSensitivity {
			t.Errorf("expected step 2, got %d", updated.Step())
		}

		got, err := repo.Assessment().Get(ctx, a.ID())
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}
		if got.Answers().EntitySize != types.EntitySizeMedium {
			t.Errorf("expected entity size medium, got %s", got.Answers().EntitySize)
		}
	})

	t.Run("Update discards failed transitions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(nil)
		if err := repo.Assessment().Create(ctx, a); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		_, err := repo.Assessment().Update(ctx, a.ID(), func(a *model.Assessment) error {
			a.Restart()
			return a.RecordInfrastructureFlags(model.InfrastructureFlags{Cloud: true})
		})
		if !errors.Is(err, model.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}

		got, err := repo.Assessment().Get(ctx, a.ID())
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}
		if !got.UpdatedAt().Equal(a.UpdatedAt()) {
			t.Errorf("failed update must not be stored")
		}
	})

	t.Run("Update returns error for non-existent assessment", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Assessment().Update(context.Background(), "missing", func(a *model.Assessment) error { return nil })
		if !errors.Is(err, model.ErrAssessmentNotFound) {
			t.Errorf("expected ErrAssessmentNotFound, got %v", err)
		}
	})

	t.Run("Concurrent updates of separate assessments do not interfere", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ids := make([]model.AssessmentID, 20)
		for i := range ids {
			a := model.NewAssessment(nil)
			if err := repo.Assessment().Create(ctx, a); err != nil {
				t.Fatalf("failed to create assessment: %v", err)
			}
			ids[i] = a.ID()
		}

		var wg sync.WaitGroup
		for i, id := range ids {
			size := types.AllEntitySizes()[i%3]
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = repo.Assessment().Update(ctx, id, func(a *model.Assessment) error {
					return a.SelectSingleAnswer(types.StepEntitySize, size.String())
				})
			}()
		}
		wg.Wait()

		for i, id := range ids {
			got, err := repo.Assessment().Get(ctx, id)
			if err != nil {
				t.Fatalf("failed to get assessment: %v", err)
			}
			if want := types.AllEntitySizes()[i%3]; got.Answers().EntitySize != want {
				t.Errorf("expected %s, got %s", want, got.Answers().EntitySize)
			}
		}
	})

	t.Run("Delete removes assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(nil)
		if err := repo.Assessment().Create(ctx, a); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}
		if n, _ := repo.Assessment().Count(ctx); n != 1 {
			t.Errorf("expected 1 assessment, got %d", n)
		}

		if err := repo.Assessment().Delete(ctx, a.ID()); err != nil {
			t.Fatalf("failed to delete assessment: %v", err)
		}
		if _, err := repo.Assessment().Get(ctx, a.ID()); !errors.Is(err, model.ErrAssessmentNotFound) {
			t.Errorf("expected ErrAssessmentNotFound after delete, got %v", err)
		}
		if err := repo.Assessment().Delete(ctx, a.ID()); !errors.Is(err, model.ErrAssessmentNotFound) {
			t.Errorf("expected ErrAssessmentNotFound on second delete, got %v", err)
		}
		if n, _ := repo.Assessment().Count(ctx); n != 0 {
			t.Errorf("expected 0 assessments, got %d", n)
		}
	})

	t.Run("DeleteIdle removes only stale assessments", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stale := model.NewAssessment(nil)
		if err := repo.Assessment().Create(ctx, stale); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		time.Sleep(5 * time.Millisecond)
		cutoff := time.Now().UTC()
		time.Sleep(5 * time.Millisecond)

		fresh := model.NewAssessment(nil)
		if err := repo.Assessment().Create(ctx, fresh); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		deleted, err := repo.Assessment().DeleteIdle(ctx, cutoff)
		if err != nil {
			t.Fatalf("failed to delete idle assessments: %v", err)
		}
		if deleted != 1 {
			t.Errorf("expected 1 deleted assessment, got %d", deleted)
		}
		if _, err := repo.Assessment().Get(ctx, stale.ID()); !errors.Is(err, model.ErrAssessmentNotFound) {
			t.Errorf("expected stale assessment to be deleted, got %v", err)
		}
		if _, err := repo.Assessment().Get(ctx, fresh.ID()); err != nil {
			t.Errorf("expected fresh assessment to remain, got %v", err)
		}
	})
}

func TestMemoryAssessmentRepository(t *testing.T) {
	runAssessmentRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}
