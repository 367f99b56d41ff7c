package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/interfaces"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
	"github.com/secmon-lab/tierscope/pkg/utils/logging"
)

type AssessmentUseCase struct {
	repo    interfaces.Repository
	catalog *model.ContentCatalog
	view    interfaces.View
	delay   Delay
	strict  bool
}

func NewAssessmentUseCase(repo interfaces.Repository, catalog *model.ContentCatalog, view interfaces.View, delay Delay, strict bool) *AssessmentUseCase {
	if delay == nil {
		delay = NoDelay
	}
	return &AssessmentUseCase{
		repo:    repo,
		catalog: catalog,
		view:    view,
		delay:   delay,
		strict:  strict,
	}
}

// Start creates a new assessment at the first step
func (uc *AssessmentUseCase) Start(ctx context.Context) (*model.AssessmentSnapshot, error) {
	assessment := model.NewAssessment(uc.catalog, model.WithStrictValidation(uc.strict))
	if err := uc.repo.Assessment().Create(ctx, assessment); err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment")
	}

	logging.From(ctx).Info("assessment started", "assessment_id", assessment.ID(), "strict", uc.strict)

	snapshot := assessment.Snapshot()
	if err := uc.render(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Get returns the current state of an assessment
func (uc *AssessmentUseCase) Get(ctx context.Context, id model.AssessmentID) (*model.AssessmentSnapshot, error) {
	assessment, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment")
	}
	return assessment.Snapshot(), nil
}

// SelectAnswer records the answer of a single-answer step and advances
func (uc *AssessmentUseCase) SelectAnswer(ctx context.Context, id model.AssessmentID, step types.Step, value string) (*model.AssessmentSnapshot, error) {
	return uc.advance(ctx, id, "select", func(a *model.Assessment) error {
		return a.SelectSingleAnswer(step, value)
	})
}

// RecordInfrastructure records the infrastructure flags of step 3 and advances
func (uc *AssessmentUseCase) RecordInfrastructure(ctx context.Context, id model.AssessmentID, flags model.InfrastructureFlags) (*model.AssessmentSnapshot, error) {
	return uc.advance(ctx, id, "infrastructure", func(a *model.Assessment) error {
		return a.RecordInfrastructureFlags(flags)
	})
}

// GoBack returns to the previous step. At the first step nothing changes.
func (uc *AssessmentUseCase) GoBack(ctx context.Context, id model.AssessmentID) (*model.AssessmentSnapshot, error) {
	var moved bool
	updated, err := uc.repo.Assessment().Update(ctx, id, func(a *model.Assessment) error {
		moved = a.GoBack()
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to go back", goerr.V(model.AssessmentKey, id))
	}

	snapshot := updated.Snapshot()
	if !moved {
		return snapshot, nil
	}
	if err := uc.render(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Restart discards all answers of an assessment
func (uc *AssessmentUseCase) Restart(ctx context.Context, id model.AssessmentID) (*model.AssessmentSnapshot, error) {
	updated, err := uc.repo.Assessment().Update(ctx, id, func(a *model.Assessment) error {
		a.Restart()
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to restart assessment", goerr.V(model.AssessmentKey, id))
	}

	logging.From(ctx).Info("assessment restarted", "assessment_id", id)

	snapshot := updated.Snapshot()
	if err := uc.render(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Delete discards an assessment
func (uc *AssessmentUseCase) Delete(ctx context.Context, id model.AssessmentID) error {
	if err := uc.repo.Assessment().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V(model.AssessmentKey, id))
	}
	return nil
}

func (uc *AssessmentUseCase) advance(ctx context.Context, id model.AssessmentID, op string, fn func(*model.Assessment) error) (*model.AssessmentSnapshot, error) {
	updated, err := uc.repo.Assessment().Update(ctx, id, fn)
	if err != nil {
		return nil, goerr.Wrap(err, "transition rejected",
			goerr.V(model.AssessmentKey, id), goerr.V(model.OperationKey, op))
	}

	snapshot := updated.Snapshot()
	if snapshot.Result != nil {
		logging.From(ctx).Info("assessment completed",
			"assessment_id", id,
			"tier", snapshot.Result.Tier,
			"score", snapshot.Result.Score.Total,
		)
	}

	// The transition is already stored; an interrupted pause only skips rendering
	if err := uc.delay(ctx); err != nil {
		logging.From(ctx).Debug("pause interrupted, next step not rendered",
			"assessment_id", id, "error", err.Error())
		return snapshot, nil
	}
	if err := uc.render(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// render hands the snapshot to the view. The results step is delivered
// through ShowResult only, with tier and content together.
func (uc *AssessmentUseCase) render(ctx context.Context, snapshot *model.AssessmentSnapshot) error {
	if uc.view == nil {
		return nil
	}

	if snapshot.Step.IsTerminal() && snapshot.Result != nil {
		if err := uc.view.ShowResult(ctx, snapshot); err != nil {
			return goerr.Wrap(err, "failed to show result", goerr.V(model.AssessmentKey, snapshot.ID))
		}
		return nil
	}

	if err := uc.view.ShowStep(ctx, snapshot); err != nil {
		return goerr.Wrap(err, "failed to show step", goerr.V(model.AssessmentKey, snapshot.ID), goerr.V(model.StepKey, snapshot.Step))
	}
	return nil
}
