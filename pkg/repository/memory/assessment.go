package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[model.AssessmentID]*model.Assessment
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[model.AssessmentID]*model.Assessment),
	}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[assessment.ID()]; exists {
		return goerr.New("assessment already exists", goerr.V(model.AssessmentKey, assessment.ID()))
	}

	r.assessments[assessment.ID()] = assessment.Clone()
	return nil
}

func (r *assessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrAssessmentNotFound, "assessment not found", goerr.V(model.AssessmentKey, id))
	}

	// Return a copy to prevent external modification
	return assessment.Clone(), nil
}

func (r *assessmentRepository) Update(ctx context.Context, id model.AssessmentID, fn func(*model.Assessment) error) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrAssessmentNotFound, "assessment not found", goerr.V(model.AssessmentKey, id))
	}

	working := existing.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	r.assessments[id] = working
	return working.Clone(), nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id model.AssessmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[id]; !exists {
		return goerr.Wrap(model.ErrAssessmentNotFound, "assessment not found", goerr.V(model.AssessmentKey, id))
	}

	delete(r.assessments, id)
	return nil
}

func (r *assessmentRepository) DeleteIdle(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int
	for id, assessment := range r.assessments {
		if assessment.UpdatedAt().Before(cutoff) {
			delete(r.assessments, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *assessmentRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assessments), nil
}
