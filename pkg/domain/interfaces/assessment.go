package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/tierscope/pkg/domain/model"
)

type AssessmentRepository interface {
	// Create stores a new assessment. The ID must not exist yet.
	Create(ctx context.Context, assessment *model.Assessment) error

	// Get retrieves a copy of an assessment by ID
	Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error)

	// Update applies fn to a copy of the stored assessment and saves it only
	// when fn succeeds. Updates of the same repository are serialized.
	Update(ctx context.Context, id model.AssessmentID, fn func(*model.Assessment) error) (*model.Assessment, error)

	// Delete deletes an assessment by ID
	Delete(ctx context.Context, id model.AssessmentID) error

	// DeleteIdle deletes assessments not updated since cutoff and returns
	// how many were removed
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)

	// Count returns the number of stored assessments
	Count(ctx context.Context) (int, error)
}
