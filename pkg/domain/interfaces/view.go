package interfaces

import (
	"context"

	"github.com/secmon-lab/tierscope/pkg/domain/model"
)

// View is the presentation collaborator of an assessment. ShowStep is called
// whenever an input step becomes the sole active step; ShowResult receives
// the tier and its content in one call once the results step is reached.
type View interface {
	ShowStep(ctx context.Context, snapshot *model.AssessmentSnapshot) error
	ShowResult(ctx context.Context, snapshot *model.AssessmentSnapshot) error
}
