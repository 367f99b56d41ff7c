package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
)

type ContentUseCase struct {
	catalog *model.ContentCatalog
}

func NewContentUseCase(catalog *model.ContentCatalog) *ContentUseCase {
	if catalog == nil {
		catalog = model.DefaultContentCatalog()
	}
	return &ContentUseCase{catalog: catalog}
}

// TierContent returns the content shown for tier
func (uc *ContentUseCase) TierContent(tier types.Tier) (*model.TierContent, error) {
	content, err := uc.catalog.Lookup(tier)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up tier content")
	}
	return &content, nil
}

// AllTierContents returns the content of every tier, lowest first
func (uc *ContentUseCase) AllTierContents() []model.TierContent {
	return uc.catalog.All()
}

// Evaluate scores a complete answer set without running the questionnaire
func (uc *ContentUseCase) Evaluate(answers model.AnswerSet, strict bool) (*model.Result, error) {
	if missing := answers.MissingSteps(); len(missing) > 0 {
		return nil, goerr.Wrap(model.ErrMissingAnswer, "answers are incomplete",
			goerr.V(model.StepKey, missing[0]))
	}
	if strict {
		if err := answers.Validate(); err != nil {
			return nil, goerr.Wrap(err, "answers rejected by strict validation")
		}
	}

	result, err := model.Evaluate(answers, uc.catalog)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to evaluate answers")
	}
	return result, nil
}
