package usecase

import (
	"github.com/secmon-lab/tierscope/pkg/domain/interfaces"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
)

type UseCases struct {
	repo       interfaces.Repository
	catalog    *model.ContentCatalog
	view       interfaces.View
	delay      Delay
	strict     bool
	Assessment *AssessmentUseCase
	Content    *ContentUseCase
}

type Option func(*UseCases)

// WithContentCatalog replaces the built-in tier content
func WithContentCatalog(catalog *model.ContentCatalog) Option {
	return func(uc *UseCases) {
		uc.catalog = catalog
	}
}

// WithView sets the presentation collaborator notified on every transition
func WithView(view interfaces.View) Option {
	return func(uc *UseCases) {
		uc.view = view
	}
}

// WithDelay sets the pause applied before an auto-advanced step is shown
func WithDelay(delay Delay) Option {
	return func(uc *UseCases) {
		uc.delay = delay
	}
}

// WithStrictValidation makes new assessments reject unset or unrecognized
// answers before scoring
func WithStrictValidation(strict bool) Option {
	return func(uc *UseCases) {
		uc.strict = strict
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		catalog: model.DefaultContentCatalog(),
		delay:   NoDelay,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = NewAssessmentUseCase(repo, uc.catalog, uc.view, uc.delay, uc.strict)
	uc.Content = NewContentUseCase(uc.catalog)

	return uc
}
