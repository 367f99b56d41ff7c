package model

import "github.com/m-mizutani/goerr/v2"

// Assessment errors
var (
	ErrInvalidTransition  = goerr.New("invalid transition")
	ErrMissingAnswer      = goerr.New("required answer is missing")
	ErrUnknownAnswer      = goerr.New("answer is not a recognized value")
	ErrAssessmentNotFound = goerr.New("assessment not found")
	ErrInvalidCatalog     = goerr.New("invalid content catalog")
	ErrUnknownTier        = goerr.New("unknown tier")
)

// Context keys for error values
const (
	StepKey       = "step"
	ActiveStepKey = "active_step"
	OperationKey  = "operation"
	ValueKey      = "value"
	TierKey       = "tier"
	AssessmentKey = "assessment_id"
)
