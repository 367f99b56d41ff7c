package model

import (
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
)

// AssessmentID is a UUID-based identifier for Assessment
type AssessmentID string

// NewAssessmentID generates a new UUID v4 AssessmentID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.New().String())
}

// String returns the string representation of AssessmentID
func (id AssessmentID) String() string {
	return string(id)
}

// Assessment is the questionnaire state machine. It owns the answer set and
// the active step; all writes go through the transition methods, which
// either fully apply or leave the state untouched.
//
// An Assessment is not safe for concurrent use.
type Assessment struct {
	id         AssessmentID
	catalog    *ContentCatalog
	strict     bool
	step       types.Step
	answers    AnswerSet
	selections map[types.Step]string
	result     *Result
	createdAt  time.Time
	updatedAt  time.Time
}

// AssessmentOption configures a new Assessment
type AssessmentOption func(*Assessment)

// WithAssessmentID sets the assessment ID instead of generating one
func WithAssessmentID(id AssessmentID) AssessmentOption {
	return func(a *Assessment) {
		a.id = id
	}
}

// WithStrictValidation rejects completion while any categorical answer is
// unset or unrecognized instead of scoring it with the fallback weight
func WithStrictValidation(strict bool) AssessmentOption {
	return func(a *Assessment) {
		a.strict = strict
	}
}

// NewAssessment creates an assessment at the first step with no answers.
// A nil catalog falls back to DefaultContentCatalog.
func NewAssessment(catalog *ContentCatalog, opts ...AssessmentOption) *Assessment {
	if catalog == nil {
		catalog = DefaultContentCatalog()
	}

	now := time.Now().UTC()
	a := &Assessment{
		catalog:    catalog,
		step:       types.FirstStep,
		selections: make(map[types.Step]string),
		createdAt:  now,
		updatedAt:  now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.id == "" {
		a.id = NewAssessmentID()
	}
	return a
}

// ID returns the assessment identifier
func (a *Assessment) ID() AssessmentID { return a.id }

// Step returns the active step
func (a *Assessment) Step() types.Step { return a.step }

// Answers returns a copy of the answers recorded so far
func (a *Assessment) Answers() AnswerSet { return a.answers }

// Strict reports whether answers are validated before scoring
func (a *Assessment) Strict() bool { return a.strict }

// CreatedAt returns when the assessment was started
func (a *Assessment) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the time of the last accepted transition or restart
func (a *Assessment) UpdatedAt() time.Time { return a.updatedAt }

// Selection returns the highlighted choice of a single-answer step
func (a *Assessment) Selection(step types.Step) (string, bool) {
	v, ok := a.selections[step]
	return v, ok
}

// Result returns the computed result, or nil before step 4 is completed
func (a *Assessment) Result() *Result {
	return a.result.clone()
}

// SelectSingleAnswer records the answer of step 1, 2 or 4 and advances.
// Completing step 4 scores the answers and moves to the results step in the
// same transition.
func (a *Assessment) SelectSingleAnswer(step types.Step, value string) error {
	if !step.IsSingleAnswer() {
		return goerr.Wrap(ErrInvalidTransition, "step does not take a single answer",
			goerr.V(StepKey, step), goerr.V(OperationKey, "select"))
	}
	if step != a.step {
		return goerr.Wrap(ErrInvalidTransition, "step is not active",
			goerr.V(StepKey, step), goerr.V(ActiveStepKey, a.step), goerr.V(OperationKey, "select"))
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return goerr.Wrap(ErrMissingAnswer, "empty selection", goerr.V(StepKey, step))
	}

	next := a.answers.withAnswer(step, value)
	if a.strict {
		if err := validateStep(next, step); err != nil {
			return err
		}
	}

	if step != types.StepGovernance {
		a.answers = next
		a.selections[step] = value
		a.step = step.Next()
		a.touch()
		return nil
	}

	if a.strict {
		if err := next.Validate(); err != nil {
			return goerr.Wrap(err, "cannot score incomplete answers")
		}
	}

	result, err := Evaluate(next, a.catalog)
	if err != nil {
		return goerr.Wrap(err, "failed to evaluate answers")
	}

	a.answers = next
	a.selections[step] = value
	a.result = result
	a.step = types.StepResults
	a.touch()
	return nil
}

// RecordInfrastructureFlags overwrites all infrastructure flags at step 3
// and advances. Any combination is accepted.
func (a *Assessment) RecordInfrastructureFlags(flags InfrastructureFlags) error {
	if a.step != types.StepInfrastructure {
		return goerr.Wrap(ErrInvalidTransition, "infrastructure step is not active",
			goerr.V(ActiveStepKey, a.step), goerr.V(OperationKey, "infrastructure"))
	}

	a.answers.Infrastructure = flags
	a.step = types.StepGovernance
	a.touch()
	return nil
}

// GoBack moves to the previous step keeping recorded answers. It reports
// false when already at the first step. Leaving the results step drops the
// computed result.
func (a *Assessment) GoBack() bool {
	if a.step == types.FirstStep {
		return false
	}
	if a.step == types.StepResults {
		a.result = nil
	}
	a.step = a.step.Prev()
	a.touch()
	return true
}

// Restart discards all answers and returns to the first step
func (a *Assessment) Restart() {
	a.answers = AnswerSet{}
	a.selections = make(map[types.Step]string)
	a.result = nil
	a.step = types.FirstStep
	a.touch()
}

// Clone returns an independent copy sharing only the immutable catalog
func (a *Assessment) Clone() *Assessment {
	c := *a
	c.selections = maps.Clone(a.selections)
	c.result = a.result.clone()
	return &c
}

// Snapshot returns plain data describing the current state for views
func (a *Assessment) Snapshot() *AssessmentSnapshot {
	selections := make(map[string]string, len(a.selections))
	for step, v := range a.selections {
		selections[step.Name()] = v
	}

	return &AssessmentSnapshot{
		ID:         a.id,
		Step:       a.step,
		StepName:   a.step.Name(),
		Answers:    a.answers,
		Selections: selections,
		Result:     a.result.clone(),
		Strict:     a.strict,
		CreatedAt:  a.createdAt,
		UpdatedAt:  a.updatedAt,
	}
}

func (a *Assessment) touch() {
	a.updatedAt = time.Now().UTC()
}

func validateStep(answers AnswerSet, step types.Step) error {
	var valid bool
	var value string
	switch step {
	case types.StepEntitySize:
		valid, value = answers.EntitySize.IsValid(), answers.EntitySize.String()
	case types.StepServiceSensitivity:
		valid, value = answers.ServiceSensitivity.IsValid(), answers.ServiceSensitivity.String()
	case types.StepGovernance:
		valid, value = answers.GovernanceMaturity.IsValid(), answers.GovernanceMaturity.String()
	}
	if !valid {
		return goerr.Wrap(ErrUnknownAnswer, "unrecognized answer", goerr.V(StepKey, step), goerr.V(ValueKey, value))
	}
	return nil
}

// AssessmentSnapshot is a read-only view of an assessment
type AssessmentSnapshot struct {
	ID         AssessmentID      `json:"id"`
	Step       types.Step        `json:"step"`
	StepName   string            `json:"step_name"`
	Answers    AnswerSet         `json:"answers"`
	Selections map[string]string `json:"selections"`
	Result     *Result           `json:"result,omitempty"`
	Strict     bool              `json:"strict"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
