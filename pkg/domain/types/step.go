package types

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// Step is a position in the questionnaire. Steps 1-4 collect input and
// step 5 shows the result.
type Step int

const (
	StepEntitySize Step = iota + 1
	StepServiceSensitivity
	StepInfrastructure
	StepGovernance
	StepResults
)

// FirstStep and LastStep bound the questionnaire
const (
	FirstStep = StepEntitySize
	LastStep  = StepResults
)

// AllSteps returns all steps in order
func AllSteps() []Step {
	return []Step{
		StepEntitySize,
		StepServiceSensitivity,
		StepInfrastructure,
		StepGovernance,
		StepResults,
	}
}

// IsValid checks if the step is within the questionnaire
func (s Step) IsValid() bool {
	return s >= FirstStep && s <= LastStep
}

// IsSingleAnswer reports whether the step expects exactly one categorical value
func (s Step) IsSingleAnswer() bool {
	return s == StepEntitySize || s == StepServiceSensitivity || s == StepGovernance
}

// IsTerminal reports whether the step is the results step
func (s Step) IsTerminal() bool {
	return s == StepResults
}

// Next returns the following step, staying on the last step
func (s Step) Next() Step {
	if s >= LastStep {
		return LastStep
	}
	return s + 1
}

// Prev returns the preceding step, staying on the first step
func (s Step) Prev() Step {
	if s <= FirstStep {
		return FirstStep
	}
	return s - 1
}

// Name returns a short identifier of the step
func (s Step) Name() string {
	switch s {
	case StepEntitySize:
		return "entity_size"
	case StepServiceSensitivity:
		return "service_sensitivity"
	case StepInfrastructure:
		return "digital_infrastructure"
	case StepGovernance:
		return "governance_maturity"
	case StepResults:
		return "results"
	default:
		return "unknown"
	}
}

// String returns the step number as a string
func (s Step) String() string {
	return strconv.Itoa(int(s))
}

// ParseStep parses a step number
func ParseStep(s string) (Step, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, goerr.Wrap(err, "step must be a number", goerr.V("value", s))
	}
	step := Step(n)
	if !step.IsValid() {
		return 0, goerr.New("step out of range", goerr.V("value", s))
	}
	return step, nil
}
