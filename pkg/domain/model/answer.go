package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
)

// InfrastructureFlags are the independent yes/no facts collected at step 3
type InfrastructureFlags struct {
	Cloud           bool `json:"cloud"`
	MFA             bool `json:"mfa"`
	IncidentProcess bool `json:"incident_process"`
	SupplyChain     bool `json:"supply_chain"`
}

// AnswerSet is everything the user told us. Categorical fields are empty
// until the matching step is answered.
type AnswerSet struct {
	EntitySize         types.EntitySize         `json:"entity_size,omitempty"`
	ServiceSensitivity types.ServiceSensitivity `json:"service_sensitivity,omitempty"`
	Infrastructure     InfrastructureFlags      `json:"digital_infrastructure"`
	GovernanceMaturity types.GovernanceMaturity `json:"governance_maturity,omitempty"`
}

// IsComplete reports whether every categorical answer has been recorded
func (a AnswerSet) IsComplete() bool {
	return len(a.MissingSteps()) == 0
}

// MissingSteps returns the single-answer steps that have no recorded value
func (a AnswerSet) MissingSteps() []types.Step {
	var missing []types.Step
	if a.EntitySize == "" {
		missing = append(missing, types.StepEntitySize)
	}
	if a.ServiceSensitivity == "" {
		missing = append(missing, types.StepServiceSensitivity)
	}
	if a.GovernanceMaturity == "" {
		missing = append(missing, types.StepGovernance)
	}
	return missing
}

// Validate checks that every categorical answer is present and recognized.
// Scoring itself never needs this; it is used by strict assessments.
func (a AnswerSet) Validate() error {
	if missing := a.MissingSteps(); len(missing) > 0 {
		return goerr.Wrap(ErrMissingAnswer, "answers are incomplete", goerr.V(StepKey, missing[0]))
	}
	if !a.EntitySize.IsValid() {
		return goerr.Wrap(ErrUnknownAnswer, "unknown entity size", goerr.V(StepKey, types.StepEntitySize), goerr.V(ValueKey, a.EntitySize))
	}
	if !a.ServiceSensitivity.IsValid() {
		return goerr.Wrap(ErrUnknownAnswer, "unknown service sensitivity", goerr.V(StepKey, types.StepServiceSensitivity), goerr.V(ValueKey, a.ServiceSensitivity))
	}
	if !a.GovernanceMaturity.IsValid() {
		return goerr.Wrap(ErrUnknownAnswer, "unknown governance maturity", goerr.V(StepKey, types.StepGovernance), goerr.V(ValueKey, a.GovernanceMaturity))
	}
	return nil
}

// withAnswer returns a copy of the answer set with value stored for step.
// Recognized values are stored in canonical form; anything else is kept as
// given and later scored with the lowest weight.
func (a AnswerSet) withAnswer(step types.Step, value string) AnswerSet {
	value = strings.TrimSpace(value)
	switch step {
	case types.StepEntitySize:
		if v, err := types.ParseEntitySize(value); err == nil {
			a.EntitySize = v
		} else {
			a.EntitySize = types.EntitySize(value)
		}
	case types.StepServiceSensitivity:
		if v, err := types.ParseServiceSensitivity(value); err == nil {
			a.ServiceSensitivity = v
		} else {
			a.ServiceSensitivity = types.ServiceSensitivity(value)
		}
	case types.StepGovernance:
		if v, err := types.ParseGovernanceMaturity(value); err == nil {
			a.GovernanceMaturity = v
		} else {
			a.GovernanceMaturity = types.GovernanceMaturity(value)
		}
	}
	return a
}

// NewAnswerSet builds an answer set in one go, canonicalizing the
// categorical values the same way the questionnaire does
func NewAnswerSet(entitySize, serviceSensitivity string, infrastructure InfrastructureFlags, governance string) AnswerSet {
	a := AnswerSet{Infrastructure: infrastructure}
	a = a.withAnswer(types.StepEntitySize, entitySize)
	a = a.withAnswer(types.StepServiceSensitivity, serviceSensitivity)
	a = a.withAnswer(types.StepGovernance, governance)
	return a
}
