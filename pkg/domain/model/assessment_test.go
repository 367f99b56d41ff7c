package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
)

// complete drives a fresh assessment through all four input steps
func complete(t *testing.T, a *model.Assessment, size, sensitivity string, flags model.InfrastructureFlags, governance string) {
	t.Helper()
	gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, size)).Required()
	gt.NoError(t, a.SelectSingleAnswer(types.StepServiceSensitivity, sensitivity)).Required()
	gt.NoError(t, a.RecordInfrastructureFlags(flags)).Required()
	gt.NoError(t, a.SelectSingleAnswer(types.StepGovernance, governance)).Required()
}

func TestNewAssessment(t *testing.T) {
	a := model.NewAssessment(nil)
	gt.V(t, a.Step()).Equal(types.StepEntitySize)
	gt.V(t, a.Answers()).Equal(model.AnswerSet{})
	gt.V(t, a.Result()).Nil()
	gt.S(t, a.ID().String()).NotEqual("")
	gt.B(t, a.Strict()).False()

	b := model.NewAssessment(nil, model.WithAssessmentID("fixed"), model.WithStrictValidation(true))
	gt.V(t, b.ID()).Equal(model.AssessmentID("fixed"))
	gt.B(t, b.Strict()).True()
}

func TestAssessment_SelectSingleAnswer(t *testing.T) {
	t.Run("step 1 persists answer and advances", func(t *testing.T) {
		a := model.NewAssessment(nil)
		gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, "large"))
		gt.V(t, a.Step()).Equal(types.StepServiceSensitivity)
		gt.V(t, a.Answers().EntitySize).Equal(types.EntitySizeLarge)

		sel, ok := a.Selection(types.StepEntitySize)
		gt.B(t, ok).True()
		gt.V(t, sel).Equal("large")
	})

	t.Run("inactive step is rejected without change", func(t *testing.T) {
		a := model.NewAssessment(nil)
		err := a.SelectSingleAnswer(types.StepServiceSensitivity, "high")
		gt.Error(t, err).Is(model.ErrInvalidTransition)
		gt.V(t, a.Step()).Equal(types.StepEntitySize)
		gt.V(t, a.Answers()).Equal(model.AnswerSet{})
	})

	t.Run("infrastructure step does not take a single answer", func(t *testing.T) {
		a := model.NewAssessment(nil)
		gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, "small"))
		gt.NoError(t, a.SelectSingleAnswer(types.StepServiceSensitivity, "low"))

		err := a.SelectSingleAnswer(types.StepInfrastructure, "cloud")
		gt.Error(t, err).Is(model.ErrInvalidTransition)
		gt.V(t, a.Step()).Equal(types.StepInfrastructure)
	})

	t.Run("empty value is rejected", func(t *testing.T) {
		a := model.NewAssessment(nil)
		gt.Error(t, a.SelectSingleAnswer(types.StepEntitySize, "  ")).Is(model.ErrMissingAnswer)
		gt.V(t, a.Step()).Equal(types.StepEntitySize)
	})

	t.Run("unknown value is accepted with fallback weight", func(t *testing.T) {
		a := model.NewAssessment(nil)
		complete(t, a, "gigantic", "low", model.InfrastructureFlags{MFA: true, IncidentProcess: true}, "none")
		gt.V(t, a.Answers().EntitySize).Equal(types.EntitySize("gigantic"))
		gt.V(t, a.Result().Score.EntitySize).Equal(1)
	})

	t.Run("values are stored in canonical form", func(t *testing.T) {
		a := model.NewAssessment(nil)
		complete(t, a, "LARGE", " High ", model.InfrastructureFlags{}, "ISO27001")
		answers := a.Answers()
		gt.V(t, answers.EntitySize).Equal(types.EntitySizeLarge)
		gt.V(t, answers.ServiceSensitivity).Equal(types.ServiceSensitivityHigh)
		gt.V(t, answers.GovernanceMaturity).Equal(types.GovernanceISO)
	})
}

func TestAssessment_Completion(t *testing.T) {
	a := model.NewAssessment(nil)
	complete(t, a, "large", "high", model.InfrastructureFlags{}, "none")

	gt.V(t, a.Step()).Equal(types.StepResults)
	result := a.Result()
	gt.V(t, result).NotNil()
	gt.V(t, result.Tier).Equal(types.TierHigh)
	gt.V(t, result.Score.Total).Equal(11)
	gt.V(t, result.Badge).Equal(types.TierHigh.Badge())
	gt.V(t, result.Content.Tier).Equal(types.TierHigh)
	gt.N(t, len(result.Content.Obligations)).Greater(0)
}

func TestAssessment_EveryCompletionYieldsContent(t *testing.T) {
	for _, answers := range allAnswerSets() {
		a := model.NewAssessment(nil)
		complete(t, a,
			answers.EntitySize.String(),
			answers.ServiceSensitivity.String(),
			answers.Infrastructure,
			answers.GovernanceMaturity.String(),
		)
		result := a.Result()
		gt.V(t, result).NotNil()
		gt.B(t, result.Tier.IsValid()).True()
		gt.V(t, result.Tier).Equal(model.CalculateTier(answers))
		gt.S(t, result.Content.Title).NotEqual("")
		gt.N(t, len(result.Content.Obligations)).Greater(0)
	}
}

func TestAssessment_RecordInfrastructureFlags(t *testing.T) {
	t.Run("rejected at step 1", func(t *testing.T) {
		a := model.NewAssessment(nil)
		err := a.RecordInfrastructureFlags(model.InfrastructureFlags{Cloud: true})
		gt.Error(t, err).Is(model.ErrInvalidTransition)
		gt.V(t, a.Step()).Equal(types.StepEntitySize)
		gt.B(t, a.Answers().Infrastructure.Cloud).False()
	})

	t.Run("overwrites all flags", func(t *testing.T) {
		a := model.NewAssessment(nil)
		gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, "small"))
		gt.NoError(t, a.SelectSingleAnswer(types.StepServiceSensitivity, "low"))
		gt.NoError(t, a.RecordInfrastructureFlags(model.InfrastructureFlags{Cloud: true, MFA: true}))
		gt.V(t, a.Step()).Equal(types.StepGovernance)

		gt.B(t, a.GoBack()).True()
		gt.NoError(t, a.RecordInfrastructureFlags(model.InfrastructureFlags{SupplyChain: true}))
		gt.V(t, a.Answers().Infrastructure).Equal(model.InfrastructureFlags{SupplyChain: true})
	})

	t.Run("all false is accepted", func(t *testing.T) {
		a := model.NewAssessment(nil)
		gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, "small"))
		gt.NoError(t, a.SelectSingleAnswer(types.StepServiceSensitivity, "low"))
		gt.NoError(t, a.RecordInfrastructureFlags(model.InfrastructureFlags{}))
		gt.V(t, a.Step()).Equal(types.StepGovernance)
	})
}

func TestAssessment_GoBack(t *testing.T) {
	t.Run("no-op at step 1", func(t *testing.T) {
		a := model.NewAssessment(nil)
		gt.B(t, a.GoBack()).False()
		gt.V(t, a.Step()).Equal(types.StepEntitySize)
	})

	t.Run("keeps answers from earlier steps", func(t *testing.T) {
		a := model.NewAssessment(nil)
		gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, "medium"))
		gt.NoError(t, a.SelectSingleAnswer(types.StepServiceSensitivity, "high"))
		gt.V(t, a.Step()).Equal(types.StepInfrastructure)

		gt.B(t, a.GoBack()).True()
		gt.V(t, a.Step()).Equal(types.StepServiceSensitivity)
		gt.V(t, a.Answers().EntitySize).Equal(types.EntitySizeMedium)
		gt.V(t, a.Answers().ServiceSensitivity).Equal(types.ServiceSensitivityHigh)
	})

	t.Run("re-answering overwrites", func(t *testing.T) {
		a := model.NewAssessment(nil)
		gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, "medium"))
		gt.B(t, a.GoBack()).True()
		gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, "small"))
		gt.V(t, a.Answers().EntitySize).Equal(types.EntitySizeSmall)
	})

	t.Run("leaving results drops the result", func(t *testing.T) {
		a := model.NewAssessment(nil)
		complete(t, a, "large", "high", model.InfrastructureFlags{}, "none")
		gt.B(t, a.GoBack()).True()
		gt.V(t, a.Step()).Equal(types.StepGovernance)
		gt.V(t, a.Result()).Nil()

		gt.NoError(t, a.SelectSingleAnswer(types.StepGovernance, "iso"))
		gt.V(t, a.Result().Score.Total).Equal(7)
	})
}

func TestAssessment_Restart(t *testing.T) {
	for _, stopAt := range types.AllSteps() {
		t.Run(stopAt.Name(), func(t *testing.T) {
			a := model.NewAssessment(nil)
			steps := []func(){
				func() { gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, "large")) },
				func() { gt.NoError(t, a.SelectSingleAnswer(types.StepServiceSensitivity, "high")) },
				func() { gt.NoError(t, a.RecordInfrastructureFlags(model.InfrastructureFlags{Cloud: true})) },
				func() { gt.NoError(t, a.SelectSingleAnswer(types.StepGovernance, "none")) },
			}
			for _, fn := range steps[:int(stopAt)-1] {
				fn()
			}
			gt.V(t, a.Step()).Equal(stopAt)

			a.Restart()
			gt.V(t, a.Step()).Equal(types.StepEntitySize)
			gt.V(t, a.Answers()).Equal(model.AnswerSet{})
			gt.V(t, a.Result()).Nil()
			_, ok := a.Selection(types.StepEntitySize)
			gt.B(t, ok).False()
		})
	}
}

func TestAssessment_StrictValidation(t *testing.T) {
	t.Run("unknown value rejected", func(t *testing.T) {
		a := model.NewAssessment(nil, model.WithStrictValidation(true))
		gt.Error(t, a.SelectSingleAnswer(types.StepEntitySize, "gigantic")).Is(model.ErrUnknownAnswer)
		gt.V(t, a.Step()).Equal(types.StepEntitySize)
		gt.V(t, a.Answers().EntitySize).Equal(types.EntitySize(""))
	})

	t.Run("valid answers complete", func(t *testing.T) {
		a := model.NewAssessment(nil, model.WithStrictValidation(true))
		complete(t, a, "medium", "medium", model.InfrastructureFlags{MFA: true, IncidentProcess: true}, "basic")
		gt.V(t, a.Result().Tier).Equal(types.TierMedium)
	})
}

func TestAnswerSet_Validate(t *testing.T) {
	gt.Error(t, model.AnswerSet{}.Validate()).Is(model.ErrMissingAnswer)

	valid := model.AnswerSet{
		EntitySize:         types.EntitySizeSmall,
		ServiceSensitivity: types.ServiceSensitivityLow,
		GovernanceMaturity: types.GovernanceISO,
	}
	gt.NoError(t, valid.Validate())
	gt.B(t, valid.IsComplete()).True()

	unknown := valid
	unknown.ServiceSensitivity = "extreme"
	gt.Error(t, unknown.Validate()).Is(model.ErrUnknownAnswer)

	gt.A(t, model.AnswerSet{EntitySize: types.EntitySizeLarge}.MissingSteps()).Length(2)
}

func TestAssessment_CloneIsIndependent(t *testing.T) {
	a := model.NewAssessment(nil)
	gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, "large"))

	c := a.Clone()
	gt.NoError(t, c.SelectSingleAnswer(types.StepServiceSensitivity, "high"))

	gt.V(t, a.Step()).Equal(types.StepServiceSensitivity)
	_, ok := a.Selection(types.StepServiceSensitivity)
	gt.B(t, ok).False()
	gt.V(t, c.Step()).Equal(types.StepInfrastructure)
}

func TestAssessment_Snapshot(t *testing.T) {
	a := model.NewAssessment(nil, model.WithAssessmentID("snap"))
	complete(t, a, "small", "low", model.InfrastructureFlags{MFA: true, IncidentProcess: true}, "iso")

	snap := a.Snapshot()
	gt.V(t, snap.ID).Equal(model.AssessmentID("snap"))
	gt.V(t, snap.Step).Equal(types.StepResults)
	gt.V(t, snap.StepName).Equal("results")
	gt.V(t, snap.Selections["entity_size"]).Equal("small")
	gt.V(t, snap.Result.Tier).Equal(types.TierLow)
	gt.V(t, snap.Result.Score.Total).Equal(0)
}
