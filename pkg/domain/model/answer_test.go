package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
)

func TestNewAnswerSet(t *testing.T) {
	tests := []struct {
		name        string
		size        string
		sensitivity string
		governance  string
		want        model.AnswerSet
		wantValid   bool
	}{
		{
			name:        "canonical values",
			size:        "large",
			sensitivity: "high",
			governance:  "none",
			want: model.AnswerSet{
				EntitySize:         types.EntitySizeLarge,
				ServiceSensitivity: types.ServiceSensitivityHigh,
				GovernanceMaturity: types.GovernanceNone,
			},
			wantValid: true,
		},
		{
			name:        "case and alias are normalized",
			size:        " Medium ",
			sensitivity: "LOW",
			governance:  "ISO27001",
			want: model.AnswerSet{
				EntitySize:         types.EntitySizeMedium,
				ServiceSensitivity: types.ServiceSensitivityLow,
				GovernanceMaturity: types.GovernanceISO,
			},
			wantValid: true,
		},
		{
			name:        "unknown values are kept",
			size:        "huge",
			sensitivity: "high",
			governance:  "excellent",
			want: model.AnswerSet{
				EntitySize:         types.EntitySize("huge"),
				ServiceSensitivity: types.ServiceSensitivityHigh,
				GovernanceMaturity: types.GovernanceMaturity("excellent"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.NewAnswerSet(tt.size, tt.sensitivity, model.InfrastructureFlags{}, tt.governance)
			gt.Value(t, got).Equal(tt.want)
			gt.Value(t, got.Validate() == nil).Equal(tt.wantValid)
		})
	}
}

func TestNewAnswerSet_ScoresLikeQuestionnaire(t *testing.T) {
	flags := model.InfrastructureFlags{Cloud: true, SupplyChain: true}
	answers := model.NewAnswerSet("Large", "medium", flags, "iso27001")

	a := model.NewAssessment(nil)
	gt.NoError(t, a.SelectSingleAnswer(types.StepEntitySize, "Large"))
	gt.NoError(t, a.SelectSingleAnswer(types.StepServiceSensitivity, "medium"))
	gt.NoError(t, a.RecordInfrastructureFlags(flags))
	gt.NoError(t, a.SelectSingleAnswer(types.StepGovernance, "iso27001"))

	gt.Value(t, a.Answers()).Equal(answers)
	gt.Value(t, a.Result().Score).Equal(model.Score(answers))
}
