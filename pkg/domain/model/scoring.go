package model

import "github.com/secmon-lab/tierscope/pkg/domain/types"

// Thresholds of the total score. A total at or above HighTierThreshold is
// High, at or above MediumTierThreshold is Medium, anything lower is Low.
const (
	HighTierThreshold   = 6
	MediumTierThreshold = 4

	// InfrastructureCap bounds the infrastructure sub-score
	InfrastructureCap = 3
)

// ScoreBreakdown holds every contribution to the total score
type ScoreBreakdown struct {
	EntitySize         int        `json:"entity_size"`
	ServiceSensitivity int        `json:"service_sensitivity"`
	InfrastructureRaw  int        `json:"infrastructure_raw"`
	Infrastructure     int        `json:"infrastructure"`
	Governance         int        `json:"governance"`
	Total              int        `json:"total"`
	Tier               types.Tier `json:"tier"`
}

// Score computes the weighted point total for answers. It is pure and total:
// unset or unrecognized categorical values fall back to the lowest weight
// (or zero for governance).
func Score(answers AnswerSet) ScoreBreakdown {
	b := ScoreBreakdown{
		EntitySize:         entitySizePoints(answers.EntitySize),
		ServiceSensitivity: sensitivityPoints(answers.ServiceSensitivity),
		InfrastructureRaw:  infrastructurePoints(answers.Infrastructure),
		Governance:         governancePoints(answers.GovernanceMaturity),
	}
	b.Infrastructure = min(b.InfrastructureRaw, InfrastructureCap)
	b.Total = b.EntitySize + b.ServiceSensitivity + b.Infrastructure + b.Governance
	b.Tier = TierForScore(b.Total)
	return b
}

// CalculateTier maps answers to an exposure tier
func CalculateTier(answers AnswerSet) types.Tier {
	return Score(answers).Tier
}

// TierForScore buckets a total score into a tier
func TierForScore(total int) types.Tier {
	switch {
	case total >= HighTierThreshold:
		return types.TierHigh
	case total >= MediumTierThreshold:
		return types.TierMedium
	default:
		return types.TierLow
	}
}

func entitySizePoints(size types.EntitySize) int {
	switch size {
	case types.EntitySizeLarge:
		return 3
	case types.EntitySizeMedium:
		return 2
	default:
		return 1
	}
}

func sensitivityPoints(s types.ServiceSensitivity) int {
	switch s {
	case types.ServiceSensitivityHigh:
		return 3
	case types.ServiceSensitivityMedium:
		return 2
	default:
		return 1
	}
}

// infrastructurePoints returns the uncapped sub-score. Missing MFA and a
// missing incident process weigh the most.
func infrastructurePoints(f InfrastructureFlags) int {
	points := 0
	if f.Cloud {
		points++
	}
	if !f.MFA {
		points += 2
	}
	if !f.IncidentProcess {
		points += 2
	}
	if f.SupplyChain {
		points++
	}
	return points
}

func governancePoints(g types.GovernanceMaturity) int {
	switch g.Normalize() {
	case types.GovernanceNone:
		return 2
	case types.GovernanceBasic:
		return 1
	case types.GovernanceStructured:
		return -1
	case types.GovernanceISO:
		return -2
	default:
		return 0
	}
}
