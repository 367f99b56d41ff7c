package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Tier is the exposure severity assigned to an assessed entity
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// AllTiers returns all tiers ordered from low to high severity
func AllTiers() []Tier {
	return []Tier{
		TierLow,
		TierMedium,
		TierHigh,
	}
}

// IsValid checks if the tier is valid
func (t Tier) IsValid() bool {
	switch t {
	case TierLow,
		TierMedium,
		TierHigh:
		return true
	default:
		return false
	}
}

// Rank returns the severity order of the tier (1 = low). Invalid tiers rank 0.
func (t Tier) Rank() int {
	switch t {
	case TierLow:
		return 1
	case TierMedium:
		return 2
	case TierHigh:
		return 3
	default:
		return 0
	}
}

// Badge is a short label and style token derived from a tier
type Badge struct {
	Text  string `json:"text"`
	Style string `json:"style"`
}

// Badge returns the display badge for the tier
func (t Tier) Badge() Badge {
	switch t {
	case TierHigh:
		return Badge{Text: "HIGH", Style: "badge-high"}
	case TierMedium:
		return Badge{Text: "MEDIUM", Style: "badge-medium"}
	case TierLow:
		return Badge{Text: "LOW", Style: "badge-low"}
	default:
		return Badge{Text: "UNKNOWN", Style: "badge-unknown"}
	}
}

// String returns the string representation of the tier
func (t Tier) String() string {
	return string(t)
}

// ParseTier parses a string into a Tier
func ParseTier(s string) (Tier, error) {
	tier := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !tier.IsValid() {
		return "", goerr.New("invalid tier", goerr.V("value", s))
	}
	return tier, nil
}
