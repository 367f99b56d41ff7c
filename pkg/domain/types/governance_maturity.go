package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// GovernanceMaturity is a self-assessment of how formalized security
// management is inside the entity
type GovernanceMaturity string

const (
	GovernanceNone       GovernanceMaturity = "none"
	GovernanceBasic      GovernanceMaturity = "basic"
	GovernanceStructured GovernanceMaturity = "structured"
	GovernanceISO        GovernanceMaturity = "iso"

	// GovernanceISO27001 is accepted as an alias of GovernanceISO
	GovernanceISO27001 GovernanceMaturity = "iso27001"
)

// AllGovernanceMaturities returns the canonical maturity levels, least mature first
func AllGovernanceMaturities() []GovernanceMaturity {
	return []GovernanceMaturity{
		GovernanceNone,
		GovernanceBasic,
		GovernanceStructured,
		GovernanceISO,
	}
}

// IsValid checks if the maturity is a known value, including aliases
func (g GovernanceMaturity) IsValid() bool {
	switch g {
	case GovernanceNone,
		GovernanceBasic,
		GovernanceStructured,
		GovernanceISO,
		GovernanceISO27001:
		return true
	default:
		return false
	}
}

// Normalize maps aliases onto their canonical value
func (g GovernanceMaturity) Normalize() GovernanceMaturity {
	if g == GovernanceISO27001 {
		return GovernanceISO
	}
	return g
}

// String returns the string representation of the maturity
func (g GovernanceMaturity) String() string {
	return string(g)
}

// ParseGovernanceMaturity parses a string into a canonical GovernanceMaturity
func ParseGovernanceMaturity(s string) (GovernanceMaturity, error) {
	v := GovernanceMaturity(strings.ToLower(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", goerr.New("invalid governance maturity", goerr.V("value", s))
	}
	return v.Normalize(), nil
}
