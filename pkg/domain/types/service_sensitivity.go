package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ServiceSensitivity is how critical the services provided by the entity are
type ServiceSensitivity string

const (
	ServiceSensitivityLow    ServiceSensitivity = "low"
	ServiceSensitivityMedium ServiceSensitivity = "medium"
	ServiceSensitivityHigh   ServiceSensitivity = "high"
)

// AllServiceSensitivities returns all valid sensitivities in ascending order
func AllServiceSensitivities() []ServiceSensitivity {
	return []ServiceSensitivity{
		ServiceSensitivityLow,
		ServiceSensitivityMedium,
		ServiceSensitivityHigh,
	}
}

// IsValid checks if the sensitivity is one of the known values
func (s ServiceSensitivity) IsValid() bool {
	switch s {
	case ServiceSensitivityLow,
		ServiceSensitivityMedium,
		ServiceSensitivityHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sensitivity
func (s ServiceSensitivity) String() string {
	return string(s)
}

// ParseServiceSensitivity parses a string into a ServiceSensitivity
func ParseServiceSensitivity(s string) (ServiceSensitivity, error) {
	v := ServiceSensitivity(strings.ToLower(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", goerr.New("invalid service sensitivity", goerr.V("value", s))
	}
	return v, nil
}
