package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// EntitySize is the self-reported size class of the assessed organization
type EntitySize string

const (
	EntitySizeSmall  EntitySize = "small"
	EntitySizeMedium EntitySize = "medium"
	EntitySizeLarge  EntitySize = "large"
)

// AllEntitySizes returns all valid entity sizes in ascending order
func AllEntitySizes() []EntitySize {
	return []EntitySize{
		EntitySizeSmall,
		EntitySizeMedium,
		EntitySizeLarge,
	}
}

// IsValid checks if the entity size is one of the known values
func (s EntitySize) IsValid() bool {
	switch s {
	case EntitySizeSmall,
		EntitySizeMedium,
		EntitySizeLarge:
		return true
	default:
		return false
	}
}

// String returns the string representation of the entity size
func (s EntitySize) String() string {
	return string(s)
}

// ParseEntitySize parses a string into an EntitySize
func ParseEntitySize(s string) (EntitySize, error) {
	size := EntitySize(strings.ToLower(strings.TrimSpace(s)))
	if !size.IsValid() {
		return "", goerr.New("invalid entity size", goerr.V("value", s))
	}
	return size, nil
}
