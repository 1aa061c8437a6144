package pkguid

import (
	"errors"
	"fmt"
	"strings"
)

// StringID generates unique string identifiers.
type StringID interface {
	// Generate generates a unique identifier as a string.
	Generate() string
}

// NumberID generates unique numeric identifiers.
type NumberID interface {
	// Generate generates a unique identifier as an int64 number.
	Generate() int64
}

// Strategies accepted by NewStringID.
const (
	StrategyUUID      = "uuid"
	StrategySnowflake = "snowflake"
)

// ErrUnknownStrategy is returned by NewStringID for unsupported strategy names.
var ErrUnknownStrategy = errors.New("unknown id strategy")

var (
	_ StringID = (*UUID)(nil)
	_ StringID = (*SnowflakeString)(nil)
	_ NumberID = (*Snowflake)(nil)
)

// NewStringID picks a string generator by name. An empty name means uuid.
func NewStringID(strategy string) (StringID, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", StrategyUUID:
		return NewUUID(), nil
	case StrategySnowflake:
		return NewSnowflakeString()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}
