package rating

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is matched by every ConfigurationError.
var ErrInvalidConfiguration = errors.New("invalid match configuration")

// ConfigurationError reports a match the calculator cannot rate. It is
// returned before any rating is computed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidConfiguration, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// Calculator computes new ratings and match quality. Implementations are
// stateless; GameInfo is passed on every call.
type Calculator interface {
	CalculateNewRatings(info GameInfo, teams []*Team, ranks []int) (map[Player]Rating, error)
	CalculateMatchQuality(info GameInfo, teams []*Team) (float64, error)
}

// Range is an inclusive integer interval.
type Range struct {
	Min, Max int
}

func Exactly(n int) Range { return Range{Min: n, Max: n} }
func AtLeast(n int) Range { return Range{Min: n, Max: math.MaxInt} }

func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

func (r Range) String() string {
	switch {
	case r.Min == r.Max:
		return fmt.Sprintf("exactly %d", r.Min)
	case r.Max == math.MaxInt:
		return fmt.Sprintf("at least %d", r.Min)
	default:
		return fmt.Sprintf("between %d and %d", r.Min, r.Max)
	}
}

// ValidateTeams checks team count and per-team player count.
func ValidateTeams(teams []*Team, teamRange, playerRange Range) error {
	if !teamRange.Contains(len(teams)) {
		return configErrorf("need %s teams, got %d", teamRange, len(teams))
	}
	for i, t := range teams {
		if !playerRange.Contains(t.Len()) {
			return configErrorf("team %d: need %s players, got %d", i, playerRange, t.Len())
		}
	}
	return nil
}

// ValidateMatch is ValidateTeams plus one rank per team.
func ValidateMatch(teams []*Team, ranks []int, teamRange, playerRange Range) error {
	if err := ValidateTeams(teams, teamRange, playerRange); err != nil {
		return err
	}
	if len(ranks) != len(teams) {
		return configErrorf("got %d ranks for %d teams", len(ranks), len(teams))
	}
	return nil
}
