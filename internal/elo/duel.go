package elo

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/pable/go-skill-ratings/internal/rating"
)

// DuelingCalculator extends a two-player calculator to any number of teams
// of any size. Every player is dueled against every player on every other
// team, using the team outcome, and moves by the average of those deltas.
type DuelingCalculator struct {
	pair rating.Calculator
	log  zerolog.Logger
}

// Option configures a DuelingCalculator.
type Option func(*DuelingCalculator)

// WithLogger sets the logger used for per-match debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *DuelingCalculator) { c.log = l }
}

// NewDuelingCalculator wraps pair, which must rate two single-player teams.
func NewDuelingCalculator(pair rating.Calculator, opts ...Option) *DuelingCalculator {
	c := &DuelingCalculator{pair: pair, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	manyTeams   = rating.AtLeast(2)
	manyPlayers = rating.AtLeast(1)
)

var (
	_ rating.Calculator = (*DuelingCalculator)(nil)
	_ rating.Calculator = (*TwoPlayerCalculator)(nil)
)

// duelDeltas maps player -> opponent -> mean change from that duel.
type duelDeltas map[rating.Player]map[rating.Player]float64

func (d duelDeltas) record(self, opponent rating.Player, delta float64) {
	byOpponent, ok := d[self]
	if !ok {
		byOpponent = make(map[rating.Player]float64)
		d[self] = byOpponent
	}
	byOpponent[opponent] = delta
}

func (d duelDeltas) average(p rating.Player) float64 {
	byOpponent := d[p]
	if len(byOpponent) == 0 {
		return 0
	}
	sum := 0.0
	for _, delta := range byOpponent {
		sum += delta
	}
	return sum / float64(len(byOpponent))
}

// CalculateNewRatings implements rating.Calculator. Lower ranks are better;
// equal ranks are draws.
func (c *DuelingCalculator) CalculateNewRatings(info rating.GameInfo, teams []*rating.Team, ranks []int) (map[rating.Player]rating.Rating, error) {
	if err := rating.ValidateMatch(teams, ranks, manyTeams, manyPlayers); err != nil {
		return nil, err
	}
	teams, ranks = rating.SortByRank(teams, ranks)

	deltas := make(duelDeltas)
	duels := 0
	// Each unordered team pair is visited in both directions. The second
	// visit recomputes the same duels with the outcome inverted and
	// overwrites identical per-opponent entries.
	for i, current := range teams {
		for j, other := range teams {
			if i == j {
				continue
			}
			comparison := rating.CompareRanks(ranks[i], ranks[j])
			for _, p := range current.Players() {
				pr, _ := current.Rating(p)
				for _, q := range other.Players() {
					qr, _ := other.Rating(q)
					if err := c.duel(info, deltas, p, pr, q, qr, comparison); err != nil {
						return nil, err
					}
					duels++
				}
			}
		}
	}

	result := make(map[rating.Player]rating.Rating)
	for _, t := range teams {
		for _, p := range t.Players() {
			before, _ := t.Rating(p)
			result[p] = rating.NewEloRating(before.Mean + deltas.average(p))
		}
	}

	c.log.Debug().
		Int("teams", len(teams)).
		Int("players", len(result)).
		Int("duels", duels).
		Msg("dueling ratings computed")
	return result, nil
}

func (c *DuelingCalculator) duel(info rating.GameInfo, deltas duelDeltas, p rating.Player, pr rating.Rating, q rating.Player, qr rating.Rating, comparison rating.PairwiseComparison) error {
	outcome, err := c.pair.CalculateNewRatings(info,
		rating.Teams(rating.NewTeam().AddPlayer(p, pr), rating.NewTeam().AddPlayer(q, qr)),
		comparison.Ranks(),
	)
	if err != nil {
		return fmt.Errorf("duel %s vs %s: %w", p, q, err)
	}
	deltas.record(p, q, outcome[p].Mean-pr.Mean)
	deltas.record(q, p, outcome[q].Mean-qr.Mean)
	return nil
}

// CalculateMatchQuality reduces every team to one player at the team's
// average mean and returns the worst two-player quality over all team pairs.
// It is a rough heuristic, not a true multi-team quality.
func (c *DuelingCalculator) CalculateMatchQuality(info rating.GameInfo, teams []*rating.Team) (float64, error) {
	if err := rating.ValidateTeams(teams, manyTeams, manyPlayers); err != nil {
		return 0, err
	}

	averaged := make([]*rating.Team, len(teams))
	for i, t := range teams {
		averaged[i] = rating.NewTeam().AddPlayer(
			rating.Player{ID: fmt.Sprintf("team-%d", i)},
			rating.NewEloRating(rating.CalcMeanMean(t.Ratings())),
		)
	}

	minQuality := 1.0
	for i := range averaged {
		for j := i + 1; j < len(averaged); j++ {
			q, err := c.pair.CalculateMatchQuality(info, rating.Teams(averaged[i], averaged[j]))
			if err != nil {
				return 0, fmt.Errorf("team %d vs %d: %w", i, j, err)
			}
			minQuality = math.Min(minQuality, q)
		}
	}
	return minQuality, nil
}
