// Package elo implements two-player Elo rating updates and the dueling
// calculator that extends them to any number of teams and players.
package elo

import (
	"math"

	"github.com/pable/go-skill-ratings/internal/numerics"
	"github.com/pable/go-skill-ratings/internal/rating"
)

// StableDynamicsKFactor is the constant K used by the Gaussian calculator.
const StableDynamicsKFactor = 24.0

// KFactor returns the update weight for a player at the given rating.
type KFactor func(r float64) float64

// ConstantKFactor returns the same K for every rating.
func ConstantKFactor(k float64) KFactor {
	return func(float64) float64 { return k }
}

// FideKFactor is 15 below 2400 and 10 from 2400 on.
func FideKFactor(r float64) float64 {
	if r < 2400 {
		return 15
	}
	return 10
}

// ProvisionalFideKFactor applies to players with fewer than 30 rated games.
func ProvisionalFideKFactor(float64) float64 {
	return 25
}

// WinProbability returns the chance self beats opponent.
type WinProbability func(info rating.GameInfo, self, opponent float64) float64

// GaussianWinProbability assumes performance is normal with variance beta^2
// per player.
func GaussianWinProbability(info rating.GameInfo, self, opponent float64) float64 {
	return numerics.CumulativeTo((self - opponent) / (math.Sqrt2 * info.Beta))
}

// LogisticWinProbability is the classic chess curve; beta 200 gives the
// familiar 400-point spread.
func LogisticWinProbability(info rating.GameInfo, self, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-self)/(2*info.Beta)))
}

// TwoPlayerCalculator rates a match between exactly two single-player teams.
type TwoPlayerCalculator struct {
	name    string
	winProb WinProbability
	kFactor KFactor
}

// NewTwoPlayerCalculator builds a calculator from a win curve and K factor.
func NewTwoPlayerCalculator(name string, winProb WinProbability, k KFactor) *TwoPlayerCalculator {
	return &TwoPlayerCalculator{name: name, winProb: winProb, kFactor: k}
}

// NewGaussianCalculator uses the normal curve with a constant K of 24.
func NewGaussianCalculator() *TwoPlayerCalculator {
	return NewTwoPlayerCalculator("gaussian", GaussianWinProbability, ConstantKFactor(StableDynamicsKFactor))
}

// NewFideCalculator uses the FIDE logistic curve and K factor.
func NewFideCalculator() *TwoPlayerCalculator {
	return NewTwoPlayerCalculator("fide", LogisticWinProbability, FideKFactor)
}

// NewProvisionalFideCalculator is NewFideCalculator with K fixed at 25.
func NewProvisionalFideCalculator() *TwoPlayerCalculator {
	return NewTwoPlayerCalculator("fide-provisional", LogisticWinProbability, ProvisionalFideKFactor)
}

func (c *TwoPlayerCalculator) Name() string { return c.name }

var (
	twoTeams     = rating.Exactly(2)
	singlePlayer = rating.Exactly(1)
)

// CalculateNewRatings implements rating.Calculator.
func (c *TwoPlayerCalculator) CalculateNewRatings(info rating.GameInfo, teams []*rating.Team, ranks []int) (map[rating.Player]rating.Rating, error) {
	if err := rating.ValidateMatch(teams, ranks, twoTeams, singlePlayer); err != nil {
		return nil, err
	}
	teams, ranks = rating.SortByRank(teams, ranks)

	p1, r1 := only(teams[0])
	p2, r2 := only(teams[1])

	first, second := rating.Win, rating.Lose
	if ranks[0] == ranks[1] {
		first, second = rating.Draw, rating.Draw
	}

	return map[rating.Player]rating.Rating{
		p1: c.newRating(info, r1.Mean, r2.Mean, first),
		p2: c.newRating(info, r2.Mean, r1.Mean, second),
	}, nil
}

// CalculateMatchQuality maps the win probability's distance from 50% onto
// [0,1]: an even match is 1, a certain result is 0.
func (c *TwoPlayerCalculator) CalculateMatchQuality(info rating.GameInfo, teams []*rating.Team) (float64, error) {
	if err := rating.ValidateTeams(teams, twoTeams, singlePlayer); err != nil {
		return 0, err
	}
	_, r1 := only(teams[0])
	_, r2 := only(teams[1])

	deltaFrom50 := math.Abs(c.winProb(info, r1.Mean, r2.Mean) - 0.5)
	return (0.5 - deltaFrom50) / 0.5, nil
}

func (c *TwoPlayerCalculator) newRating(info rating.GameInfo, self, opponent float64, outcome rating.PairwiseComparison) rating.Rating {
	expected := c.winProb(info, self, opponent)
	actual := score(outcome)
	return rating.NewEloRating(self + c.kFactor(self)*(actual-expected))
}

func score(c rating.PairwiseComparison) float64 {
	switch c {
	case rating.Win:
		return 1
	case rating.Lose:
		return 0
	default:
		return 0.5
	}
}

func only(t *rating.Team) (rating.Player, rating.Rating) {
	p := t.Players()[0]
	r, _ := t.Rating(p)
	return p, r
}
