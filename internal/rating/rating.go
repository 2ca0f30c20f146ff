// Package rating defines the values every skill calculator works on: players,
// ratings, teams, game parameters and pairwise outcomes.
package rating

import (
	"fmt"
	"math"

	"github.com/pable/go-skill-ratings/internal/numerics"
)

// Player is an opaque identity, used only as a map key.
type Player struct {
	ID string
}

func (p Player) String() string {
	return p.ID
}

// Rating is an immutable belief about a player's skill. Elo-style ratings
// leave StdDev at zero.
type Rating struct {
	Mean   float64
	StdDev float64
}

// NewRating returns a rating with the given mean and deviation.
func NewRating(mean, stdDev float64) Rating {
	return Rating{Mean: mean, StdDev: stdDev}
}

// NewEloRating returns a mean-only rating.
func NewEloRating(mean float64) Rating {
	return Rating{Mean: mean}
}

func (r Rating) Variance() float64 {
	return r.StdDev * r.StdDev
}

// ConservativeRating is mean - k*stddev, the usual leaderboard key.
func (r Rating) ConservativeRating(k float64) float64 {
	return r.Mean - k*r.StdDev
}

func (r Rating) String() string {
	if r.StdDev == 0 {
		return fmt.Sprintf("μ=%.4f", r.Mean)
	}
	return fmt.Sprintf("μ=%.4f, σ=%.4f", r.Mean, r.StdDev)
}

// CalcMeanMean returns the average of the ratings' means.
func CalcMeanMean(ratings []Rating) float64 {
	means := make([]float64, len(ratings))
	for i, r := range ratings {
		means[i] = r.Mean
	}
	return numerics.Mean(means)
}

// GameInfo holds the scale parameters handed unchanged to every calculator.
type GameInfo struct {
	InitialMean     float64 `yaml:"initial_mean" json:"initial_mean"`
	InitialStdDev   float64 `yaml:"initial_std_dev" json:"initial_std_dev"`
	Beta            float64 `yaml:"beta" json:"beta"`
	DynamicsFactor  float64 `yaml:"dynamics_factor" json:"dynamics_factor"`
	DrawProbability float64 `yaml:"draw_probability" json:"draw_probability"`
}

const (
	defaultInitialMean     = 25.0
	defaultDrawProbability = 0.10
)

// DefaultGameInfo returns the TrueSkill defaults: mu 25, sigma mu/3,
// beta sigma/2, tau sigma/100, 10% draws.
func DefaultGameInfo() GameInfo {
	sigma := defaultInitialMean / 3
	return GameInfo{
		InitialMean:     defaultInitialMean,
		InitialStdDev:   sigma,
		Beta:            sigma / 2,
		DynamicsFactor:  sigma / 100,
		DrawProbability: defaultDrawProbability,
	}
}

// ChessGameInfo is the Elo chess scale: 1200 start, 400-point logistic spread.
func ChessGameInfo() GameInfo {
	return GameInfo{InitialMean: 1200, Beta: 200}
}

// DefaultRating is the rating a new player starts with.
func (g GameInfo) DefaultRating() Rating {
	return NewRating(g.InitialMean, g.InitialStdDev)
}

// Validate checks the parameters are usable by the calculators.
func (g GameInfo) Validate() error {
	switch {
	case math.IsNaN(g.InitialMean) || math.IsInf(g.InitialMean, 0):
		return fmt.Errorf("initial mean must be finite, got %v", g.InitialMean)
	case g.InitialStdDev < 0:
		return fmt.Errorf("initial std dev must be >= 0, got %v", g.InitialStdDev)
	case g.Beta <= 0:
		return fmt.Errorf("beta must be > 0, got %v", g.Beta)
	case g.DynamicsFactor < 0:
		return fmt.Errorf("dynamics factor must be >= 0, got %v", g.DynamicsFactor)
	case g.DrawProbability < 0 || g.DrawProbability >= 1:
		return fmt.Errorf("draw probability must be in [0,1), got %v", g.DrawProbability)
	}
	return nil
}
