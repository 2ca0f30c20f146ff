// Package ladder settles parsed matches against current ladder ratings.
package ladder

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pable/go-skill-ratings/internal/model"
	"github.com/pable/go-skill-ratings/internal/rating"
)

// Settle rates raw with calc. current maps player name to stored mean;
// players missing from it start at info.InitialMean. Quality is computed on
// the pre-match ratings. Results follow sheet order: team, then player.
//
// Settle does not touch storage; the caller persists the returned records.
func Settle(calc rating.Calculator, info rating.GameInfo, raw *model.RawMatch, current map[string]float64, calculatorName string) (model.MatchSummary, []model.PlayerResult, error) {
	if raw == nil {
		return model.MatchSummary{}, nil, fmt.Errorf("nil RawMatch")
	}

	teams := make([]*rating.Team, len(raw.Teams))
	ranks := make([]int, len(raw.Teams))
	for i, rt := range raw.Teams {
		teams[i] = rating.NewTeam()
		for _, name := range rt.Players {
			teams[i].AddPlayer(rating.Player{ID: name}, rating.NewEloRating(startingMean(current, name, info)))
		}
		ranks[i] = rt.Rank
	}

	quality, err := calc.CalculateMatchQuality(info, teams)
	if err != nil {
		return model.MatchSummary{}, nil, fmt.Errorf("match quality: %w", err)
	}
	updated, err := calc.CalculateNewRatings(info, teams, ranks)
	if err != nil {
		return model.MatchSummary{}, nil, fmt.Errorf("new ratings: %w", err)
	}

	summary := model.MatchSummary{
		MatchID:     uuid.NewString(),
		SourceHash:  raw.SourceHash,
		PlayedAt:    raw.PlayedAt,
		Calculator:  calculatorName,
		Quality:     quality,
		TeamCount:   len(raw.Teams),
		PlayerCount: raw.PlayerCount(),
	}

	results := make([]model.PlayerResult, 0, raw.PlayerCount())
	for i, rt := range raw.Teams {
		for _, name := range rt.Players {
			p := rating.Player{ID: name}
			after, ok := updated[p]
			if !ok {
				return model.MatchSummary{}, nil, fmt.Errorf("calculator returned no rating for %s", name)
			}
			before, _ := teams[i].Rating(p)
			results = append(results, model.PlayerResult{
				MatchID:    summary.MatchID,
				Player:     name,
				Team:       i,
				Rank:       rt.Rank,
				MeanBefore: before.Mean,
				MeanAfter:  after.Mean,
			})
		}
	}
	return summary, results, nil
}

// Quality computes pre-match quality for raw without rating it.
func Quality(calc rating.Calculator, info rating.GameInfo, raw *model.RawMatch, current map[string]float64) (float64, error) {
	teams := make([]*rating.Team, len(raw.Teams))
	for i, rt := range raw.Teams {
		teams[i] = rating.NewTeam()
		for _, name := range rt.Players {
			teams[i].AddPlayer(rating.Player{ID: name}, rating.NewEloRating(startingMean(current, name, info)))
		}
	}
	return calc.CalculateMatchQuality(info, teams)
}

func startingMean(current map[string]float64, name string, info rating.GameInfo) float64 {
	if m, ok := current[name]; ok {
		return m
	}
	return info.InitialMean
}
