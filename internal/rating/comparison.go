package rating

import (
	"fmt"
	"sort"
)

// PairwiseComparison is the outcome of one side against another.
type PairwiseComparison int

const (
	Lose PairwiseComparison = -1
	Draw PairwiseComparison = 0
	Win  PairwiseComparison = 1
)

// Multiplier is +1 for a win, -1 for a loss and 0 for a draw.
func (c PairwiseComparison) Multiplier() int {
	return int(c)
}

func (c PairwiseComparison) String() string {
	switch c {
	case Win:
		return "WIN"
	case Lose:
		return "LOSE"
	case Draw:
		return "DRAW"
	default:
		return fmt.Sprintf("PairwiseComparison(%d)", int(c))
	}
}

// ComparisonFromMultiplier maps the sign of m to a comparison.
func ComparisonFromMultiplier(m int) PairwiseComparison {
	switch {
	case m > 0:
		return Win
	case m < 0:
		return Lose
	default:
		return Draw
	}
}

// CompareRanks returns self's outcome against other. Lower rank is better.
func CompareRanks(selfRank, otherRank int) PairwiseComparison {
	switch {
	case selfRank < otherRank:
		return Win
	case selfRank > otherRank:
		return Lose
	default:
		return Draw
	}
}

// Ranks returns the two-party rank pair that encodes c from the first
// party's point of view.
func (c PairwiseComparison) Ranks() []int {
	switch c {
	case Win:
		return []int{1, 2}
	case Lose:
		return []int{2, 1}
	default:
		return []int{1, 1}
	}
}

// SortByRank returns copies of teams and ranks ordered by rank ascending.
// Ties keep input order.
func SortByRank(teams []*Team, ranks []int) ([]*Team, []int) {
	idx := make([]int, len(teams))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return ranks[idx[a]] < ranks[idx[b]]
	})

	sortedTeams := make([]*Team, len(teams))
	sortedRanks := make([]int, len(ranks))
	for i, j := range idx {
		sortedTeams[i] = teams[j]
		sortedRanks[i] = ranks[j]
	}
	return sortedTeams, sortedRanks
}
