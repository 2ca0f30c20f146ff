package rating

// Team is an ordered mapping from Player to Rating. Players are unique;
// adding a player twice replaces the rating and keeps the original position.
type Team struct {
	players []Player
	ratings map[Player]Rating
}

// NewTeam returns an empty team.
func NewTeam() *Team {
	return &Team{ratings: make(map[Player]Rating)}
}

// AddPlayer adds p with rating r and returns the team for chaining.
func (t *Team) AddPlayer(p Player, r Rating) *Team {
	if t.ratings == nil {
		t.ratings = make(map[Player]Rating)
	}
	if _, ok := t.ratings[p]; !ok {
		t.players = append(t.players, p)
	}
	t.ratings[p] = r
	return t
}

// Players returns the players in insertion order.
func (t *Team) Players() []Player {
	out := make([]Player, len(t.players))
	copy(out, t.players)
	return out
}

// Rating returns p's rating and whether p is on the team.
func (t *Team) Rating(p Player) (Rating, bool) {
	r, ok := t.ratings[p]
	return r, ok
}

// Ratings returns ratings in player order.
func (t *Team) Ratings() []Rating {
	out := make([]Rating, 0, len(t.players))
	for _, p := range t.players {
		out = append(out, t.ratings[p])
	}
	return out
}

func (t *Team) Len() int {
	if t == nil {
		return 0
	}
	return len(t.players)
}

// Teams concatenates teams into a slice, mirroring how matches are assembled.
func Teams(teams ...*Team) []*Team {
	return teams
}
