package graph

// Hop is one step of a Path. MovieID is the film traversed to reach Actor;
// it is empty on the first hop.
type Hop struct {
	Actor   Actor  `json:"actor"`
	MovieID string `json:"movie_id,omitempty"`
}

// Path is an ordered walk from a start actor. A single-hop Path is the
// trivial path from an actor to itself.
type Path []Hop

// Hops returns the number of edges traversed.
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Movies returns the traversed movie ids in order.
func (p Path) Movies() []string {
	if len(p) < 2 {
		return nil
	}
	out := make([]string, 0, len(p)-1)
	for _, h := range p[1:] {
		out = append(out, h.MovieID)
	}
	return out
}

// Cost sums EdgeCost over the traversed movies. Movies missing from the
// index contribute nothing.
func (p Path) Cost(movies *MovieIndex) float64 {
	var total float64
	for _, mid := range p.Movies() {
		if m, ok := movies.Lookup(mid); ok {
			total += EdgeCost(m)
		}
	}
	return total
}

// step is a predecessor link used while reconstructing a path.
type step struct {
	from  int
	movie string
}

// unwind rebuilds the path ending at node by following preds back to start.
func (g *Graph) unwind(start, node int, preds []step) Path {
	var rev Path
	for node != start {
		p := preds[node]
		rev = append(rev, Hop{Actor: g.actors[node], MovieID: p.movie})
		node = p.from
	}
	rev = append(rev, Hop{Actor: g.actors[start]})
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
