package graph

// partial is a frontier entry: a path prefix stored as a link to its parent
// prefix, so sibling paths share their common head.
type partial struct {
	node  int
	movie string
	prev  *partial
}

func (g *Graph) materialize(p *partial) Path {
	var rev Path
	for ; p != nil; p = p.prev {
		rev = append(rev, Hop{Actor: g.actors[p.node], MovieID: p.movie})
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// ShortestPath returns a minimum-hop path between two actors, or false when
// either actor is absent or no path exists.
//
// The frontier is a FIFO of partial paths. A node is marked expanded only
// after its edges have been pushed, and the search stops at the first
// generated path ending at goal. Ties between equally short paths go to the
// one discovered first in adjacency order (co-actor id, then movie id).
func ShortestPath(g *Graph, from, to string) (Path, bool) {
	start, ok := g.Lookup(from)
	if !ok {
		return nil, false
	}
	goal, ok := g.Lookup(to)
	if !ok {
		return nil, false
	}
	if start == goal {
		return Path{{Actor: g.actors[start]}}, true
	}

	expanded := make([]bool, g.NodeCount())
	queue := []*partial{{node: start}}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		queue[head] = nil
		if expanded[cur.node] {
			continue
		}
		for _, e := range g.adj[cur.node] {
			if expanded[e.To] {
				continue
			}
			next := &partial{node: e.To, movie: e.MovieID, prev: cur}
			if e.To == goal {
				return g.materialize(next), true
			}
			queue = append(queue, next)
		}
		expanded[cur.node] = true
	}
	return nil, false
}
