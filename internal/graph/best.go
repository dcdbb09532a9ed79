package graph

import "container/heap"

// BestResult is the outcome of a successful BestPath search.
type BestResult struct {
	Cost float64 `json:"cost"`
	Path Path    `json:"path"`
}

// costItem orders the frontier by (cost, actor id). Node indices follow
// actor id order, so comparing them breaks ties by identity.
type costItem struct {
	cost float64
	node int
}

type costQueue []costItem

func (q costQueue) Len() int { return len(q) }
func (q costQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].node < q[j].node
}
func (q costQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *costQueue) Push(x any)   { *q = append(*q, x.(costItem)) }
func (q *costQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// BestPath returns the path between two actors minimising the summed
// EdgeCost of the connecting movies, i.e. the path through the best-rated
// films. It returns false when either actor is absent or goal is unreachable.
//
// Relaxation is bounded by the best known cost to goal: once goal has been
// reached, no candidate at or above that cost is pushed, and the search ends
// when the cheapest remaining frontier entry can no longer improve it.
func BestPath(g *Graph, movies *MovieIndex, from, to string) (BestResult, bool) {
	start, ok := g.Lookup(from)
	if !ok {
		return BestResult{}, false
	}
	goal, ok := g.Lookup(to)
	if !ok {
		return BestResult{}, false
	}
	if start == goal {
		return BestResult{Path: Path{{Actor: g.actors[start]}}}, true
	}

	n := g.NodeCount()
	dist := make([]float64, n)
	reached := make([]bool, n)
	preds := make([]step, n)
	dist[start] = 0
	reached[start] = true

	q := &costQueue{{cost: 0, node: start}}
	for q.Len() > 0 {
		it := heap.Pop(q).(costItem)
		if it.cost > dist[it.node] {
			continue // stale
		}
		if reached[goal] && it.cost >= dist[goal] {
			break
		}
		for _, e := range g.adj[it.node] {
			m, ok := movies.Lookup(e.MovieID)
			if !ok {
				continue
			}
			c := it.cost + EdgeCost(m)
			if reached[goal] && c >= dist[goal] {
				continue
			}
			if reached[e.To] && c >= dist[e.To] {
				continue
			}
			dist[e.To] = c
			reached[e.To] = true
			preds[e.To] = step{from: it.node, movie: e.MovieID}
			heap.Push(q, costItem{cost: c, node: e.To})
		}
	}

	if !reached[goal] {
		return BestResult{}, false
	}
	return BestResult{Cost: dist[goal], Path: g.unwind(start, goal, preds)}, true
}
