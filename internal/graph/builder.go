package graph

import (
	"cmp"
	"slices"
)

// Credits holds the auxiliary indices produced alongside the Graph.
type Credits struct {
	// ActorsPerMovie lists, per indexed movie, the actors credited in it in
	// ingestion order.
	ActorsPerMovie map[string][]Actor
	// MoviesPerActor lists, per actor, their credits restricted to the MovieIndex.
	MoviesPerActor map[string][]string
}

// Build constructs the actor graph from actor records and the movie metadata.
// Movie ids absent from movies are dropped. An actor-movie credit counts once
// even if it is repeated in the input, and records sharing an actor id are
// merged into one node (the first record's name wins).
func Build(records []ActorRecord, movies *MovieIndex) (*Graph, *Credits) {
	credits := &Credits{
		ActorsPerMovie: make(map[string][]Actor),
		MoviesPerActor: make(map[string][]string, len(records)),
	}
	actors := make(map[string]Actor, len(records))

	for _, rec := range records {
		id := rec.Actor.ID
		if _, seen := actors[id]; !seen {
			actors[id] = rec.Actor
			credits.MoviesPerActor[id] = []string{}
		}
		actor := actors[id]
		for _, mid := range rec.MovieIDs {
			if !movies.Contains(mid) {
				continue
			}
			if slices.Contains(credits.MoviesPerActor[id], mid) {
				continue
			}
			credits.MoviesPerActor[id] = append(credits.MoviesPerActor[id], mid)
			credits.ActorsPerMovie[mid] = append(credits.ActorsPerMovie[mid], actor)
		}
	}

	nodes := make([]Actor, 0, len(actors))
	for _, a := range actors {
		nodes = append(nodes, a)
	}
	slices.SortFunc(nodes, func(a, b Actor) int { return cmp.Compare(a.ID, b.ID) })
	g := newGraph(nodes)

	for i, a := range nodes {
		var edges []Edge
		for _, mid := range credits.MoviesPerActor[a.ID] {
			for _, co := range credits.ActorsPerMovie[mid] {
				if co.ID == a.ID {
					continue
				}
				edges = append(edges, Edge{To: g.index[co.ID], MovieID: mid})
			}
		}
		// Node indices follow id order, so this sorts by (co-actor id, movie id).
		slices.SortFunc(edges, func(x, y Edge) int {
			if c := cmp.Compare(x.To, y.To); c != 0 {
				return c
			}
			return cmp.Compare(x.MovieID, y.MovieID)
		})
		g.adj[i] = edges
		g.endpoints += len(edges)
	}
	return g, credits
}
