package graph

// Edge is one adjacency entry: the co-actor's node index and the movie that
// connects them.
type Edge struct {
	To      int
	MovieID string
}

// Neighbor is the id-level view of an Edge.
type Neighbor struct {
	Actor   Actor  `json:"actor"`
	MovieID string `json:"movie_id"`
}

// Graph is the undirected actor multigraph. Nodes are numbered in ascending
// actor id order, so node index order is also identity order.
// It is immutable once built; reloads create a new Graph and swap it.
type Graph struct {
	actors    []Actor        // node index → actor
	index     map[string]int // actor id → node index
	adj       [][]Edge       // node index → edges sorted by (co-actor, movie)
	endpoints int
}

func newGraph(actors []Actor) *Graph {
	g := &Graph{
		actors: actors,
		index:  make(map[string]int, len(actors)),
		adj:    make([][]Edge, len(actors)),
	}
	for i, a := range actors {
		g.index[a.ID] = i
	}
	return g
}

// NodeCount returns the number of actors in the graph, isolated ones included.
func (g *Graph) NodeCount() int {
	return len(g.actors)
}

// EdgeCount returns the number of undirected edges (endpoints / 2).
func (g *Graph) EdgeCount() int {
	return g.endpoints / 2
}

// Lookup returns the node index of an actor id.
func (g *Graph) Lookup(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Has reports whether id is a node.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Actor returns the actor at node index i.
func (g *Graph) Actor(i int) Actor {
	return g.actors[i]
}

// Actors returns all actors in ascending id order. The slice must not be modified.
func (g *Graph) Actors() []Actor {
	return g.actors
}

// Edges returns the adjacency list of node i. The slice must not be modified.
func (g *Graph) Edges(i int) []Edge {
	return g.adj[i]
}

// Neighbors returns the adjacency list of an actor id, nil if absent.
func (g *Graph) Neighbors(id string) []Neighbor {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]Neighbor, 0, len(g.adj[i]))
	for _, e := range g.adj[i] {
		out = append(out, Neighbor{Actor: g.actors[e.To], MovieID: e.MovieID})
	}
	return out
}
