package graph_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/gyaneshwarpardhi/costar/internal/graph"
)

var (
	actorA = graph.Actor{ID: "nm01", Name: "A"}
	actorB = graph.Actor{ID: "nm02", Name: "B"}
	actorC = graph.Actor{ID: "nm03", Name: "C"}
	actorD = graph.Actor{ID: "nm04", Name: "D"}
)

// triangle builds A–B via M1 (9.0), B–C via M2 (9.5), A–C via M3 (0.5) and an
// isolated D. A also carries a credit to a movie outside the index.
func triangle(t *testing.T) (*graph.Graph, *graph.Credits, *graph.MovieIndex) {
	t.Helper()
	movies := graph.NewMovieIndex([]graph.Movie{
		{ID: "tt1", Title: "M1", Rating: 9.0, Votes: 100},
		{ID: "tt2", Title: "M2", Rating: 9.5, Votes: 200},
		{ID: "tt3", Title: "M3", Rating: 0.5, Votes: 300},
	})
	records := []graph.ActorRecord{
		{Actor: actorA, MovieIDs: []string{"tt1", "tt3", "tt999"}},
		{Actor: actorB, MovieIDs: []string{"tt1", "tt2"}},
		{Actor: actorC, MovieIDs: []string{"tt2", "tt3"}},
		{Actor: actorD},
	}
	g, credits := graph.Build(records, movies)
	return g, credits, movies
}

// randomFixture builds a small random multigraph with a fixed seed.
func randomFixture(seed int64, actors, movies, maxCredits int) (*graph.Graph, *graph.MovieIndex) {
	rng := rand.New(rand.NewSource(seed))
	ms := make([]graph.Movie, movies)
	for i := range ms {
		ms[i] = graph.Movie{
			ID:     fmt.Sprintf("tt%02d", i),
			Title:  fmt.Sprintf("Movie %d", i),
			Rating: math.Round(rng.Float64()*100) / 10,
		}
	}
	idx := graph.NewMovieIndex(ms)
	records := make([]graph.ActorRecord, actors)
	for i := range records {
		rec := graph.ActorRecord{Actor: graph.Actor{ID: fmt.Sprintf("nm%02d", i), Name: fmt.Sprintf("Actor %d", i)}}
		for k := rng.Intn(maxCredits + 1); k > 0; k-- {
			rec.MovieIDs = append(rec.MovieIDs, ms[rng.Intn(movies)].ID)
		}
		records[i] = rec
	}
	g, _ := graph.Build(records, idx)
	return g, idx
}

// simplePaths enumerates every simple path from start to goal as edge lists.
func simplePaths(g *graph.Graph, start, goal int) [][]graph.Edge {
	var out [][]graph.Edge
	onPath := make([]bool, g.NodeCount())
	var walk func(node int, acc []graph.Edge)
	walk = func(node int, acc []graph.Edge) {
		if node == goal {
			out = append(out, append([]graph.Edge(nil), acc...))
			return
		}
		onPath[node] = true
		for _, e := range g.Edges(node) {
			if !onPath[e.To] {
				walk(e.To, append(acc, e))
			}
		}
		onPath[node] = false
	}
	walk(start, nil)
	return out
}

// requireWalk fails unless every hop of p follows an actual edge of g.
func requireWalk(t *testing.T, g *graph.Graph, p graph.Path) {
	t.Helper()
	for i := 1; i < len(p); i++ {
		found := false
		for _, n := range g.Neighbors(p[i-1].Actor.ID) {
			if n.Actor.ID == p[i].Actor.ID && n.MovieID == p[i].MovieID {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("hop %d (%s -[%s]-> %s) is not an edge", i, p[i-1].Actor.ID, p[i].MovieID, p[i].Actor.ID)
		}
	}
}
