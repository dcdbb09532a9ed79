package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/costar/internal/graph"
)

func TestBuild_Triangle(t *testing.T) {
	g, credits, _ := triangle(t)

	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())

	assert.Equal(t, []string{"tt1", "tt3"}, credits.MoviesPerActor[actorA.ID], "unknown movie dropped")
	assert.Empty(t, credits.MoviesPerActor[actorD.ID])
	assert.Equal(t, []graph.Actor{actorA, actorB}, credits.ActorsPerMovie["tt1"])
	_, ok := credits.ActorsPerMovie["tt999"]
	assert.False(t, ok)

	assert.Equal(t, []graph.Neighbor{
		{Actor: actorB, MovieID: "tt1"},
		{Actor: actorC, MovieID: "tt3"},
	}, g.Neighbors(actorA.ID))
	assert.Empty(t, g.Neighbors(actorD.ID))
	assert.True(t, g.Has(actorD.ID))
	assert.Nil(t, g.Neighbors("nm-missing"))
}

func TestBuild_MultiEdges(t *testing.T) {
	movies := graph.NewMovieIndex([]graph.Movie{
		{ID: "tt1", Rating: 5}, {ID: "tt2", Rating: 6},
	})
	g, _ := graph.Build([]graph.ActorRecord{
		{Actor: graph.Actor{ID: "nm2", Name: "Y"}, MovieIDs: []string{"tt2", "tt1"}},
		{Actor: graph.Actor{ID: "nm1", Name: "X"}, MovieIDs: []string{"tt1", "tt2", "tt1"}},
	}, movies)

	require.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []graph.Neighbor{
		{Actor: graph.Actor{ID: "nm2", Name: "Y"}, MovieID: "tt1"},
		{Actor: graph.Actor{ID: "nm2", Name: "Y"}, MovieID: "tt2"},
	}, g.Neighbors("nm1"))
	assert.Equal(t, "nm1", g.Actor(0).ID, "nodes are numbered in id order")
}

func TestBuild_MergesRepeatedActor(t *testing.T) {
	movies := graph.NewMovieIndex([]graph.Movie{{ID: "tt1"}, {ID: "tt2"}})
	g, credits := graph.Build([]graph.ActorRecord{
		{Actor: graph.Actor{ID: "nm1", Name: "First"}, MovieIDs: []string{"tt1"}},
		{Actor: graph.Actor{ID: "nm2", Name: "Other"}, MovieIDs: []string{"tt1", "tt2"}},
		{Actor: graph.Actor{ID: "nm1", Name: "Second"}, MovieIDs: []string{"tt2", "tt1"}},
	}, movies)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, []string{"tt1", "tt2"}, credits.MoviesPerActor["nm1"])
	assert.Equal(t, "First", g.Actor(0).Name)
	assert.Equal(t, 2, g.EdgeCount())
}

func TestBuild_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g, _ := randomFixture(seed, 40, 25, 4)
		endpoints := 0
		for i := 0; i < g.NodeCount(); i++ {
			for _, e := range g.Edges(i) {
				endpoints++
				require.NotEqual(t, i, e.To, "self edge at %s", g.Actor(i).ID)

				mirrored := 0
				for _, back := range g.Edges(e.To) {
					if back.To == i && back.MovieID == e.MovieID {
						mirrored++
					}
				}
				require.Equal(t, 1, mirrored, "edge %d-%d via %s not symmetric", i, e.To, e.MovieID)
			}
		}
		require.Zero(t, endpoints%2)
		require.Equal(t, endpoints/2, g.EdgeCount())
	}
}

func TestBuild_Deterministic(t *testing.T) {
	g1, _ := randomFixture(7, 50, 30, 5)
	g2, _ := randomFixture(7, 50, 30, 5)

	require.Equal(t, g1.Actors(), g2.Actors())
	for i := 0; i < g1.NodeCount(); i++ {
		require.Equal(t, g1.Edges(i), g2.Edges(i))
	}
	l1, l2 := graph.LabelComponents(g1), graph.LabelComponents(g2)
	for i := 0; i < g1.NodeCount(); i++ {
		require.Equal(t, l1.LabelOf(i), l2.LabelOf(i))
	}
}

func TestEdgeCost(t *testing.T) {
	assert.InDelta(t, 1.0, graph.EdgeCost(graph.Movie{Rating: 9}), 1e-12)
	assert.InDelta(t, 10.0, graph.EdgeCost(graph.Movie{Rating: 0}), 1e-12)
	assert.Zero(t, graph.EdgeCost(graph.Movie{Rating: 10}))
	assert.Zero(t, graph.EdgeCost(graph.Movie{Rating: 11}), "clamped")
}
