package query_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/costar/internal/graph"
	"github.com/gyaneshwarpardhi/costar/internal/query"
)

func fixture() (*graph.Graph, *graph.MovieIndex) {
	movies := graph.NewMovieIndex([]graph.Movie{
		{ID: "tt1", Title: "M1", Rating: 9.0},
		{ID: "tt2", Title: "M2", Rating: 9.5},
		{ID: "tt3", Title: "M3", Rating: 0.5},
	})
	g, _ := graph.Build([]graph.ActorRecord{
		{Actor: graph.Actor{ID: "a", Name: "A"}, MovieIDs: []string{"tt1", "tt3"}},
		{Actor: graph.Actor{ID: "b", Name: "B"}, MovieIDs: []string{"tt1", "tt2"}},
		{Actor: graph.Actor{ID: "c", Name: "C"}, MovieIDs: []string{"tt2", "tt3"}},
		{Actor: graph.Actor{ID: "d", Name: "D"}},
	}, movies)
	return g, movies
}

func TestRegistry(t *testing.T) {
	reg := query.DefaultRegistry()
	assert.Equal(t, []query.Kind{query.KindBest, query.KindShortest}, reg.Kinds())

	rn, err := reg.Get(query.KindBest)
	require.NoError(t, err)
	assert.Equal(t, query.KindBest, rn.Kind())

	_, err = reg.Get("longest")
	require.ErrorIs(t, err, query.ErrUnknownKind)

	assert.Panics(t, func() { reg.Register(query.ShortestRunner{}) })
}

func TestShortestRunner(t *testing.T) {
	g, movies := fixture()
	res := query.ShortestRunner{}.Run(g, movies, query.Request{ID: "r1", Kind: query.KindShortest, From: "a", To: "c"})

	require.True(t, res.Found)
	assert.Equal(t, "r1", res.RequestID)
	assert.Nil(t, res.Cost)
	assert.Equal(t, []query.Hop{
		{ActorID: "a", ActorName: "A"},
		{ActorID: "c", ActorName: "C", MovieID: "tt3", Title: "M3", Rating: ptr(0.5)},
	}, res.Hops)
}

func TestBestRunner(t *testing.T) {
	g, movies := fixture()
	res := query.BestRunner{}.Run(g, movies, query.Request{Kind: query.KindBest, From: "a", To: "c"})

	require.True(t, res.Found)
	require.NotNil(t, res.Cost)
	assert.InDelta(t, 1.5, *res.Cost, 1e-9)
	require.Len(t, res.Hops, 3)
	assert.Equal(t, "b", res.Hops[1].ActorID)
	assert.Equal(t, "M2", res.Hops[2].Title)
}

func TestRunners_NoPath(t *testing.T) {
	g, movies := fixture()
	for _, rn := range []query.Runner{query.ShortestRunner{}, query.BestRunner{}} {
		res := rn.Run(g, movies, query.Request{Kind: rn.Kind(), From: "a", To: "d"})
		assert.False(t, res.Found, rn.Kind())
		assert.Empty(t, res.Missing)
		assert.Nil(t, res.Cost)

		res = rn.Run(g, movies, query.Request{Kind: rn.Kind(), From: "x", To: "a"})
		assert.False(t, res.Found)
		assert.Equal(t, []string{"x"}, res.Missing)

		res = rn.Run(g, movies, query.Request{Kind: rn.Kind(), From: "x", To: "x"})
		assert.Equal(t, []string{"x"}, res.Missing)
	}
}

func ptr(v float64) *float64 { return &v }

func TestHops_ZeroRatingKept(t *testing.T) {
	movies := graph.NewMovieIndex([]graph.Movie{{ID: "tt0", Title: "Flop", Rating: 0}})
	g, _ := graph.Build([]graph.ActorRecord{
		{Actor: graph.Actor{ID: "a", Name: "A"}, MovieIDs: []string{"tt0"}},
		{Actor: graph.Actor{ID: "b", Name: "B"}, MovieIDs: []string{"tt0"}},
	}, movies)

	res := query.ShortestRunner{}.Run(g, movies, query.Request{Kind: query.KindShortest, From: "a", To: "b"})
	require.True(t, res.Found)
	require.Len(t, res.Hops, 2)
	assert.Nil(t, res.Hops[0].Rating)

	raw, err := json.Marshal(res.Hops)
	require.NoError(t, err)
	var hops []map[string]any
	require.NoError(t, json.Unmarshal(raw, &hops))
	assert.NotContains(t, hops[0], "rating")
	assert.Contains(t, hops[1], "rating")
	assert.EqualValues(t, 0, hops[1]["rating"])
}

func TestRequest_Validate(t *testing.T) {
	assert.NoError(t, query.Request{From: "a", To: "b"}.Validate())
	assert.ErrorIs(t, query.Request{From: "a"}.Validate(), query.ErrInvalidRequest)
	assert.ErrorIs(t, query.Request{To: "b"}.Validate(), query.ErrInvalidRequest)
}
