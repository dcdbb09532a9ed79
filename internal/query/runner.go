package query

import (
	"github.com/gyaneshwarpardhi/costar/internal/graph"
)

// Runner is the interface all search implementations satisfy.
type Runner interface {
	// Kind returns the key this runner is registered under.
	Kind() Kind
	// Run executes req against an immutable graph. Searches run to completion.
	Run(g *graph.Graph, movies *graph.MovieIndex, req Request) *Result
}

// ShortestRunner answers KindShortest with graph.ShortestPath.
type ShortestRunner struct{}

func (ShortestRunner) Kind() Kind { return KindShortest }

func (ShortestRunner) Run(g *graph.Graph, movies *graph.MovieIndex, req Request) *Result {
	res := newResult(g, req)
	if len(res.Missing) > 0 {
		return res
	}
	if p, ok := graph.ShortestPath(g, req.From, req.To); ok {
		res.Found = true
		res.Hops = toHops(p, movies)
	}
	return res
}

// BestRunner answers KindBest with graph.BestPath.
type BestRunner struct{}

func (BestRunner) Kind() Kind { return KindBest }

func (BestRunner) Run(g *graph.Graph, movies *graph.MovieIndex, req Request) *Result {
	res := newResult(g, req)
	if len(res.Missing) > 0 {
		return res
	}
	if best, ok := graph.BestPath(g, movies, req.From, req.To); ok {
		res.Found = true
		cost := best.Cost
		res.Cost = &cost
		res.Hops = toHops(best.Path, movies)
	}
	return res
}

func newResult(g *graph.Graph, req Request) *Result {
	res := &Result{RequestID: req.ID, Kind: req.Kind, From: req.From, To: req.To}
	for _, id := range []string{req.From, req.To} {
		if !g.Has(id) {
			res.Missing = append(res.Missing, id)
		}
	}
	if len(res.Missing) == 2 && req.From == req.To {
		res.Missing = res.Missing[:1]
	}
	return res
}
