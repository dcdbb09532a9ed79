package query

import (
	"errors"
	"fmt"
	"time"

	"github.com/gyaneshwarpardhi/costar/internal/graph"
)

// Kind selects the search a Request runs.
type Kind string

const (
	KindShortest Kind = "shortest" // fewest hops
	KindBest     Kind = "best"     // best-rated connecting movies
)

// Request is the canonical input model for a path query.
type Request struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ReceivedAt time.Time `json:"-"`
}

// ErrInvalidRequest is returned for requests missing an endpoint.
var ErrInvalidRequest = errors.New("invalid query")

// Validate checks that both endpoints are set.
func (r Request) Validate() error {
	if r.From == "" || r.To == "" {
		return fmt.Errorf("%w: from and to are required", ErrInvalidRequest)
	}
	return nil
}

// Hop is the presentation form of a graph.Hop, with movie metadata resolved.
type Hop struct {
	ActorID   string   `json:"actor_id"`
	ActorName string   `json:"actor_name"`
	MovieID   string   `json:"movie_id,omitempty"`
	Title     string   `json:"title,omitempty"`
	Rating    *float64 `json:"rating,omitempty"` // nil on the first hop
}

// Result is the outcome of one Request. Found is false both for unknown
// actors (listed in Missing) and for actors in different components.
type Result struct {
	RequestID  string   `json:"request_id"`
	Kind       Kind     `json:"kind"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Found      bool     `json:"found"`
	Cost       *float64 `json:"cost,omitempty"`
	Hops       []Hop    `json:"hops,omitempty"`
	Missing    []string `json:"missing,omitempty"`
	Generation uint64   `json:"generation"`
	Cached     bool     `json:"cached"`
	DurationMs int64    `json:"duration_ms"`
}

// Clone returns a copy safe to annotate per caller.
func (r *Result) Clone() *Result {
	c := *r
	return &c
}

func toHops(p graph.Path, movies *graph.MovieIndex) []Hop {
	out := make([]Hop, 0, len(p))
	for _, h := range p {
		hop := Hop{ActorID: h.Actor.ID, ActorName: h.Actor.Name, MovieID: h.MovieID}
		if m, ok := movies.Lookup(h.MovieID); ok {
			rating := m.Rating
			hop.Title = m.Title
			hop.Rating = &rating
		}
		out = append(out, hop)
	}
	return out
}
