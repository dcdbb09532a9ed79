package graph

// MaxRating is the top of the rating scale. Edge costs are measured as the
// distance from it.
const MaxRating = 10.0

// Movie is the metadata of a single film. It is immutable once loaded.
type Movie struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Votes  int     `json:"votes"`
}

// MovieIndex maps movie id → Movie. It is read-only after construction and
// safe for concurrent use.
type MovieIndex struct {
	movies map[string]Movie
}

// NewMovieIndex indexes movies by id. A later record with an id already seen
// replaces the earlier one.
func NewMovieIndex(movies []Movie) *MovieIndex {
	idx := &MovieIndex{movies: make(map[string]Movie, len(movies))}
	for _, m := range movies {
		idx.movies[m.ID] = m
	}
	return idx
}

// Lookup returns the movie with the given id.
func (x *MovieIndex) Lookup(id string) (Movie, bool) {
	m, ok := x.movies[id]
	return m, ok
}

// Contains reports whether id is part of the metadata universe.
func (x *MovieIndex) Contains(id string) bool {
	_, ok := x.movies[id]
	return ok
}

// Len returns the number of indexed movies.
func (x *MovieIndex) Len() int {
	return len(x.movies)
}

// EdgeCost is the price of traversing an edge credited to m. Ratings outside
// [0, MaxRating] are clamped so the cost is never negative.
func EdgeCost(m Movie) float64 {
	c := MaxRating - m.Rating
	switch {
	case c < 0:
		return 0
	case c > MaxRating:
		return MaxRating
	}
	return c
}
