// Package report renders graph summaries and paths as plain text.
package report

import (
	"fmt"
	"io"

	"github.com/gyaneshwarpardhi/costar/internal/graph"
)

// Size writes the node and edge counts of g.
func Size(w io.Writer, g *graph.Graph) error {
	_, err := fmt.Fprintf(w, "Nodes: %d\nEdges: %d\n", g.NodeCount(), g.EdgeCount())
	return err
}

// Histogram writes one line per bucket, in the order given.
func Histogram(w io.Writer, buckets []graph.SizeCount) error {
	for _, b := range buckets {
		var err error
		if b.Count == 1 {
			_, err = fmt.Fprintf(w, "There is 1 component of size %d.\n", b.Size)
		} else {
			_, err = fmt.Fprintf(w, "There are %d components of size %d.\n", b.Count, b.Size)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Path writes the start actor, then one arrow line per hop naming the movie
// and its rating. A nil path is reported as missing.
func Path(w io.Writer, p graph.Path, movies *graph.MovieIndex) error {
	if len(p) == 0 {
		_, err := fmt.Fprintln(w, "There exists no path.")
		return err
	}
	if _, err := fmt.Fprintln(w, p[0].Actor.Name); err != nil {
		return err
	}
	for _, h := range p[1:] {
		title, rating := h.MovieID, "?"
		if m, ok := movies.Lookup(h.MovieID); ok {
			title, rating = m.Title, fmt.Sprintf("%.1f", m.Rating)
		}
		if _, err := fmt.Fprintf(w, "===[ %s (%s) ] ===> %s\n", title, rating, h.Actor.Name); err != nil {
			return err
		}
	}
	return nil
}

// BestPath writes a best-rated path followed by its total weight.
func BestPath(w io.Writer, res graph.BestResult, found bool, movies *graph.MovieIndex) error {
	if !found {
		return Path(w, nil, movies)
	}
	if err := Path(w, res.Path, movies); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total weight: %.1f\n", res.Cost)
	return err
}
