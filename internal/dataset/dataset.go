// Package dataset reads the tab-separated movie and actor snapshots the
// graph is built from.
//
//	movies.tsv: id, title, rating, votes
//	actors.tsv: id, name, movie id, movie id, ...
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gyaneshwarpardhi/costar/internal/graph"
)

// ErrMalformed is matched by every ParseError.
var ErrMalformed = errors.New("malformed record")

// ParseError locates a record that could not be turned into a typed value.
type ParseError struct {
	File  string
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	if e.Field == "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

// Snapshot is one full, parsed dataset.
type Snapshot struct {
	Movies []graph.Movie
	Actors []graph.ActorRecord
}

// Load reads both files of a snapshot.
func Load(moviesPath, actorsPath string) (*Snapshot, error) {
	movies, err := readFile(moviesPath, ReadMovies)
	if err != nil {
		return nil, err
	}
	actors, err := readFile(actorsPath, ReadActors)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Movies: movies, Actors: actors}, nil
}

func readFile[T any](path string, read func(io.Reader, string) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()
	return read(f, path)
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// ReadMovies parses movie rows. name labels errors.
func ReadMovies(r io.Reader, name string) ([]graph.Movie, error) {
	cr := newReader(r)
	var out []graph.Movie
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, &ParseError{File: name, Err: err}
		}
		line, _ := cr.FieldPos(0)
		m, perr := parseMovie(row)
		if perr != nil {
			perr.File, perr.Line = name, line
			return nil, perr
		}
		out = append(out, m)
	}
}

func parseMovie(row []string) (graph.Movie, *ParseError) {
	if len(row) < 4 {
		return graph.Movie{}, &ParseError{Err: fmt.Errorf("want 4 fields, got %d", len(row))}
	}
	id := strings.TrimSpace(row[0])
	if id == "" {
		return graph.Movie{}, &ParseError{Field: "id", Err: errors.New("empty")}
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return graph.Movie{}, &ParseError{Field: "rating", Err: err}
	}
	if rating < 0 || rating > graph.MaxRating {
		return graph.Movie{}, &ParseError{Field: "rating", Err: fmt.Errorf("%v outside [0, %v]", rating, graph.MaxRating)}
	}
	votes, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return graph.Movie{}, &ParseError{Field: "votes", Err: err}
	}
	if votes < 0 {
		return graph.Movie{}, &ParseError{Field: "votes", Err: fmt.Errorf("negative count %d", votes)}
	}
	return graph.Movie{ID: id, Title: row[1], Rating: rating, Votes: votes}, nil
}

// ReadActors parses actor rows. Movie ids are kept verbatim; unknown ones are
// filtered when the graph is built.
func ReadActors(r io.Reader, name string) ([]graph.ActorRecord, error) {
	cr := newReader(r)
	var out []graph.ActorRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, &ParseError{File: name, Err: err}
		}
		line, _ := cr.FieldPos(0)
		if len(row) < 2 {
			return nil, &ParseError{File: name, Line: line, Err: fmt.Errorf("want at least 2 fields, got %d", len(row))}
		}
		id := strings.TrimSpace(row[0])
		if id == "" {
			return nil, &ParseError{File: name, Line: line, Field: "id", Err: errors.New("empty")}
		}
		rec := graph.ActorRecord{Actor: graph.Actor{ID: id, Name: row[1]}}
		for _, mid := range row[2:] {
			if mid = strings.TrimSpace(mid); mid != "" {
				rec.MovieIDs = append(rec.MovieIDs, mid)
			}
		}
		out = append(out, rec)
	}
}
