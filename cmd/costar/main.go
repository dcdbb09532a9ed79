// Command costar builds the actor graph from a dataset snapshot once and
// prints its size, component histogram and the shortest and best-rated
// paths between the given actor pairs.
//
//	costar -movies movies.tsv -actors actors.tsv nm4608165:nm0880521 nm0002000:nm1898448
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gyaneshwarpardhi/costar/internal/config"
	"github.com/gyaneshwarpardhi/costar/internal/dataset"
	"github.com/gyaneshwarpardhi/costar/internal/engine"
	"github.com/gyaneshwarpardhi/costar/internal/graph"
	"github.com/gyaneshwarpardhi/costar/internal/logging"
	"github.com/gyaneshwarpardhi/costar/internal/report"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath    = flag.String("config", os.Getenv("COSTAR_CONFIG"), "Optional YAML config supplying dataset paths and logging")
		moviesPath = flag.String("movies", "", "Path to movies.tsv (overrides config)")
		actorsPath = flag.String("actors", "", "Path to actors.tsv (overrides config)")
		skipComps  = flag.Bool("no-components", false, "Skip the component histogram")
	)
	flag.Parse()

	cfg := &config.AppConfig{Version: "cli"}
	if *cfgPath != "" {
		loader, err := config.NewLoader(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loader.Config()
	}
	config.ApplyDefaults(cfg)
	if *moviesPath != "" {
		cfg.Dataset.Movies = *moviesPath
	}
	if *actorsPath != "" {
		cfg.Dataset.Actors = *actorsPath
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewWithWriter(os.Stderr, cfg.Logging).With("component", "cli")

	pairs, err := parsePairs(flag.Args())
	if err != nil {
		logger.Error("invalid actor pair", "err", err)
		os.Exit(2)
	}

	data, err := dataset.Load(cfg.Dataset.Movies, cfg.Dataset.Actors)
	if err != nil {
		logger.Error("failed to load dataset", "err", err)
		os.Exit(1)
	}
	snap := engine.BuildSnapshot(1, data)
	logger.Info("graph built", "nodes", snap.Graph.NodeCount(), "edges", snap.Graph.EdgeCount(), "build", snap.BuildDuration.String())

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if err := run(out, snap, pairs, !*skipComps); err != nil {
		logger.Error("write report", "err", err)
		os.Exit(1)
	}
}

func run(out *bufio.Writer, snap *engine.Snapshot, pairs [][2]string, components bool) error {
	if err := report.Size(out, snap.Graph); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if components {
		if err := report.Histogram(out, snap.Components.Histogram()); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	for _, pair := range pairs {
		p, _ := graph.ShortestPath(snap.Graph, pair[0], pair[1])
		fmt.Fprintln(out, "Shortest path:")
		if err := report.Path(out, p, snap.Movies); err != nil {
			return err
		}
		fmt.Fprintln(out)

		res, ok := graph.BestPath(snap.Graph, snap.Movies, pair[0], pair[1])
		fmt.Fprintln(out, "Best path:")
		if err := report.BestPath(out, res, ok, snap.Movies); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return nil
}

// parsePairs reads "from:to" actor id pairs.
func parsePairs(args []string) ([][2]string, error) {
	pairs := make([][2]string, 0, len(args))
	for _, arg := range args {
		from, to, ok := strings.Cut(arg, ":")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("%q: want from:to", arg)
		}
		pairs = append(pairs, [2]string{from, to})
	}
	return pairs, nil
}
