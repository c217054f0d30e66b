// cmd/pullsolve/main.go
//
// Command-line solver.
//
//	pullsolve -f puzzle.txt        solve a puzzle file
//	pullsolve -id tower            solve a built-in puzzle
//	pullsolve < puzzle.txt         read the puzzle from stdin
//	pullsolve -list                list built-in puzzles
//
// A solved puzzle is printed step by step. The exit status is 0 when solved,
// 1 when no solution was found (or the search timed out), 2 on bad input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pullblock/internal/library"
	"github.com/robalobadob/pullblock/internal/puzzle"
	"github.com/robalobadob/pullblock/internal/render"
	"github.com/robalobadob/pullblock/internal/solver"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("pullsolve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var (
		file    = fs.String("f", "", "puzzle file (default: stdin)")
		id      = fs.String("id", "", "built-in puzzle id")
		depth   = fs.Int("depth", solver.DefaultMaxDepth, "maximum number of pulls")
		prune   = fs.Bool("prune", false, "skip already explored states")
		quiet   = fs.Bool("quiet", false, "print only the summary line")
		list    = fs.Bool("list", false, "list built-in puzzles and exit")
		timeout = fs.Duration("timeout", 0, "give up after this long (0 = no limit)")
		verbose = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *list || *id != "" {
		if err := library.Init(); err != nil {
			log.Error().Err(err).Msg("load puzzle library")
			return 2
		}
	}
	if *list {
		for _, p := range library.Default().List() {
			fmt.Fprintf(stdout, "%-16s %dx%d, %d pieces\n", p.ID, p.Model.Width, p.Model.Height, p.Model.NumPieces())
		}
		return 0
	}

	m, err := loadPuzzle(*file, *id, stdin)
	if err != nil {
		log.Error().Err(err).Msg("load puzzle")
		return 2
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	res := solver.New(m, solver.WithMaxDepth(*depth), solver.WithPruning(*prune)).Solve(ctx)
	log.Debug().
		Str("status", res.Status.String()).
		Int("attempts", res.Attempts).
		Dur("took", res.Duration).
		Msg("search finished")

	if *quiet {
		fmt.Fprintf(stdout, "%s in %d steps, %d moves checked\n", res.Status, len(res.Moves), res.Attempts)
	} else if err := render.WriteReplay(stdout, m, res); err != nil {
		log.Error().Err(err).Msg("write output")
		return 2
	}
	if res.Status != solver.Solved {
		return 1
	}
	return 0
}

func loadPuzzle(file, id string, stdin io.Reader) (*puzzle.Model, error) {
	switch {
	case id != "":
		p, ok := library.Default().ByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown puzzle id %q", id)
		}
		return p.Model, nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		return puzzle.Parse(string(b))
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		if len(b) == 0 {
			return nil, errors.New("empty input")
		}
		return puzzle.Parse(string(b))
	}
}
