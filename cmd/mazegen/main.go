// Command mazegen generates a random perfect maze and writes it as ASCII,
// SVG or PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/render"
)

// ExitError carries the process exit code for a failure.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type options struct {
	size         int
	seed         int64
	seeded       bool
	format       render.Format
	out          string
	strategy     maze.Strategy
	lineWidth    float64
	cellSize     int
	verify       bool
	iterationCap int
	stats        bool
}

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args, generates the maze and writes it to stdout or -out.
func run(stdout, stderr io.Writer, args []string) error {
	opts, shouldExit, err := parse(args, stderr)
	if err != nil || shouldExit {
		return err
	}

	genOpts := []maze.Option{
		maze.WithStrategy(opts.strategy),
		maze.WithVerify(opts.verify),
		maze.WithIterationCap(opts.iterationCap),
	}
	if opts.seeded {
		genOpts = append(genOpts, maze.WithSeed(opts.seed))
	}

	m, err := maze.New(opts.size, genOpts...)
	if err != nil {
		if errors.Is(err, maze.ErrInvalidSize) {
			return &ExitError{Code: 2, Message: err.Error()}
		}
		return err
	}

	if opts.stats {
		l, err := logger.New("MAZEGEN", config.ColorCyan, stderr)
		if err != nil {
			return err
		}
		s := m.Stats()
		l.Info("maze generated", logger.Fields{
			"size":       m.Size(),
			"seed":       m.Seed(),
			"strategy":   m.Strategy(),
			"iterations": s.Iterations,
			"rejected":   s.Rejected,
			"passages":   s.Passages,
			"capReached": s.CapReached,
		})
	}

	style := render.Config{LineWidth: opts.lineWidth, CellSize: opts.cellSize}
	if opts.out == "" {
		return render.Render(stdout, m, opts.format, style)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := render.Render(f, m, opts.format, style); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// parse turns command-line arguments into options. Defaults come from the
// environment via config.Envs.
func parse(args []string, output io.Writer) (*options, bool, error) {
	flagSet := flag.NewFlagSet("mazegen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mazegen - generate a random perfect maze.

Usage:
  mazegen [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	sizeFlag := flagSet.Int("size", config.Envs.MazeSize, "Cells per side.")
	seedFlag := flagSet.Int64("seed", 0, "Random seed. Omitted, one is picked from the clock.")
	formatFlag := flagSet.String("format", "ascii", "Output format: 'ascii', 'svg' or 'png'.")
	outFlag := flagSet.String("out", "", "Output file. Empty writes to stdout.")
	strategyFlag := flagSet.String("strategy", config.Envs.MazeStrategy, "Spanning strategy: 'rejection' or 'kruskal'.")
	lineWidthFlag := flagSet.Float64("line-width", config.Envs.LineWidth, "Wall stroke width in pixels (svg, png).")
	cellSizeFlag := flagSet.Int("cell-size", config.Envs.CellSize, "Cell side in pixels (svg, png).")
	verifyFlag := flagSet.Bool("verify", config.Envs.MazeVerify, "Check the perfect-maze invariants after generation.")
	capFlag := flagSet.Int("iteration-cap", config.Envs.MazeIterationCap, "Draw cap for the rejection strategy. 0 disables it.")
	statsFlag := flagSet.Bool("stats", false, "Log generation stats to stderr.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	seeded := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seeded = true
		}
	})
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	format, err := render.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	strategy, err := maze.ParseStrategy(*strategyFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	style := render.Config{LineWidth: *lineWidthFlag, CellSize: *cellSizeFlag}
	if format != render.FormatASCII {
		if err := style.Validate(); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}

	return &options{
		size:         *sizeFlag,
		seed:         *seedFlag,
		seeded:       seeded,
		format:       format,
		out:          *outFlag,
		strategy:     strategy,
		lineWidth:    *lineWidthFlag,
		cellSize:     *cellSizeFlag,
		verify:       *verifyFlag,
		iterationCap: *capFlag,
		stats:        *statsFlag,
	}, false, nil
}
