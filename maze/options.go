package maze

import (
	"fmt"
	"strings"
)

// Strategy selects how the spanning phase picks walls to tear down.
type Strategy string

const (
	// StrategyRejection draws random cell/direction pairs and rejects the ones
	// that leave the grid, touch a guarded opening or would close a cycle.
	StrategyRejection Strategy = "rejection"

	// StrategyKruskal shuffles every interior wall once and tears down the
	// ones joining separate components, in shuffled order.
	StrategyKruskal Strategy = "kruskal"
)

const (
	// MinSize is the smallest grid side with distinct entrance and exit cells.
	MinSize = 2
	// MaxSize is the largest grid side New accepts unless WithMaxSize lowers it.
	MaxSize = 512
)

// ParseStrategy maps a strategy name to a Strategy. The empty string selects
// StrategyRejection.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", StrategyRejection:
		return StrategyRejection, nil
	case StrategyKruskal:
		return StrategyKruskal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Options configures maze generation. Use the With* helpers with New.
type Options struct {
	seed         int64
	seeded       bool
	strategy     Strategy
	iterationCap int
	verify       bool
	maxSize      int
}

// Option mutates Options.
type Option func(*Options)

// WithSeed fixes the random seed. Two mazes built with the same size, seed
// and strategy are identical cell for cell.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithStrategy selects the spanning strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.strategy = s
	}
}

// WithIterationCap bounds the number of draws StrategyRejection may spend.
// When the cap is hit the remaining components are joined with a shuffled
// pass over the interior walls. Zero or less disables the cap.
func WithIterationCap(n int) Option {
	return func(o *Options) {
		o.iterationCap = n
	}
}

// WithVerify makes New run Validate on the finished maze.
func WithVerify(verify bool) Option {
	return func(o *Options) {
		o.verify = verify
	}
}

// WithMaxSize lowers the largest accepted grid side. Values outside
// [MinSize, MaxSize] are ignored.
func WithMaxSize(n int) Option {
	return func(o *Options) {
		if n >= MinSize && n <= MaxSize {
			o.maxSize = n
		}
	}
}

func defaultOptions() Options {
	return Options{
		strategy: StrategyRejection,
		maxSize:  MaxSize,
	}
}
