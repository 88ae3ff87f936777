package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-maze/catalog"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	defaultShareTTL = 7 * 24 * time.Hour

	claimMazeID   = "maze_id"
	claimSize     = "size"
	claimSeed     = "seed"
	claimStrategy = "strategy"
)

var (
	ErrInvalidShareToken = errors.New("invalid share token")
	ErrMissingDependency = errors.New("maze service dependency missing")
)

var _ i.MazeService = &MazeService{}

// MazeService generates mazes, keeps their records and serves renders.
type MazeService struct {
	repo            i.MazeRepo
	cache           i.RenderCache
	tokenizer       i.Tokenizer
	logger          i.Logger
	defaultSize     int
	maxSize         int
	defaultStrategy maze.Strategy
	iterationCap    int
	verify          bool
	renderConfig    render.Config
	shareTTL        time.Duration
	newID           func() uuid.UUID
	newSeed         func() int64
	inflight        singleflight.Group
}

// Config holds the dependencies and settings of a MazeService.
type Config struct {
	Repo            i.MazeRepo
	Cache           i.RenderCache
	Tokenizer       i.Tokenizer
	Logger          i.Logger
	DefaultSize     int           // Used when a request leaves the size at zero.
	MaxSize         int           // Largest side accepted from callers.
	DefaultStrategy string        // Used when a request names no strategy.
	IterationCap    int           // Draw cap for the rejection strategy; 0 disables it.
	Verify          bool          // Run maze.Validate on every generated maze.
	RenderConfig    render.Config // Style for SVG and PNG output.
	ShareTTL        time.Duration // Lifetime of share tokens.
}

// NewMazeService creates a MazeService from c.
func NewMazeService(c *Config) (*MazeService, error) {
	if c.Repo == nil || c.Cache == nil || c.Tokenizer == nil || c.Logger == nil {
		return nil, ErrMissingDependency
	}

	strategy, err := maze.ParseStrategy(c.DefaultStrategy)
	if err != nil {
		return nil, err
	}
	if err := c.RenderConfig.Validate(); err != nil {
		return nil, err
	}

	maxSize := c.MaxSize
	if maxSize < maze.MinSize || maxSize > maze.MaxSize {
		maxSize = maze.MaxSize
	}
	if c.DefaultSize < maze.MinSize || c.DefaultSize > maxSize {
		return nil, &maze.SizeError{Size: c.DefaultSize, Min: maze.MinSize, Max: maxSize}
	}

	shareTTL := c.ShareTTL
	if shareTTL <= 0 {
		shareTTL = defaultShareTTL
	}

	return &MazeService{
		repo:            c.Repo,
		cache:           c.Cache,
		tokenizer:       c.Tokenizer,
		logger:          c.Logger,
		defaultSize:     c.DefaultSize,
		maxSize:         maxSize,
		defaultStrategy: strategy,
		iterationCap:    c.IterationCap,
		verify:          c.Verify,
		renderConfig:    c.RenderConfig,
		shareTTL:        shareTTL,
		newID:           uuid.New,
		newSeed:         func() int64 { return time.Now().UnixNano() },
	}, nil
}

// Create generates a maze and stores its record.
func (s *MazeService) Create(req i.CreateMazeRequest) (*catalog.Record, error) {
	size := req.Size
	if size == 0 {
		size = s.defaultSize
	}

	strategy := s.defaultStrategy
	if req.Strategy != "" {
		var err error
		if strategy, err = maze.ParseStrategy(req.Strategy); err != nil {
			return nil, err
		}
	}

	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	m, err := maze.New(size,
		maze.WithSeed(seed),
		maze.WithStrategy(strategy),
		maze.WithIterationCap(s.iterationCap),
		maze.WithVerify(s.verify),
		maze.WithMaxSize(s.maxSize),
	)
	if err != nil {
		return nil, err
	}

	record, err := catalog.NewRecord(catalog.RecordConfig{
		ID:           s.newID(),
		Maze:         m,
		IterationCap: s.iterationCap,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(record); err != nil {
		s.logger.Error("saving maze record", logger.Fields{"id": record.ID, "error": err})
		return nil, err
	}

	stats := m.Stats()
	s.logger.Info("maze generated", logger.Fields{
		"id":         record.ID,
		"size":       size,
		"strategy":   strategy,
		"iterations": stats.Iterations,
		"rejected":   stats.Rejected,
		"capReached": stats.CapReached,
	})
	return record, nil
}

// Record returns the stored record for id.
func (s *MazeService) Record(id uuid.UUID) (*catalog.Record, error) {
	return s.repo.ByID(id)
}

// Render draws the maze described by record in format. Results are cached
// per record, format and style. Concurrent misses for one key share a single
// render in this process, and the cache lock serialises it across instances.
func (s *MazeService) Render(ctx context.Context, record *catalog.Record, format render.Format) ([]byte, error) {
	key := s.renderKey(record.ID, format)

	if out, ok := s.cached(ctx, key); ok {
		return out, nil
	}

	v, err, _ := s.inflight.Do(key, func() (any, error) {
		return s.renderMiss(ctx, record, format, key)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *MazeService) renderMiss(ctx context.Context, record *catalog.Record, format render.Format, key string) ([]byte, error) {
	unlock, err := s.cache.Lock(ctx, key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warning("render lock unavailable, rendering without it", logger.Fields{"key": key, "error": err})
	} else {
		defer unlock()
		if out, ok := s.cached(ctx, key); ok {
			return out, nil
		}
	}

	m, err := record.Generate(maze.WithVerify(s.verify))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, m, format, s.renderConfig); err != nil {
		return nil, err
	}
	out := buf.Bytes()

	if err := s.cache.Set(ctx, key, out); err != nil {
		s.logger.Warning("caching render", logger.Fields{"key": key, "error": err})
	}
	s.logger.Debug("maze rendered", logger.Fields{"id": record.ID, "format": format, "bytes": len(out)})
	return out, nil
}

// Share returns a signed token that resolves to the record for id.
func (s *MazeService) Share(id uuid.UUID) (string, error) {
	record, err := s.repo.ByID(id)
	if err != nil {
		return "", err
	}

	return s.tokenizer.Generate(map[string]any{
		claimMazeID:   record.ID.String(),
		claimSize:     record.Size,
		claimSeed:     strconv.FormatInt(record.Seed, 10),
		claimStrategy: record.Strategy,
	}, s.shareTTL)
}

// Resolve verifies a share token and returns the record it names.
func (s *MazeService) Resolve(token string) (*catalog.Record, error) {
	claims, err := s.tokenizer.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShareToken, err)
	}

	rawID, _ := claims[claimMazeID].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad %s claim", ErrInvalidShareToken, claimMazeID)
	}

	record, err := s.repo.ByID(id)
	if err != nil {
		return nil, err
	}

	if !claimsMatch(claims, record) {
		return nil, fmt.Errorf("%w: claims do not match maze %s", ErrInvalidShareToken, id)
	}
	return record, nil
}

func (s *MazeService) cached(ctx context.Context, key string) ([]byte, bool) {
	out, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warning("reading render cache", logger.Fields{"key": key, "error": err})
		return nil, false
	}
	return out, ok
}

func (s *MazeService) renderKey(id uuid.UUID, format render.Format) string {
	return fmt.Sprintf("%s:%s:%g:%d", id, format, s.renderConfig.LineWidth, s.renderConfig.CellSize)
}

func claimsMatch(claims map[string]any, record *catalog.Record) bool {
	switch size := claims[claimSize].(type) {
	case float64:
		if int(size) != record.Size {
			return false
		}
	case int:
		if size != record.Size {
			return false
		}
	default:
		return false
	}
	seed, _ := claims[claimSeed].(string)
	if seed != strconv.FormatInt(record.Seed, 10) {
		return false
	}
	strategy, _ := claims[claimStrategy].(string)
	return strategy == record.Strategy
}
