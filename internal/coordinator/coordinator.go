// Package coordinator keeps the in-memory board and the durable store in
// step. Local changes are applied first so the UI never waits on the network;
// persistence follows, and any doubt about the result is settled by fetching
// the whole board again.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/boardsync/internal/board"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/remote"
	"github.com/thenoetrevino/boardsync/internal/reorder"
)

// DefaultMaxConcurrentWrites bounds the writes in flight for one operation
const DefaultMaxConcurrentWrites = 8

// reconcileTimeout bounds a reload issued after the caller's context is done
const reconcileTimeout = 30 * time.Second

// Coordinator is the only writer of the board store.
type Coordinator struct {
	remote  remote.Store
	board   *board.Store
	logger  *slog.Logger
	metrics *Metrics

	maxWrites int

	// mu makes compute-then-apply atomic with respect to other local mutations
	mu    sync.Mutex
	locks *scopeLocks
}

// Option is a functional option for configuring a Coordinator
type Option func(*Coordinator)

// WithLogger sets the logger used for failures
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithMaxConcurrentWrites bounds the writes in flight for one operation.
// Values below 1 are ignored.
func WithMaxConcurrentWrites(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.maxWrites = n
		}
	}
}

// WithMetrics shares a metrics instance, e.g. with the server
func WithMetrics(m *Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// New creates a Coordinator over the given remote store and board
func New(store remote.Store, b *board.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		remote:    store,
		board:     b,
		logger:    slog.Default(),
		metrics:   NewMetrics(),
		maxWrites: DefaultMaxConcurrentWrites,
		locks:     newScopeLocks(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Board returns the store the coordinator writes to
func (c *Coordinator) Board() *board.Store {
	return c.board
}

// Metrics returns the coordinator's counters
func (c *Coordinator) Metrics() *Metrics {
	return c.metrics
}

// Result describes what a drop did
type Result struct {
	NoOp         bool
	Changed      int // entities whose order or column changed locally
	WritesFailed int
	Reconciled   bool // a refetch replaced the local board
}

// ============================================================================
// FETCH
// ============================================================================

// Load fetches columns and cards and replaces the board wholesale. On
// failure the board is left untouched and a *models.FetchError is returned.
func (c *Coordinator) Load(ctx context.Context) error {
	c.metrics.Fetches.Add(1)

	columns, cards, err := c.fetch(ctx)
	if err != nil {
		c.metrics.FetchFailures.Add(1)
		c.logger.Error("failed to load board", "operation", "load", "error", err)
		return &models.FetchError{Err: err}
	}

	c.mu.Lock()
	c.board.ReplaceAll(columns, cards)
	c.mu.Unlock()

	c.logger.Debug("board loaded", "columns", len(columns), "cards", len(cards))
	return nil
}

// Reload discards local state in favour of the durable store
func (c *Coordinator) Reload(ctx context.Context) error {
	c.metrics.Reconciliations.Add(1)
	return c.Load(ctx)
}

func (c *Coordinator) fetch(ctx context.Context) ([]models.Column, []models.Card, error) {
	if hc, ok := c.remote.(remote.HealthChecker); ok {
		if err := hc.Health(ctx); err != nil {
			return nil, nil, fmt.Errorf("health check: %w", err)
		}
	}

	var (
		columns []models.Column
		cards   []models.Card
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		columns, err = c.remote.ListColumns(gctx)
		if err != nil {
			return fmt.Errorf("listing columns: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cards, err = c.remote.ListCards(gctx)
		if err != nil {
			return fmt.Errorf("listing cards: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return columns, cards, nil
}

// ============================================================================
// REORDER
// ============================================================================

// Staged is a reorder that has been applied to the board but not persisted
type Staged struct {
	r       models.Reassignment
	changes []models.Change
}

// NoOp reports whether staging changed nothing
func (s Staged) NoOp() bool {
	return len(s.changes) == 0
}

// Drop commits a finished drag. The new ordering is applied to the board
// immediately, then one write per changed entity is issued concurrently.
// Any failed write, and every cross-column move, ends with a Reload. Only a
// failed reconciliation fetch is returned as an error.
func (c *Coordinator) Drop(ctx context.Context, dragged models.Ref, hover *models.Ref) (Result, error) {
	return c.Commit(ctx, c.Stage(dragged, hover))
}

// Stage computes the reassignment for a drop and applies it to the board
// without touching the durable store. It never blocks on the network, so
// the UI can call it from its update loop and Commit in the background.
func (c *Coordinator) Stage(dragged models.Ref, hover *models.Ref) Staged {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := reorder.Compute(dragged, hover, c.board.Snapshot())
	return Staged{r: r, changes: c.board.ApplyReassignment(r)}
}

// Commit persists a staged reorder. See Drop.
func (c *Coordinator) Commit(ctx context.Context, s Staged) (Result, error) {
	if s.NoOp() {
		c.metrics.NoOps.Add(1)
		return Result{NoOp: true}, nil
	}
	c.metrics.Reorders.Add(1)

	result := Result{Changed: len(s.changes)}

	unlock, err := c.locks.Lock(ctx, s.r.Scopes()...)
	if err != nil {
		// The staged order is on screen but will never be written
		result.Reconciled = true
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reconcileTimeout)
		defer cancel()
		return result, c.reconcile(rctx, fmt.Errorf("waiting for pending writes: %w", err))
	}
	defer unlock()

	result.WritesFailed = c.persist(ctx, "reorder", s.changes)

	if result.WritesFailed > 0 || s.r.CrossColumn() {
		result.Reconciled = true
		if err := c.Reload(ctx); err != nil {
			return result, err
		}
	}
	return result, nil
}

// persist writes every change concurrently, waits for all of them and
// returns the number that failed. Values are read from the board at write
// time, so a newer local ordering always wins over the one that queued the
// write.
func (c *Coordinator) persist(ctx context.Context, operation string, changes []models.Change) int {
	var (
		g      errgroup.Group
		failed atomic.Int32
	)
	g.SetLimit(c.maxWrites)

	for _, ch := range changes {
		g.Go(func() error {
			if err := c.writePosition(ctx, ch.Ref); err != nil {
				failed.Add(1)
				c.metrics.WriteFailures.Add(1)
				c.logger.Error("failed to persist position",
					"operation", operation,
					"entity", ch.Ref.String(),
					"error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return int(failed.Load())
}

func (c *Coordinator) writePosition(ctx context.Context, ref models.Ref) error {
	switch ref.Kind {
	case models.KindColumn:
		col, ok := c.board.Column(ref.ID)
		if !ok {
			return nil
		}
		c.metrics.Writes.Add(1)
		_, err := c.remote.UpdateColumn(ctx, col.ID, remote.ColumnPatch{Order: remote.Order(col.Order)})
		return err
	case models.KindCard:
		card, ok := c.board.Card(ref.ID)
		if !ok {
			return nil
		}
		c.metrics.Writes.Add(1)
		_, err := c.remote.UpdateCard(ctx, card.ID, remote.CardPatch{
			ColumnID: remote.ColumnID(card.ColumnID),
			Order:    remote.Order(card.Order),
		})
		return err
	default:
		return fmt.Errorf("unknown entity kind %v", ref.Kind)
	}
}

// reconcile reloads after a failed multi-entity operation and folds any
// fetch error into cause.
func (c *Coordinator) reconcile(ctx context.Context, cause error) error {
	if err := c.Reload(ctx); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}
