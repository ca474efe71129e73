package httpstore_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/boardsync/internal/board"
	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/coordinator"
	"github.com/thenoetrevino/boardsync/internal/database"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/remote"
	"github.com/thenoetrevino/boardsync/internal/remote/httpstore"
	"github.com/thenoetrevino/boardsync/internal/server"
	"github.com/thenoetrevino/boardsync/internal/testutil"
)

func testRemoteConfig(baseURL string) config.RemoteConfig {
	return config.RemoteConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Multiplier:      2,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
	}
}

// newBackedStore serves a fresh sqlite repository through the real router
func newBackedStore(t *testing.T) (*httpstore.Store, *database.Repository) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	ts := httptest.NewServer(server.NewRouter(server.NewHandler(repo), slog.New(slog.DiscardHandler)))
	t.Cleanup(ts.Close)
	return httpstore.New(testRemoteConfig(ts.URL), nil), repo
}

// ============================================================================
// ROUND TRIP
// ============================================================================

func TestStore_ColumnsAndCards(t *testing.T) {
	t.Parallel()
	store, _ := newBackedStore(t)
	ctx := context.Background()

	todo, err := store.CreateColumn(ctx, remote.CreateColumnRequest{Title: "To Do", Order: 0})
	require.NoError(t, err)
	done, err := store.CreateColumn(ctx, remote.CreateColumnRequest{Title: "Done", Order: 1})
	require.NoError(t, err)

	card, err := store.CreateCard(ctx, remote.CreateCardRequest{Title: "Write docs", ColumnID: todo.ID})
	require.NoError(t, err)
	assert.Equal(t, "Write docs", card.Title)

	moved, err := store.UpdateCard(ctx, card.ID, remote.CardPatch{
		ColumnID: remote.ColumnID(done.ID),
		Order:    remote.Order(0),
	})
	require.NoError(t, err)
	assert.Equal(t, done.ID, moved.ColumnID)

	inDone, err := store.ListCardsByColumn(ctx, done.ID)
	require.NoError(t, err)
	require.Len(t, inDone, 1)
	assert.Equal(t, card.ID, inDone[0].ID)

	renamed, err := store.UpdateColumn(ctx, todo.ID, remote.ColumnPatch{Title: remote.Title("Backlog")})
	require.NoError(t, err)
	assert.Equal(t, "Backlog", renamed.Title)

	got, err := store.GetColumn(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backlog", got.Title)

	gotCard, err := store.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, done.ID, gotCard.ColumnID)

	require.NoError(t, store.DeleteCard(ctx, card.ID))
	require.NoError(t, store.DeleteColumn(ctx, todo.ID))

	columns, err := store.ListColumns(ctx)
	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.Equal(t, done.ID, columns[0].ID)

	cards, err := store.ListCards(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards)

	assert.NoError(t, store.Health(ctx))
}

func TestStore_ErrorTranslation(t *testing.T) {
	t.Parallel()
	store, _ := newBackedStore(t)
	ctx := context.Background()

	_, err := store.GetCard(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = store.DeleteColumn(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = store.CreateColumn(ctx, remote.CreateColumnRequest{Title: "   "})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = store.CreateCard(ctx, remote.CreateCardRequest{Title: "A", ColumnID: "missing"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStore_CoordinatorEndToEnd(t *testing.T) {
	t.Parallel()
	store, repo := newBackedStore(t)
	ctx := context.Background()

	seeded, err := database.SeedDefaultColumns(ctx, repo.DB())
	require.NoError(t, err)
	require.True(t, seeded)

	coord := coordinator.New(store, board.NewStore())
	require.NoError(t, coord.Load(ctx))

	cols := coord.Board().Columns()
	require.Len(t, cols, 3)

	// Drag "To Do" onto "Done"
	result, err := coord.Drop(ctx, models.ColumnRef(cols[0].ID), &models.Ref{Kind: models.KindColumn, ID: cols[2].ID})
	require.NoError(t, err)
	assert.False(t, result.NoOp)
	assert.Zero(t, result.WritesFailed)

	persisted, err := repo.ListColumns(ctx)
	require.NoError(t, err)
	titles := make([]string, 0, len(persisted))
	for _, c := range persisted {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"In Progress", "Done", "To Do"}, titles)

	card, err := coord.CreateCard(ctx, cols[1].ID, "Ship it")
	require.NoError(t, err)

	result, err = coord.Drop(ctx, models.CardRef(card.ID), &models.Ref{Kind: models.KindColumn, ID: cols[2].ID})
	require.NoError(t, err)
	assert.True(t, result.Reconciled)

	stored, err := repo.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, cols[2].ID, stored.ColumnID)
}

// ============================================================================
// RESILIENCE
// ============================================================================

func TestStore_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"c1","title":"To Do","order":0}]`))
	}))
	t.Cleanup(ts.Close)

	store := httpstore.New(testRemoteConfig(ts.URL), nil)

	columns, err := store.ListColumns(context.Background())
	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.Equal(t, "To Do", columns[0].Title)
	assert.EqualValues(t, 3, hits.Load())
}

func TestStore_ExhaustedRetriesAreUnavailable(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"about:blank","title":"Internal Server Error","status":500,"detail":"db locked"}`))
	}))
	t.Cleanup(ts.Close)

	store := httpstore.New(testRemoteConfig(ts.URL), nil)

	_, err := store.UpdateCard(context.Background(), "k1", remote.CardPatch{Order: remote.Order(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnavailable)
	assert.Contains(t, err.Error(), "db locked")
	assert.EqualValues(t, 3, hits.Load())
}

func TestStore_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(ts.Close)

	store := httpstore.New(testRemoteConfig(ts.URL), nil)

	err := store.DeleteCard(context.Background(), "k1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.EqualValues(t, 1, hits.Load())
}

func TestStore_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	cfg := testRemoteConfig(ts.URL)
	cfg.Retry.MaxAttempts = 1
	store := httpstore.New(cfg, nil)
	ctx := context.Background()

	for range cfg.CircuitBreaker.MaxFailures {
		_, err := store.ListCards(ctx)
		require.ErrorIs(t, err, models.ErrUnavailable)
	}
	require.Error(t, store.Client().BreakerState())

	_, err := store.ListCards(ctx)
	assert.ErrorIs(t, err, models.ErrUnavailable)
	assert.EqualValues(t, cfg.CircuitBreaker.MaxFailures, hits.Load(), "open breaker must not reach the server")
}

func TestStore_NetworkFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	cfg := testRemoteConfig(url)
	cfg.Retry.MaxAttempts = 1
	store := httpstore.New(cfg, nil)

	err := store.Health(context.Background())
	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestStore_CancelledContext(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(ts.Close)

	cfg := testRemoteConfig(ts.URL)
	cfg.Retry.InitialInterval = time.Hour
	cfg.Retry.MaxInterval = time.Hour
	store := httpstore.New(cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := store.ListColumns(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestStore_SendsBearerToken(t *testing.T) {
	t.Parallel()

	var auth atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	cfg := testRemoteConfig(ts.URL)
	cfg.Token = "s3cr3t"
	store := httpstore.New(cfg, nil)

	require.NoError(t, store.Health(context.Background()))
	assert.Equal(t, "Bearer s3cr3t", auth.Load())
}
