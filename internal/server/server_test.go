package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/server"
	"github.com/thenoetrevino/boardsync/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	return server.NewRouter(server.NewHandler(repo), slog.New(slog.DiscardHandler))
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func createColumn(t *testing.T, h http.Handler, title string, order int) models.Column {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/columns", map[string]any{"title": title, "order": order})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Column](t, rec)
}

func createCard(t *testing.T, h http.Handler, columnID, title string, order int) models.Card {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/cards", map[string]any{
		"title": title, "column_id": columnID, "order": order,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Card](t, rec)
}

// ============================================================================
// HEALTH
// ============================================================================

func TestHealth(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[server.HealthResponse](t, rec).Status)
}

func TestHealth_StoreDown(t *testing.T) {
	t.Parallel()
	store := testutil.NewFakeStore(models.Board{})
	store.FailHealth(errors.New("disk gone"))
	h := server.NewRouter(server.NewHandler(store), slog.New(slog.DiscardHandler))

	rec := doRequest(t, h, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

// ============================================================================
// COLUMNS
// ============================================================================

func TestColumns_CRUD(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	todo := createColumn(t, h, "To Do", 0)
	done := createColumn(t, h, "Done", 1)
	assert.NotEmpty(t, todo.ID)

	rec := doRequest(t, h, http.MethodGet, "/api/columns", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	columns := decode[[]models.Column](t, rec)
	require.Len(t, columns, 2)
	assert.Equal(t, todo.ID, columns[0].ID)

	rec = doRequest(t, h, http.MethodPatch, "/api/columns/"+done.ID, map[string]any{"order": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[models.Column](t, rec).Order)

	rec = doRequest(t, h, http.MethodPatch, "/api/columns/"+todo.ID, map[string]any{"title": "Backlog", "order": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Column](t, rec)
	assert.Equal(t, "Backlog", updated.Title)
	assert.Equal(t, 1, updated.Order)

	rec = doRequest(t, h, http.MethodGet, "/api/columns/"+todo.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Backlog", decode[models.Column](t, rec).Title)

	rec = doRequest(t, h, http.MethodDelete, "/api/columns/"+todo.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/columns/"+todo.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestColumns_EmptyListIsArray(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/columns", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestColumns_Errors(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"blank title", http.MethodPost, "/api/columns", map[string]any{"title": "  "}, http.StatusBadRequest},
		{"negative order", http.MethodPost, "/api/columns", map[string]any{"title": "X", "order": -1}, http.StatusBadRequest},
		{"missing column", http.MethodGet, "/api/columns/nope", nil, http.StatusNotFound},
		{"update missing", http.MethodPatch, "/api/columns/nope", map[string]any{"order": 0}, http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/api/columns/nope", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			problem := decode[server.ProblemResponse](t, rec)
			assert.Equal(t, tt.status, problem.Status)
			assert.Equal(t, tt.path, problem.Instance)
		})
	}
}

func TestColumns_InvalidJSON(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/columns", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// CARDS
// ============================================================================

func TestCards_CRUDAndMove(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	todo := createColumn(t, h, "To Do", 0)
	done := createColumn(t, h, "Done", 1)
	a := createCard(t, h, todo.ID, "A", 0)
	createCard(t, h, todo.ID, "B", 1)

	rec := doRequest(t, h, http.MethodGet, "/api/cards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Card](t, rec), 2)

	rec = doRequest(t, h, http.MethodPatch, "/api/cards/"+a.ID, map[string]any{"column_id": done.ID, "order": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	moved := decode[models.Card](t, rec)
	assert.Equal(t, done.ID, moved.ColumnID)
	assert.Equal(t, "A", moved.Title)

	rec = doRequest(t, h, http.MethodGet, "/api/cards?column="+done.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	inDone := decode[[]models.Card](t, rec)
	require.Len(t, inDone, 1)
	assert.Equal(t, a.ID, inDone[0].ID)

	rec = doRequest(t, h, http.MethodGet, "/api/cards/"+a.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, "/api/cards/"+a.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, "/api/cards/"+a.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCards_UnknownColumn(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/cards", map[string]any{"title": "A", "column_id": "nope"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCards_DeleteColumnCascades(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	todo := createColumn(t, h, "To Do", 0)
	card := createCard(t, h, todo.ID, "A", 0)

	rec := doRequest(t, h, http.MethodDelete, "/api/columns/"+todo.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/cards/"+card.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// LIFECYCLE
// ============================================================================

func TestServer_ServeAndShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.New(config.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second}, newTestRouter(t), nil)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, <-done)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv := server.New(config.ServerConfig{Addr: "127.0.0.1:0"}, newTestRouter(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
