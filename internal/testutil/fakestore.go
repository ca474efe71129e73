package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/remote"
)

var _ remote.FullStore = (*FakeStore)(nil)

// Call records one operation received by a FakeStore
type Call struct {
	Op string // "ListColumns", "UpdateCard", ...
	ID string
}

// FakeStore is an in-memory remote.FullStore with fault injection.
// All methods are safe for concurrent use.
type FakeStore struct {
	mu      sync.Mutex
	columns []models.Column
	cards   []models.Card
	calls   []Call

	writes     int
	failNth    map[int]error
	failIDs    map[string]error
	failOnce   map[string]error
	listErr    error
	healthErr  error
	holds      map[string]chan struct{}
	holdingNow map[string]chan struct{}
}

// NewFakeStore returns a store holding a copy of b
func NewFakeStore(b models.Board) *FakeStore {
	return &FakeStore{
		columns:    slices.Clone(b.Columns),
		cards:      slices.Clone(b.Cards),
		failNth:    make(map[int]error),
		failIDs:    make(map[string]error),
		failOnce:   make(map[string]error),
		holds:      make(map[string]chan struct{}),
		holdingNow: make(map[string]chan struct{}),
	}
}

// ============================================================================
// FAULT INJECTION
// ============================================================================

// FailID makes every write touching id fail with err
func (f *FakeStore) FailID(id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failIDs[id] = err
}

// FailNextWrite makes only the next write touching id fail with err
func (f *FakeStore) FailNextWrite(id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOnce[id] = err
}

// ClearFailures removes every injected failure
func (f *FakeStore) ClearFailures() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failIDs = make(map[string]error)
	f.failOnce = make(map[string]error)
	f.failNth = make(map[int]error)
	f.listErr = nil
	f.healthErr = nil
}

// FailNthWrite makes the n-th write (1-based, counted from now on) fail with err
func (f *FakeStore) FailNthWrite(n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNth[f.writes+n] = err
}

// FailList makes ListColumns and ListCards fail with err
func (f *FakeStore) FailList(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

// FailHealth makes Health fail with err
func (f *FakeStore) FailHealth(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthErr = err
}

// Hold blocks the next write to id until the returned release func is called.
// Creates are held by op name ("CreateCard", "CreateColumn") since their id
// is assigned by the store. The started channel is closed once the write is
// blocked.
func (f *FakeStore) Hold(id string) (started <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	entered := make(chan struct{})
	f.holds[id] = gate
	f.holdingNow[id] = entered
	var once sync.Once
	return entered, func() { once.Do(func() { close(gate) }) }
}

// ============================================================================
// INSPECTION
// ============================================================================

// Calls returns every call received so far, in arrival order
func (f *FakeStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Writes returns only the mutating calls
func (f *FakeStore) Writes() []Call {
	return slices.DeleteFunc(f.Calls(), func(c Call) bool {
		switch c.Op {
		case "ListColumns", "ListCards", "GetColumn", "GetCard", "ListCardsByColumn", "Health":
			return true
		}
		return false
	})
}

// Board returns a copy of the durable state
func (f *FakeStore) Board() models.Board {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.Board{Columns: slices.Clone(f.columns), Cards: slices.Clone(f.cards)}
}

// ============================================================================
// remote.Store
// ============================================================================

func (f *FakeStore) Health(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "Health"})
	return f.healthErr
}

func (f *FakeStore) ListColumns(ctx context.Context) ([]models.Column, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "ListColumns"})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.columns), nil
}

func (f *FakeStore) ListCards(ctx context.Context) ([]models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "ListCards"})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.cards), nil
}

func (f *FakeStore) GetColumn(ctx context.Context, id string) (*models.Column, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "GetColumn", ID: id})
	i := f.columnIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("column %s: %w", id, models.ErrNotFound)
	}
	col := f.columns[i]
	return &col, nil
}

func (f *FakeStore) GetCard(ctx context.Context, id string) (*models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "GetCard", ID: id})
	i := f.cardIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	card := f.cards[i]
	return &card, nil
}

func (f *FakeStore) ListCardsByColumn(ctx context.Context, columnID string) ([]models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "ListCardsByColumn", ID: columnID})
	if f.listErr != nil {
		return nil, f.listErr
	}
	board := models.Board{Columns: f.columns, Cards: f.cards}
	return board.CardsIn(columnID), nil
}

func (f *FakeStore) CreateColumn(ctx context.Context, req remote.CreateColumnRequest) (*models.Column, error) {
	title, err := models.NormalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}
	col := models.Column{ID: uuid.NewString(), Title: title, Order: req.Order}
	if err := f.begin(ctx, "CreateColumn", col.ID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.columns = append(f.columns, col)
	return &col, nil
}

func (f *FakeStore) UpdateColumn(ctx context.Context, id string, patch remote.ColumnPatch) (*models.Column, error) {
	if err := f.begin(ctx, "UpdateColumn", id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.columnIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("column %s: %w", id, models.ErrNotFound)
	}
	if patch.Title != nil {
		f.columns[i].Title = *patch.Title
	}
	if patch.Order != nil {
		f.columns[i].Order = *patch.Order
	}
	col := f.columns[i]
	return &col, nil
}

func (f *FakeStore) DeleteColumn(ctx context.Context, id string) error {
	if err := f.begin(ctx, "DeleteColumn", id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.columnIndex(id)
	if i < 0 {
		return fmt.Errorf("column %s: %w", id, models.ErrNotFound)
	}
	f.columns = slices.Delete(f.columns, i, i+1)
	f.cards = slices.DeleteFunc(f.cards, func(c models.Card) bool { return c.ColumnID == id })
	return nil
}

func (f *FakeStore) CreateCard(ctx context.Context, req remote.CreateCardRequest) (*models.Card, error) {
	title, err := models.NormalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}
	card := models.Card{ID: uuid.NewString(), Title: title, ColumnID: req.ColumnID, Order: req.Order}
	if err := f.begin(ctx, "CreateCard", card.ID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.columnIndex(req.ColumnID) < 0 {
		return nil, fmt.Errorf("column %s: %w", req.ColumnID, models.ErrNotFound)
	}
	f.cards = append(f.cards, card)
	return &card, nil
}

func (f *FakeStore) UpdateCard(ctx context.Context, id string, patch remote.CardPatch) (*models.Card, error) {
	if err := f.begin(ctx, "UpdateCard", id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.cardIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	if patch.ColumnID != nil {
		if f.columnIndex(*patch.ColumnID) < 0 {
			return nil, fmt.Errorf("column %s: %w", *patch.ColumnID, models.ErrNotFound)
		}
		f.cards[i].ColumnID = *patch.ColumnID
	}
	if patch.Title != nil {
		f.cards[i].Title = *patch.Title
	}
	if patch.Order != nil {
		f.cards[i].Order = *patch.Order
	}
	card := f.cards[i]
	return &card, nil
}

func (f *FakeStore) DeleteCard(ctx context.Context, id string) error {
	if err := f.begin(ctx, "DeleteCard", id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.cardIndex(id)
	if i < 0 {
		return fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	f.cards = slices.Delete(f.cards, i, i+1)
	return nil
}

// begin records a write, waits on any hold for id and returns an injected failure
func (f *FakeStore) begin(ctx context.Context, op, id string) error {
	f.mu.Lock()
	f.writes++
	f.calls = append(f.calls, Call{Op: op, ID: id})
	err := f.failNth[f.writes]
	if idErr, ok := f.failIDs[id]; ok {
		err = idErr
	}
	if onceErr, ok := f.failOnce[id]; ok {
		err = onceErr
		delete(f.failOnce, id)
	}
	key := id
	if _, ok := f.holds[key]; !ok {
		key = op
	}
	gate, held := f.holds[key]
	entered := f.holdingNow[key]
	delete(f.holds, key)
	delete(f.holdingNow, key)
	f.mu.Unlock()

	if held {
		close(entered)
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *FakeStore) columnIndex(id string) int {
	return slices.IndexFunc(f.columns, func(c models.Column) bool { return c.ID == id })
}

func (f *FakeStore) cardIndex(id string) int {
	return slices.IndexFunc(f.cards, func(c models.Card) bool { return c.ID == id })
}
