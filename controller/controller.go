// Package controller turns user intents into card store calls and keeps the
// transient state of one editing session.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/andrewpaige1/wordcards/models"
	"github.com/andrewpaige1/wordcards/view"
)

// Store is the part of store.CardStore the controller drives.
type Store interface {
	ListAll(ctx context.Context) []models.Flashcard
	Create(ctx context.Context, data models.FlashcardFormData) (models.Flashcard, error)
	Update(ctx context.Context, id string, patch models.FlashcardPatch) (models.Flashcard, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Mode string

const (
	Browsing Mode = "browsing"
	Editing  Mode = "editing"
)

// ErrFormClosed is returned when a form is submitted while none is open.
var ErrFormClosed = errors.New("no form is open")

// State is a copy of the controller state at one point in time.
type State struct {
	Mode Mode `json:"mode"`
	// EditingCard is nil while browsing and while a new card is being created.
	EditingCard *models.Flashcard  `json:"editingCard"`
	Query       view.Query         `json:"query"`
	Categories  []string           `json:"categories"`
	Cards       []models.Flashcard `json:"cards"`
	Total       int                `json:"total"`
}

type Controller struct {
	store Store
	log   zerolog.Logger

	mu       sync.Mutex
	mode     Mode
	editing  *models.Flashcard
	query    view.Query
	snapshot []models.Flashcard
}

// New starts a controller in Browsing mode with the store's current collection.
func New(ctx context.Context, store Store, log zerolog.Logger) *Controller {
	return &Controller{
		store:    store,
		log:      log,
		mode:     Browsing,
		snapshot: store.ListAll(ctx),
	}
}

// RequestCreate opens an empty form.
func (c *Controller) RequestCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = Editing
	c.editing = nil
}

// RequestEdit opens the form for the card with the given id. Unknown ids
// leave the state untouched and report false.
func (c *Controller) RequestEdit(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, card := range c.snapshot {
		if card.ID == id {
			c.editing = &card
			c.mode = Editing
			return true
		}
	}
	return false
}

// SubmitForm saves data as a new card, or over the card being edited, and
// returns to Browsing. An edited card that vanished in the meantime is
// dropped silently. On a storage error the form stays open.
func (c *Controller) SubmitForm(ctx context.Context, data models.FlashcardFormData) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Editing {
		return ErrFormClosed
	}

	if c.editing != nil {
		_, ok, err := c.store.Update(ctx, c.editing.ID, data.Patch())
		if err != nil {
			return err
		}
		if !ok {
			c.log.Warn().Str("id", c.editing.ID).Msg("edited flashcard no longer exists")
		}
	} else {
		if _, err := c.store.Create(ctx, data); err != nil {
			return err
		}
	}

	c.mode = Browsing
	c.editing = nil
	c.snapshot = c.store.ListAll(ctx)
	return nil
}

// CancelForm closes the form without saving.
func (c *Controller) CancelForm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = Browsing
	c.editing = nil
}

// RequestDelete deletes the card unconditionally; asking the user is the
// caller's job. The mode does not change.
func (c *Controller) RequestDelete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deleted, err := c.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	c.snapshot = c.store.ListAll(ctx)
	return deleted, nil
}

// Refresh reloads the snapshot from the store.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = c.store.ListAll(ctx)
}

func (c *Controller) SetSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query.Search = search
}

func (c *Controller) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query.Category = category
}

func (c *Controller) SetQuery(q view.Query) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = q
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mode
}

// EditingCard returns the card open in the form, if any.
func (c *Controller) EditingCard() (models.Flashcard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editing == nil {
		return models.Flashcard{}, false
	}
	return *c.editing, true
}

// Visible returns the snapshot filtered by the current query, newest first.
func (c *Controller) Visible() []models.Flashcard {
	c.mu.Lock()
	defer c.mu.Unlock()

	return view.Render(c.snapshot, c.query)
}

func (c *Controller) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return view.DistinctCategories(c.snapshot)
}

// Snapshot returns a copy of the full collection as last loaded.
func (c *Controller) Snapshot() []models.Flashcard {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Flashcard, len(c.snapshot))
	copy(out, c.snapshot)
	return out
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{
		Mode:       c.mode,
		Query:      c.query,
		Categories: view.DistinctCategories(c.snapshot),
		Cards:      view.Render(c.snapshot, c.query),
		Total:      len(c.snapshot),
	}
	if c.editing != nil {
		card := *c.editing
		state.EditingCard = &card
	}
	return state
}
