// Package store owns the persisted flashcard collection.
//
// The whole collection lives as one JSON array under a single key of the
// backing medium. Every mutation reads the full array, changes it and writes
// it back, so collections are expected to stay small.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/andrewpaige1/wordcards/models"
	"github.com/andrewpaige1/wordcards/storage"
)

// DefaultKey is the medium key holding the card array.
const DefaultKey = "flashcards"

// CardStore provides CRUD over the flashcard collection. Callers only ever
// receive copies of the stored cards.
type CardStore struct {
	medium storage.Medium
	log    zerolog.Logger
	key    string
	now    func() time.Time
	newID  func() (string, error)

	// serializes read-modify-write cycles
	mu sync.Mutex
}

type Option func(*CardStore)

// WithKey stores the collection under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *CardStore) {
		s.key = key
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *CardStore) {
		s.now = now
	}
}

func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *CardStore) {
		s.newID = newID
	}
}

func New(medium storage.Medium, log zerolog.Logger, opts ...Option) *CardStore {
	s := &CardStore{
		medium: medium,
		log:    log,
		key:    DefaultKey,
		now:    time.Now,
		newID:  func() (string, error) { return gonanoid.New() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the medium key the collection is stored under.
func (s *CardStore) Key() string {
	return s.key
}

// Load reads the collection and reports medium and parse failures.
func (s *CardStore) Load(ctx context.Context) ([]models.Flashcard, error) {
	raw, ok, err := s.medium.GetItem(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read flashcards: %w", err)
	}
	if !ok || raw == "" {
		return []models.Flashcard{}, nil
	}
	return decode(raw)
}

// current is the collection a mutation starts from. A stored value that does
// not parse counts as empty and gets overwritten; a failed read aborts the
// mutation so a medium that is briefly unavailable never loses cards.
func (s *CardStore) current(ctx context.Context) ([]models.Flashcard, error) {
	raw, ok, err := s.medium.GetItem(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read flashcards: %w", err)
	}
	if !ok || raw == "" {
		return []models.Flashcard{}, nil
	}

	cards, err := decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("card storage unreadable, overwriting")
		return []models.Flashcard{}, nil
	}
	return cards, nil
}

// ListAll returns the stored collection. A medium that cannot be read or holds
// data that does not parse is treated as empty; the failure is only logged.
// Use Inspect to find out whether that happened.
func (s *CardStore) ListAll(ctx context.Context) []models.Flashcard {
	cards, err := s.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("card storage unreadable, treating as empty")
		return []models.Flashcard{}
	}
	return cards
}

// Get returns the card with the given id.
func (s *CardStore) Get(ctx context.Context, id string) (models.Flashcard, bool) {
	cards := s.ListAll(ctx)
	i := indexOf(cards, id)
	if i < 0 {
		return models.Flashcard{}, false
	}
	return cards[i], true
}

// Create assigns an id and creation time to data, appends the card and
// persists the collection. The fields are stored as given; validating them is
// up to the caller.
func (s *CardStore) Create(ctx context.Context, data models.FlashcardFormData) (models.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.current(ctx)
	if err != nil {
		return models.Flashcard{}, err
	}

	id, err := s.uniqueID(cards)
	if err != nil {
		return models.Flashcard{}, err
	}

	card := models.Flashcard{
		ID:            id,
		Word:          data.Word,
		Transcription: data.Transcription,
		Translation:   data.Translation,
		Category:      data.Category,
		ImageURL:      data.ImageURL,
		CreatedAt:     s.now().UnixMilli(),
	}

	if err := s.save(ctx, append(cards, card)); err != nil {
		return models.Flashcard{}, err
	}

	s.log.Debug().Str("id", card.ID).Str("word", card.Word).Msg("flashcard created")
	return card, nil
}

// Update merges patch over the card with the given id. ok is false, and
// nothing is written, when no card has that id or the read fails.
func (s *CardStore) Update(ctx context.Context, id string, patch models.FlashcardPatch) (card models.Flashcard, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.current(ctx)
	if err != nil {
		return models.Flashcard{}, false, err
	}
	i := indexOf(cards, id)
	if i < 0 {
		return models.Flashcard{}, false, nil
	}

	cards[i] = patch.Apply(cards[i])
	if err := s.save(ctx, cards); err != nil {
		return models.Flashcard{}, false, err
	}

	s.log.Debug().Str("id", id).Msg("flashcard updated")
	return cards[i], true, nil
}

// Delete removes the card with the given id and reports whether one was
// removed. Nothing is written when no card matched.
func (s *CardStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.current(ctx)
	if err != nil {
		return false, err
	}
	remaining := slices.DeleteFunc(slices.Clone(cards), func(c models.Flashcard) bool {
		return c.ID == id
	})
	if len(remaining) == len(cards) {
		return false, nil
	}

	if err := s.save(ctx, remaining); err != nil {
		return false, err
	}

	s.log.Debug().Str("id", id).Msg("flashcard deleted")
	return true, nil
}

// Status describes the raw state of the medium.
type Status struct {
	Key     string `json:"key"`
	Present bool   `json:"present"`
	Bytes   int    `json:"bytes"`
	Cards   int    `json:"cards"`
	// Corrupt is set when the stored value exists but ListAll would
	// report it as empty.
	Corrupt bool   `json:"corrupt"`
	Error   string `json:"error,omitempty"`
}

// Inspect reads the medium directly so callers can see degradation that
// ListAll hides.
func (s *CardStore) Inspect(ctx context.Context) Status {
	status := Status{Key: s.key}

	raw, ok, err := s.medium.GetItem(ctx, s.key)
	if err != nil {
		status.Corrupt = true
		status.Error = err.Error()
		return status
	}
	status.Present = ok
	status.Bytes = len(raw)
	if !ok || raw == "" {
		return status
	}

	cards, err := decode(raw)
	if err != nil {
		status.Corrupt = true
		status.Error = err.Error()
		return status
	}
	status.Cards = len(cards)
	return status
}

func (s *CardStore) save(ctx context.Context, cards []models.Flashcard) error {
	if cards == nil {
		cards = []models.Flashcard{}
	}
	b, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode flashcards: %w", err)
	}
	if err := s.medium.SetItem(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("persist flashcards: %w", err)
	}
	return nil
}

// uniqueID retries the generator on the unlikely event of a collision.
func (s *CardStore) uniqueID(cards []models.Flashcard) (string, error) {
	const attempts = 5
	for range attempts {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		if id != "" && indexOf(cards, id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate id: no unique id after %d attempts", attempts)
}

func decode(raw string) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		return nil, fmt.Errorf("decode flashcards: %w", err)
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}
	return cards, nil
}

func indexOf(cards []models.Flashcard, id string) int {
	return slices.IndexFunc(cards, func(c models.Flashcard) bool {
		return c.ID == id
	})
}
