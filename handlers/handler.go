package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/andrewpaige1/wordcards/controller"
	"github.com/andrewpaige1/wordcards/store"
)

// CardHandler serves the flashcard API. The REST routes talk to the store
// directly; the session routes go through the lifecycle controller.
type CardHandler struct {
	Store   *store.CardStore
	Session *controller.Controller
	Log     zerolog.Logger
}

// Routes registers every route on mux. protect wraps the routes that change
// stored cards.
func (h *CardHandler) Routes(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	guard := func(fn http.HandlerFunc) http.Handler {
		return protect(fn)
	}

	// Flashcards
	mux.HandleFunc("GET /api/flashcards", h.ListFlashcards)
	mux.HandleFunc("GET /api/flashcards/{flashcardID}", h.GetFlashcardByID)
	mux.Handle("POST /api/flashcards", guard(h.CreateFlashcard))
	mux.Handle("PATCH /api/flashcards/{flashcardID}", guard(h.UpdateFlashcardByID))
	mux.Handle("DELETE /api/flashcards/{flashcardID}", guard(h.DeleteFlashcardByID))
	mux.HandleFunc("GET /api/categories", h.GetCategories)
	mux.HandleFunc("GET /api/storage", h.GetStorageStatus)

	// Editing session
	mux.HandleFunc("GET /api/session", h.GetSession)
	mux.HandleFunc("PUT /api/session/filter", h.SetSessionFilter)
	mux.Handle("POST /api/session/new", guard(h.OpenCreateForm))
	mux.Handle("POST /api/session/edit/{flashcardID}", guard(h.OpenEditForm))
	mux.Handle("POST /api/session/submit", guard(h.SubmitSessionForm))
	mux.Handle("POST /api/session/cancel", guard(h.CancelSessionForm))
	mux.Handle("DELETE /api/session/flashcards/{flashcardID}", guard(h.DeleteSessionFlashcard))
}
