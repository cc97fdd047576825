package handlers

import (
	"net/http"

	"github.com/andrewpaige1/wordcards/models"
	"github.com/andrewpaige1/wordcards/view"
)

// GET /api/flashcards?search=&category=
func (h *CardHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	q := view.Query{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}

	cards := view.Render(h.Store.ListAll(r.Context()), q)
	h.writeJSON(w, http.StatusOK, cards)
}

func (h *CardHandler) GetFlashcardByID(w http.ResponseWriter, r *http.Request) {
	flashcardID := r.PathValue("flashcardID")
	if flashcardID == "" {
		h.writeError(w, http.StatusBadRequest, "Flashcard ID is required")
		return
	}

	card, ok := h.Store.Get(r.Context(), flashcardID)
	if !ok {
		h.writeError(w, http.StatusNotFound, "Flashcard not found")
		return
	}

	h.writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	var req models.FlashcardFormData
	if !h.decodeForm(w, r, &req) {
		return
	}

	card, err := h.Store.Create(r.Context(), req)
	if err != nil {
		h.Log.Error().Err(err).Msg("CreateFlashcard: failed to create flashcard")
		h.writeError(w, http.StatusInternalServerError, "Failed to create flashcard")
		return
	}

	h.Log.Info().Str("id", card.ID).Str("subject", requestSubject(r)).Msg("CreateFlashcard: created flashcard")
	h.writeJSON(w, http.StatusCreated, card)
}

// UpdateFlashcardByID applies a partial update. Fields missing from the body
// keep their stored value.
func (h *CardHandler) UpdateFlashcardByID(w http.ResponseWriter, r *http.Request) {
	flashcardID := r.PathValue("flashcardID")

	var req models.FlashcardPatch
	if !h.decodeForm(w, r, &req) {
		return
	}

	card, ok, err := h.Store.Update(r.Context(), flashcardID, req)
	if err != nil {
		h.Log.Error().Err(err).Str("id", flashcardID).Msg("UpdateFlashcardByID: failed to update flashcard")
		h.writeError(w, http.StatusInternalServerError, "Failed to update flashcard")
		return
	}
	if !ok {
		h.writeError(w, http.StatusNotFound, "Flashcard not found")
		return
	}

	h.Log.Info().Str("id", card.ID).Str("subject", requestSubject(r)).Msg("UpdateFlashcardByID: updated flashcard")
	h.writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) DeleteFlashcardByID(w http.ResponseWriter, r *http.Request) {
	flashcardID := r.PathValue("flashcardID")

	deleted, err := h.Store.Delete(r.Context(), flashcardID)
	if err != nil {
		h.Log.Error().Err(err).Str("id", flashcardID).Msg("DeleteFlashcardByID: failed to delete flashcard")
		h.writeError(w, http.StatusInternalServerError, "Failed to delete flashcard")
		return
	}
	if !deleted {
		h.writeError(w, http.StatusNotFound, "Flashcard not found")
		return
	}

	h.Log.Info().Str("id", flashcardID).Str("subject", requestSubject(r)).Msg("DeleteFlashcardByID: deleted flashcard")
	w.WriteHeader(http.StatusNoContent)
}

func (h *CardHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, view.DistinctCategories(h.Store.ListAll(r.Context())))
}

// GetStorageStatus reports whether the stored collection is readable, which
// the list routes never do.
func (h *CardHandler) GetStorageStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.Store.Inspect(r.Context()))
}
