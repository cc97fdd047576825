package handlers

import (
	"errors"
	"net/http"

	"github.com/andrewpaige1/wordcards/controller"
	"github.com/andrewpaige1/wordcards/models"
	"github.com/andrewpaige1/wordcards/view"
)

// /api/session: one editing session shared by every client of this server.

func (h *CardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.Session.Refresh(r.Context())
	h.writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *CardHandler) SetSessionFilter(w http.ResponseWriter, r *http.Request) {
	var q view.Query
	if !h.decodeForm(w, r, &q) {
		return
	}

	h.Session.SetQuery(q)
	h.writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *CardHandler) OpenCreateForm(w http.ResponseWriter, r *http.Request) {
	h.Session.RequestCreate()
	h.writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *CardHandler) OpenEditForm(w http.ResponseWriter, r *http.Request) {
	flashcardID := r.PathValue("flashcardID")

	// the card may have been created through the REST routes or the CLI
	h.Session.Refresh(r.Context())
	if !h.Session.RequestEdit(flashcardID) {
		h.writeError(w, http.StatusNotFound, "Flashcard not found")
		return
	}
	h.writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *CardHandler) SubmitSessionForm(w http.ResponseWriter, r *http.Request) {
	var req models.FlashcardFormData
	if !h.decodeForm(w, r, &req) {
		return
	}

	err := h.Session.SubmitForm(r.Context(), req)
	if errors.Is(err, controller.ErrFormClosed) {
		h.writeError(w, http.StatusConflict, "No form is open")
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Str("subject", requestSubject(r)).Msg("SubmitSessionForm: failed to save flashcard")
		h.writeError(w, http.StatusInternalServerError, "Failed to save flashcard")
		return
	}

	h.writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *CardHandler) CancelSessionForm(w http.ResponseWriter, r *http.Request) {
	h.Session.CancelForm()
	h.writeJSON(w, http.StatusOK, h.Session.State())
}

// DeleteSessionFlashcard deletes without answering 404 for unknown ids; the
// session view simply shows what is left.
func (h *CardHandler) DeleteSessionFlashcard(w http.ResponseWriter, r *http.Request) {
	flashcardID := r.PathValue("flashcardID")

	deleted, err := h.Session.RequestDelete(r.Context(), flashcardID)
	if err != nil {
		h.Log.Error().Err(err).Str("id", flashcardID).Msg("DeleteSessionFlashcard: failed to delete flashcard")
		h.writeError(w, http.StatusInternalServerError, "Failed to delete flashcard")
		return
	}
	if deleted {
		h.Log.Info().Str("id", flashcardID).Str("subject", requestSubject(r)).Msg("DeleteSessionFlashcard: deleted flashcard")
	}

	h.writeJSON(w, http.StatusOK, h.Session.State())
}
