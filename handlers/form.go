package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/andrewpaige1/wordcards/utils"
)

const maxBodyBytes = 1 << 20

// decodeForm decodes a JSON body into dst and runs the form validation on it.
// It writes the error reply itself and reports whether the caller may go on.
func (h *CardHandler) decodeForm(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}

	if fields := utils.Fields(dst); len(fields) > 0 {
		h.writeValidationError(w, fields)
		return false
	}
	return true
}
