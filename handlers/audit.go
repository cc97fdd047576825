package handlers

import (
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// anonymousSubject is logged for changes made while the API runs without tokens.
const anonymousSubject = "anonymous"

// requestSubject names who made r in the audit lines of mutating routes.
func requestSubject(r *http.Request) string {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok || claims.RegisteredClaims.Subject == "" {
		return anonymousSubject
	}
	return claims.RegisteredClaims.Subject
}
