package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/rs/zerolog"

	"github.com/andrewpaige1/wordcards/auth"
)

// EnsureValidToken returns a middleware that rejects requests without a valid
// bearer token signed with cfg.Secret. With an empty secret every request
// passes through unchecked.
func EnsureValidToken(cfg auth.TokenConfig, log zerolog.Logger) (func(http.Handler) http.Handler, error) {
	if cfg.Secret == "" {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	keyFunc := func(_ context.Context) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		cfg.Issuer,
		[]string{cfg.Audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Info().Err(err).Str("path", r.URL.Path).Msg("rejected request token")

		status := http.StatusUnauthorized
		if !errors.Is(err, jwtmiddleware.ErrJWTMissing) && !errors.Is(err, jwtmiddleware.ErrJWTInvalid) {
			status = http.StatusBadRequest
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(fmt.Sprintf(`{"error":%q,"code":%d,"message":"Failed to validate JWT."}`, http.StatusText(status), status)))
	}

	mw := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return mw.CheckJWT, nil
}
