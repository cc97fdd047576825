package commands

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/andrewpaige1/wordcards/auth"
	"github.com/andrewpaige1/wordcards/controller"
	"github.com/andrewpaige1/wordcards/handlers"
	"github.com/andrewpaige1/wordcards/middleware"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the flashcard JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler, err := a.handler(ctx)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              net.JoinHostPort("0.0.0.0", a.cfg.Port),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("addr", srv.Addr).Bool("auth", a.cfg.AuthEnabled()).Msg("listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func (a *app) tokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		Secret:   a.cfg.JWTSecret,
		Issuer:   a.cfg.JWTIssuer,
		Audience: a.cfg.JWTAudience,
		TTL:      a.cfg.TokenTTL,
	}
}

// handler wires the API routes and middleware around a fresh session.
func (a *app) handler(ctx context.Context) (http.Handler, error) {
	protect, err := middleware.EnsureValidToken(a.tokenConfig(), a.log)
	if err != nil {
		return nil, err
	}

	cardHandler := &handlers.CardHandler{
		Store:   a.store,
		Session: controller.New(ctx, a.store, a.log),
		Log:     a.log,
	}

	mux := http.NewServeMux()
	cardHandler.Routes(mux, protect)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   a.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(mux)

	return middleware.Recovery(a.log)(middleware.RequestLogger(a.log)(corsHandler)), nil
}
