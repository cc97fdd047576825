package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andrewpaige1/wordcards/config"
	"github.com/andrewpaige1/wordcards/logger"
	"github.com/andrewpaige1/wordcards/store"
)

const serviceName = "wordcards"

// app is what every command needs, built once in the root PersistentPreRunE.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *store.CardStore
}

// NewRootCommand builds the wordcards command tree.
func NewRootCommand() *cobra.Command {
	return newRoot(&app{})
}

func newRoot(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   serviceName,
		Short: "Manage vocabulary flashcards",
		Long: `Wordcards keeps word/translation flashcards in a local store and
offers a terminal UI, a JSON API for browser front-ends, and plain commands
for scripting.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.AddCommand(
		newServeCommand(a),
		newListCommand(a),
		newAddCommand(a),
		newEditCommand(a),
		newDeleteCommand(a),
		newCategoriesCommand(a),
		newExportCommand(a),
		newDoctorCommand(a),
		newTokenCommand(a),
		newTUICommand(a),
	)

	return root
}

func (a *app) init() error {
	if a.store != nil {
		return nil
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	a.log = logger.New(serviceName, cfg.LogLevel, cfg.LogPretty || cfg.IsDevelopment())

	medium, err := config.OpenMedium(cfg)
	if err != nil {
		return err
	}
	a.store = store.New(medium, a.log, store.WithKey(cfg.StorageKey))
	return nil
}
