package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andrewpaige1/wordcards/controller"
	"github.com/andrewpaige1/wordcards/tui"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit flashcards in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// warnings would draw over the alternate screen
			log := a.log.Level(max(a.log.GetLevel(), zerolog.ErrorLevel))
			ctrl := controller.New(cmd.Context(), a.store, log)
			return tui.Run(cmd.Context(), ctrl)
		},
	}
}
